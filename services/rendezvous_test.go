package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository"
	"github.com/rdvpro/booking-api/repository/memory"
)

func setupRendezVous(t *testing.T) (*memory.Store, *RendezVousService) {
	t.Helper()
	store := memory.NewStore()
	svc := NewRendezVousService(store.RendezVous(), store.Disponibilites(), store.Utilisateurs(), NewNotifier(store.Notifications()))
	return store, svc
}

func creerCompte(t *testing.T, store *memory.Store, role, nom string) *models.Utilisateur {
	t.Helper()
	u := &models.Utilisateur{
		Nom:    nom,
		Prenom: "Jean",
		Email:  nom + "@test.fr",
		Role:   role,
		Statut: models.StatutActif,
	}
	if err := store.Utilisateurs().Create(context.Background(), u); err != nil {
		t.Fatalf("create %s: %v", nom, err)
	}
	return u
}

func ouvrirCreneau(t *testing.T, store *memory.Store, profID primitive.ObjectID, debut, fin time.Time) *models.Disponibilite {
	t.Helper()
	d := &models.Disponibilite{
		ProfessionnelID: profID,
		Debut:           debut,
		Fin:             fin,
		Statut:          models.DispoDisponible,
	}
	if err := store.Disponibilites().Create(context.Background(), d); err != nil {
		t.Fatalf("create disponibilite: %v", err)
	}
	return d
}

func notificationsDe(t *testing.T, store *memory.Store, dest repository.Partie) []models.Notification {
	t.Helper()
	notifs, err := store.Notifications().FindByDestinataire(context.Background(), dest)
	if err != nil {
		t.Fatalf("find notifications: %v", err)
	}
	return notifs
}

func TestReserver(t *testing.T) {
	ctx := context.Background()
	store, svc := setupRendezVous(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	user := creerCompte(t, store, models.RoleUtilisateur, "Martin")

	debut := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	creneau := ouvrirCreneau(t, store, prof.ID, debut, debut.Add(time.Hour))
	date := debut.Add(30 * time.Minute)

	rdv, err := svc.Reserver(ctx, user.ID, models.ReservationInput{
		ProfessionnelID: prof.ID.Hex(),
		Date:            date.Format(time.RFC3339),
		Motif:           "checkup",
	})
	if err != nil {
		t.Fatalf("reserver: %v", err)
	}
	if rdv.Statut != models.RdvPending {
		t.Fatalf("statut attendu PENDING, obtenu %s", rdv.Statut)
	}
	if rdv.DisponibiliteID == nil || *rdv.DisponibiliteID != creneau.ID {
		t.Fatalf("le rendez-vous doit référencer le créneau consommé")
	}

	notifs := notificationsDe(t, store, repository.PartieProfessionnel(prof.ID))
	if len(notifs) != 1 {
		t.Fatalf("1 notification attendue pour le professionnel, obtenu %d", len(notifs))
	}
	if notifs[0].Type != models.NotifReservation {
		t.Fatalf("type attendu RESERVATION, obtenu %s", notifs[0].Type)
	}
	if notifs[0].UtilisateurID != nil {
		t.Fatalf("la notification ne doit adresser qu'une seule partie")
	}

	d, err := store.Disponibilites().FindByID(ctx, creneau.ID)
	if err != nil {
		t.Fatalf("find creneau: %v", err)
	}
	if d.Statut != models.DispoReserve {
		t.Fatalf("le créneau consommé doit passer à reserve, obtenu %s", d.Statut)
	}
}

func TestReserverCreneauDejaPris(t *testing.T) {
	ctx := context.Background()
	store, svc := setupRendezVous(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	user1 := creerCompte(t, store, models.RoleUtilisateur, "Martin")
	user2 := creerCompte(t, store, models.RoleUtilisateur, "Petit")

	debut := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	ouvrirCreneau(t, store, prof.ID, debut, debut.Add(time.Hour))
	date := debut.Add(30 * time.Minute).Format(time.RFC3339)

	if _, err := svc.Reserver(ctx, user1.ID, models.ReservationInput{ProfessionnelID: prof.ID.Hex(), Date: date, Motif: "checkup"}); err != nil {
		t.Fatalf("première réservation: %v", err)
	}
	_, err := svc.Reserver(ctx, user2.ID, models.ReservationInput{ProfessionnelID: prof.ID.Hex(), Date: date, Motif: "checkup"})
	if !errors.Is(err, ErrConflit) {
		t.Fatalf("conflit attendu, obtenu %v", err)
	}
	if err.Error() != "Ce créneau est déjà réservé" {
		t.Fatalf("message inattendu: %q", err.Error())
	}
}

func TestReserverMemeCraneauMinutesDifferentes(t *testing.T) {
	// The conflict key is the stored timestamp, not the interval: two
	// bookings at different minutes inside one slot both succeed.
	ctx := context.Background()
	store, svc := setupRendezVous(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	user1 := creerCompte(t, store, models.RoleUtilisateur, "Martin")
	user2 := creerCompte(t, store, models.RoleUtilisateur, "Petit")

	debut := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	ouvrirCreneau(t, store, prof.ID, debut, debut.Add(time.Hour))

	if _, err := svc.Reserver(ctx, user1.ID, models.ReservationInput{ProfessionnelID: prof.ID.Hex(), Date: debut.Add(15 * time.Minute).Format(time.RFC3339), Motif: "a"}); err != nil {
		t.Fatalf("première réservation: %v", err)
	}
	if _, err := svc.Reserver(ctx, user2.ID, models.ReservationInput{ProfessionnelID: prof.ID.Hex(), Date: debut.Add(45 * time.Minute).Format(time.RFC3339), Motif: "b"}); err != nil {
		t.Fatalf("seconde réservation à une autre minute: %v", err)
	}
}

func TestReserverValidations(t *testing.T) {
	ctx := context.Background()
	store, svc := setupRendezVous(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	user := creerCompte(t, store, models.RoleUtilisateur, "Martin")
	futur := time.Now().Add(24 * time.Hour).Format(time.RFC3339)

	// Unknown professional.
	_, err := svc.Reserver(ctx, user.ID, models.ReservationInput{ProfessionnelID: primitive.NewObjectID().Hex(), Date: futur, Motif: "x"})
	if !errors.Is(err, ErrIntrouvable) {
		t.Fatalf("introuvable attendu pour professionnel inconnu, obtenu %v", err)
	}

	// Target is not a professional.
	_, err = svc.Reserver(ctx, user.ID, models.ReservationInput{ProfessionnelID: user.ID.Hex(), Date: futur, Motif: "x"})
	if !errors.Is(err, ErrIntrouvable) {
		t.Fatalf("introuvable attendu pour rôle non PROF, obtenu %v", err)
	}

	// Past date.
	_, err = svc.Reserver(ctx, user.ID, models.ReservationInput{ProfessionnelID: prof.ID.Hex(), Date: time.Now().Add(-time.Hour).Format(time.RFC3339), Motif: "x"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("validation attendue pour date passée, obtenu %v", err)
	}

	// No covering availability.
	_, err = svc.Reserver(ctx, user.ID, models.ReservationInput{ProfessionnelID: prof.ID.Hex(), Date: futur, Motif: "x"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("validation attendue sans disponibilité, obtenu %v", err)
	}
	if err.Error() != "Aucune disponibilité pour cette date" {
		t.Fatalf("message inattendu: %q", err.Error())
	}
}

func TestAccepterPuisAnnuler(t *testing.T) {
	ctx := context.Background()
	store, svc := setupRendezVous(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	user := creerCompte(t, store, models.RoleUtilisateur, "Martin")

	debut := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	ouvrirCreneau(t, store, prof.ID, debut, debut.Add(time.Hour))
	rdv, err := svc.Reserver(ctx, user.ID, models.ReservationInput{ProfessionnelID: prof.ID.Hex(), Date: debut.Add(30 * time.Minute).Format(time.RFC3339), Motif: "checkup"})
	if err != nil {
		t.Fatalf("reserver: %v", err)
	}

	confirme, err := svc.Accepter(ctx, rdv.ID, prof.ID)
	if err != nil {
		t.Fatalf("accepter: %v", err)
	}
	if confirme.Statut != models.RdvConfirme {
		t.Fatalf("statut attendu CONFIRME, obtenu %s", confirme.Statut)
	}
	notifs := notificationsDe(t, store, repository.PartieUtilisateur(user.ID))
	if len(notifs) != 1 || notifs[0].Type != models.NotifConfirmation {
		t.Fatalf("notification CONFIRMATION attendue pour l'utilisateur, obtenu %+v", notifs)
	}

	// Second accept: already CONFIRME, reads as not found, state unchanged.
	if _, err := svc.Accepter(ctx, rdv.ID, prof.ID); !errors.Is(err, ErrIntrouvable) {
		t.Fatalf("introuvable attendu au second accept, obtenu %v", err)
	}
	actuel, err := store.RendezVous().FindByID(ctx, rdv.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if actuel.Statut != models.RdvConfirme {
		t.Fatalf("le statut ne doit pas changer, obtenu %s", actuel.Statut)
	}

	// User cancels the confirmed appointment.
	annule, err := svc.Annuler(ctx, rdv.ID, user.ID)
	if err != nil {
		t.Fatalf("annuler: %v", err)
	}
	if annule.Statut != models.RdvAnnule {
		t.Fatalf("statut attendu ANNULE, obtenu %s", annule.Statut)
	}
	profNotifs := notificationsDe(t, store, repository.PartieProfessionnel(prof.ID))
	// RESERVATION from booking plus ANNULATION from the cancel.
	if len(profNotifs) != 2 {
		t.Fatalf("2 notifications attendues pour le professionnel, obtenu %d", len(profNotifs))
	}
	if profNotifs[0].Type != models.NotifAnnulation && profNotifs[1].Type != models.NotifAnnulation {
		t.Fatalf("notification ANNULATION attendue, obtenu %+v", profNotifs)
	}

	// A cancelled appointment cannot be cancelled again.
	if _, err := svc.Annuler(ctx, rdv.ID, user.ID); !errors.Is(err, ErrIntrouvable) {
		t.Fatalf("introuvable attendu après annulation, obtenu %v", err)
	}
}

func TestAccepterMauvaisProprietaire(t *testing.T) {
	ctx := context.Background()
	store, svc := setupRendezVous(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	autre := creerCompte(t, store, models.RoleProf, "Lefevre")
	user := creerCompte(t, store, models.RoleUtilisateur, "Martin")

	debut := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	ouvrirCreneau(t, store, prof.ID, debut, debut.Add(time.Hour))
	rdv, err := svc.Reserver(ctx, user.ID, models.ReservationInput{ProfessionnelID: prof.ID.Hex(), Date: debut.Add(10 * time.Minute).Format(time.RFC3339), Motif: "x"})
	if err != nil {
		t.Fatalf("reserver: %v", err)
	}

	// Wrong owner is indistinguishable from wrong state.
	if _, err := svc.Accepter(ctx, rdv.ID, autre.ID); !errors.Is(err, ErrIntrouvable) {
		t.Fatalf("introuvable attendu pour un autre professionnel, obtenu %v", err)
	}
}

func TestRefuserLibereCreneau(t *testing.T) {
	ctx := context.Background()
	store, svc := setupRendezVous(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	user := creerCompte(t, store, models.RoleUtilisateur, "Martin")

	debut := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	creneau := ouvrirCreneau(t, store, prof.ID, debut, debut.Add(time.Hour))
	rdv, err := svc.Reserver(ctx, user.ID, models.ReservationInput{ProfessionnelID: prof.ID.Hex(), Date: debut.Add(10 * time.Minute).Format(time.RFC3339), Motif: "x"})
	if err != nil {
		t.Fatalf("reserver: %v", err)
	}

	if _, err := svc.Refuser(ctx, rdv.ID, prof.ID); err != nil {
		t.Fatalf("refuser: %v", err)
	}
	notifs := notificationsDe(t, store, repository.PartieUtilisateur(user.ID))
	if len(notifs) != 1 || notifs[0].Type != models.NotifRefus {
		t.Fatalf("notification REFUS attendue, obtenu %+v", notifs)
	}
	d, err := store.Disponibilites().FindByID(ctx, creneau.ID)
	if err != nil {
		t.Fatalf("find creneau: %v", err)
	}
	if d.Statut != models.DispoDisponible {
		t.Fatalf("le créneau doit être libéré après refus, obtenu %s", d.Statut)
	}
}

func TestSuppressionDouce(t *testing.T) {
	ctx := context.Background()
	store, svc := setupRendezVous(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	user := creerCompte(t, store, models.RoleUtilisateur, "Martin")

	debut := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	ouvrirCreneau(t, store, prof.ID, debut, debut.Add(time.Hour))
	rdv, err := svc.Reserver(ctx, user.ID, models.ReservationInput{ProfessionnelID: prof.ID.Hex(), Date: debut.Add(10 * time.Minute).Format(time.RFC3339), Motif: "x"})
	if err != nil {
		t.Fatalf("reserver: %v", err)
	}

	if _, err := svc.SupprimerPourProfessionnel(ctx, rdv.ID, prof.ID); err != nil {
		t.Fatalf("supprimer: %v", err)
	}

	// Hidden for the professional, still visible for the user.
	coteProf, err := svc.Lister(ctx, repository.PartieProfessionnel(prof.ID))
	if err != nil {
		t.Fatalf("lister prof: %v", err)
	}
	if len(coteProf) != 0 {
		t.Fatalf("le rendez-vous supprimé ne doit plus apparaître côté professionnel")
	}
	coteUser, err := svc.Lister(ctx, repository.PartieUtilisateur(user.ID))
	if err != nil {
		t.Fatalf("lister user: %v", err)
	}
	if len(coteUser) != 1 {
		t.Fatalf("le rendez-vous doit rester visible côté utilisateur")
	}

	notifs := notificationsDe(t, store, repository.PartieUtilisateur(user.ID))
	if len(notifs) != 1 || notifs[0].Type != models.NotifSuppression {
		t.Fatalf("notification SUPPRESSION attendue, obtenu %+v", notifs)
	}
}

func TestNotificationEchecNonBloquant(t *testing.T) {
	ctx := context.Background()
	store, svc := setupRendezVous(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	user := creerCompte(t, store, models.RoleUtilisateur, "Martin")

	debut := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	ouvrirCreneau(t, store, prof.ID, debut, debut.Add(time.Hour))

	store.NotificationErr = errors.New("insert raté")
	rdv, err := svc.Reserver(ctx, user.ID, models.ReservationInput{ProfessionnelID: prof.ID.Hex(), Date: debut.Add(10 * time.Minute).Format(time.RFC3339), Motif: "x"})
	if err != nil {
		t.Fatalf("la réservation ne doit pas échouer quand la notification échoue: %v", err)
	}
	if rdv.Statut != models.RdvPending {
		t.Fatalf("statut attendu PENDING, obtenu %s", rdv.Statut)
	}
}

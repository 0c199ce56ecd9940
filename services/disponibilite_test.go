package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository"
	"github.com/rdvpro/booking-api/repository/memory"
)

func setupDisponibilite(t *testing.T) (*memory.Store, *DisponibiliteService) {
	t.Helper()
	store := memory.NewStore()
	return store, NewDisponibiliteService(store.Disponibilites(), store.RendezVous())
}

func TestCreerDisponibilite(t *testing.T) {
	ctx := context.Background()
	store, svc := setupDisponibilite(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")

	debut := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	d, err := svc.Creer(ctx, prof.ID, models.DisponibiliteInput{
		Debut: debut.Format(time.RFC3339),
		Fin:   debut.Add(time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("creer: %v", err)
	}
	if d.Statut != models.DispoDisponible {
		t.Fatalf("statut attendu disponible, obtenu %s", d.Statut)
	}
}

func TestCreerDisponibiliteInvalide(t *testing.T) {
	ctx := context.Background()
	store, svc := setupDisponibilite(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	debut := time.Now().Add(24 * time.Hour).Truncate(time.Minute)

	if _, err := svc.Creer(ctx, prof.ID, models.DisponibiliteInput{Debut: "pas-une-date", Fin: debut.Format(time.RFC3339)}); !errors.Is(err, ErrValidation) {
		t.Fatalf("validation attendue pour date illisible, obtenu %v", err)
	}
	if _, err := svc.Creer(ctx, prof.ID, models.DisponibiliteInput{Debut: debut.Format(time.RFC3339), Fin: debut.Format(time.RFC3339)}); !errors.Is(err, ErrValidation) {
		t.Fatalf("validation attendue pour fin <= début, obtenu %v", err)
	}
}

func TestCreerDisponibiliteChevauchement(t *testing.T) {
	ctx := context.Background()
	store, svc := setupDisponibilite(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	autre := creerCompte(t, store, models.RoleProf, "Lefevre")

	dix := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	onze := dix.Add(time.Hour)
	if _, err := svc.Creer(ctx, prof.ID, models.DisponibiliteInput{Debut: dix.Format(time.RFC3339), Fin: onze.Format(time.RFC3339)}); err != nil {
		t.Fatalf("premier créneau: %v", err)
	}

	// [10:30, 11:30] overlaps [10:00, 11:00].
	_, err := svc.Creer(ctx, prof.ID, models.DisponibiliteInput{
		Debut: dix.Add(30 * time.Minute).Format(time.RFC3339),
		Fin:   onze.Add(30 * time.Minute).Format(time.RFC3339),
	})
	if !errors.Is(err, ErrConflit) {
		t.Fatalf("conflit attendu pour chevauchement, obtenu %v", err)
	}

	// The same interval is fine for another professional.
	if _, err := svc.Creer(ctx, autre.ID, models.DisponibiliteInput{
		Debut: dix.Add(30 * time.Minute).Format(time.RFC3339),
		Fin:   onze.Add(30 * time.Minute).Format(time.RFC3339),
	}); err != nil {
		t.Fatalf("autre professionnel: %v", err)
	}
}

func TestSupprimerDisponibilite(t *testing.T) {
	ctx := context.Background()
	store, svc := setupDisponibilite(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	autre := creerCompte(t, store, models.RoleProf, "Lefevre")

	debut := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	libre := ouvrirCreneau(t, store, prof.ID, debut, debut.Add(time.Hour))
	reserve := ouvrirCreneau(t, store, prof.ID, debut.Add(2*time.Hour), debut.Add(3*time.Hour))
	if err := store.Disponibilites().SetStatut(ctx, reserve.ID, models.DispoReserve); err != nil {
		t.Fatalf("set statut: %v", err)
	}

	// Someone else's slot reads as not found.
	if err := svc.Supprimer(ctx, libre.ID, autre.ID); !errors.Is(err, ErrIntrouvable) {
		t.Fatalf("introuvable attendu pour mauvais propriétaire, obtenu %v", err)
	}

	// A reserved slot cannot be removed.
	if err := svc.Supprimer(ctx, reserve.ID, prof.ID); !errors.Is(err, ErrEtat) {
		t.Fatalf("erreur d'état attendue pour créneau réservé, obtenu %v", err)
	}
	if _, err := store.Disponibilites().FindByID(ctx, reserve.ID); err != nil {
		t.Fatalf("le créneau réservé doit rester présent: %v", err)
	}

	// A free one goes away.
	if err := svc.Supprimer(ctx, libre.ID, prof.ID); err != nil {
		t.Fatalf("supprimer: %v", err)
	}
	if _, err := store.Disponibilites().FindByID(ctx, libre.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("le créneau libre doit être supprimé, obtenu %v", err)
	}
}

func TestListerCreneauxLibres(t *testing.T) {
	ctx := context.Background()
	store, svc := setupDisponibilite(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")
	titulaire := creerCompte(t, store, models.RoleUtilisateur, "Martin")
	visiteur := creerCompte(t, store, models.RoleUtilisateur, "Petit")

	debut := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	occupe := ouvrirCreneau(t, store, prof.ID, debut, debut.Add(time.Hour))
	libre := ouvrirCreneau(t, store, prof.ID, debut.Add(2*time.Hour), debut.Add(3*time.Hour))

	rdv := &models.RendezVous{
		UtilisateurID:   titulaire.ID,
		ProfessionnelID: prof.ID,
		Date:            debut.Add(30 * time.Minute),
		Statut:          models.RdvPending,
	}
	if err := store.RendezVous().Create(ctx, rdv); err != nil {
		t.Fatalf("create rdv: %v", err)
	}

	// The visitor only sees the untouched slot.
	vus, err := svc.Lister(ctx, CreneauxQuery{ProfessionnelID: prof.ID, SeulementLibres: true, DemandeurID: &visiteur.ID})
	if err != nil {
		t.Fatalf("lister: %v", err)
	}
	if len(vus) != 1 || vus[0].ID != libre.ID {
		t.Fatalf("seul le créneau libre doit être visible pour un tiers, obtenu %+v", vus)
	}

	// The holder still sees their own booked slot.
	vus, err = svc.Lister(ctx, CreneauxQuery{ProfessionnelID: prof.ID, SeulementLibres: true, DemandeurID: &titulaire.ID})
	if err != nil {
		t.Fatalf("lister: %v", err)
	}
	if len(vus) != 2 {
		t.Fatalf("le titulaire doit voir son propre créneau réservé, obtenu %d créneaux", len(vus))
	}
	if vus[0].ID != occupe.ID {
		t.Fatalf("tri par début croissant attendu")
	}
}

func TestListerParJour(t *testing.T) {
	ctx := context.Background()
	store, svc := setupDisponibilite(t)
	prof := creerCompte(t, store, models.RoleProf, "Durand")

	demain := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	apresDemain := demain.Add(24 * time.Hour)
	duJour := ouvrirCreneau(t, store, prof.ID, demain, demain.Add(time.Hour))
	ouvrirCreneau(t, store, prof.ID, apresDemain, apresDemain.Add(time.Hour))

	vus, err := svc.Lister(ctx, CreneauxQuery{ProfessionnelID: prof.ID, Jour: &demain})
	if err != nil {
		t.Fatalf("lister: %v", err)
	}
	if len(vus) != 1 || vus[0].ID != duJour.ID {
		t.Fatalf("seuls les créneaux du jour demandé doivent sortir, obtenu %+v", vus)
	}

	// all=true bypasses every filter.
	vus, err = svc.Lister(ctx, CreneauxQuery{ProfessionnelID: prof.ID, Jour: &demain, Tout: true})
	if err != nil {
		t.Fatalf("lister: %v", err)
	}
	if len(vus) != 2 {
		t.Fatalf("all doit renvoyer tous les créneaux, obtenu %d", len(vus))
	}
}

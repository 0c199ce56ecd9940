package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository"
	"github.com/rdvpro/booking-api/repository/memory"
)

func TestNotificationsCycle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewNotificationService(store.Notifications())

	user := creerCompte(t, store, models.RoleUtilisateur, "Martin")
	prof := creerCompte(t, store, models.RoleProf, "Durand")

	pourUser := &models.Notification{Contenu: "a", UtilisateurID: &user.ID, Type: models.NotifConfirmation}
	pourProf := &models.Notification{Contenu: "b", ProfessionnelID: &prof.ID, Type: models.NotifReservation}
	if err := store.Notifications().Create(ctx, pourUser); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Notifications().Create(ctx, pourProf); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Each party only sees its own outbox.
	siennes, err := svc.Lister(ctx, repository.PartieUtilisateur(user.ID))
	if err != nil {
		t.Fatalf("lister: %v", err)
	}
	if len(siennes) != 1 || siennes[0].ID != pourUser.ID {
		t.Fatalf("l'utilisateur ne doit voir que ses notifications, obtenu %+v", siennes)
	}

	// Marking read is scoped to the addressee.
	if _, err := svc.MarquerLue(ctx, pourProf.ID, repository.PartieUtilisateur(user.ID)); !errors.Is(err, ErrIntrouvable) {
		t.Fatalf("introuvable attendu pour la notification d'autrui, obtenu %v", err)
	}
	lue, err := svc.MarquerLue(ctx, pourUser.ID, repository.PartieUtilisateur(user.ID))
	if err != nil {
		t.Fatalf("marquer lue: %v", err)
	}
	if !lue.Lue {
		t.Fatalf("lue doit être vraie")
	}

	// Idempotent.
	relue, err := svc.MarquerLue(ctx, pourUser.ID, repository.PartieUtilisateur(user.ID))
	if err != nil {
		t.Fatalf("marquer lue (bis): %v", err)
	}
	if !relue.Lue {
		t.Fatalf("lue doit rester vraie")
	}

	// Delete is addressee-scoped too.
	if err := svc.Supprimer(ctx, pourUser.ID, repository.PartieProfessionnel(prof.ID)); !errors.Is(err, ErrIntrouvable) {
		t.Fatalf("introuvable attendu, obtenu %v", err)
	}
	if err := svc.Supprimer(ctx, pourUser.ID, repository.PartieUtilisateur(user.ID)); err != nil {
		t.Fatalf("supprimer: %v", err)
	}
}

func TestMarquerToutesLues(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewNotificationService(store.Notifications())
	user := creerCompte(t, store, models.RoleUtilisateur, "Martin")

	for i := 0; i < 3; i++ {
		n := &models.Notification{Contenu: "n", UtilisateurID: &user.ID, Type: models.NotifAutre}
		if err := store.Notifications().Create(ctx, n); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	modifiees, err := svc.MarquerToutesLues(ctx, repository.PartieUtilisateur(user.ID))
	if err != nil {
		t.Fatalf("marquer toutes lues: %v", err)
	}
	if modifiees != 3 {
		t.Fatalf("3 notifications à marquer, obtenu %d", modifiees)
	}

	// Second pass finds nothing unread.
	modifiees, err = svc.MarquerToutesLues(ctx, repository.PartieUtilisateur(user.ID))
	if err != nil {
		t.Fatalf("marquer toutes lues (bis): %v", err)
	}
	if modifiees != 0 {
		t.Fatalf("aucune notification restante attendue, obtenu %d", modifiees)
	}
}

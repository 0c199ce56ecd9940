package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository/memory"
)

func TestCategorieCRUD(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewCategorieService(store.Categories())

	c, err := svc.Creer(ctx, models.CategorieInput{Nom: "Médecine", Description: "Généralistes", Prix: 50, Specialites: []string{"généraliste"}})
	if err != nil {
		t.Fatalf("creer: %v", err)
	}

	// Unique name.
	if _, err := svc.Creer(ctx, models.CategorieInput{Nom: "Médecine", Prix: 10}); !errors.Is(err, ErrConflit) {
		t.Fatalf("conflit attendu pour nom en double, obtenu %v", err)
	}

	maj, err := svc.Modifier(ctx, c.ID, models.CategorieInput{Nom: "Médecine générale", Prix: 60, Specialites: []string{"généraliste", "pédiatre"}})
	if err != nil {
		t.Fatalf("modifier: %v", err)
	}
	if maj.Prix != 60 || len(maj.Specialites) != 2 {
		t.Fatalf("mise à jour non appliquée: %+v", maj)
	}

	// Renaming onto another category's name is refused.
	autre, err := svc.Creer(ctx, models.CategorieInput{Nom: "Droit", Prix: 80})
	if err != nil {
		t.Fatalf("creer: %v", err)
	}
	if _, err := svc.Modifier(ctx, autre.ID, models.CategorieInput{Nom: "Médecine générale", Prix: 80}); !errors.Is(err, ErrConflit) {
		t.Fatalf("conflit attendu, obtenu %v", err)
	}

	if err := svc.Supprimer(ctx, c.ID); err != nil {
		t.Fatalf("supprimer: %v", err)
	}
	if _, err := svc.Obtenir(ctx, c.ID); !errors.Is(err, ErrIntrouvable) {
		t.Fatalf("introuvable attendu après suppression, obtenu %v", err)
	}
}

package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository"
)

type CategorieService struct {
	categories repository.CategorieRepository
}

func NewCategorieService(categories repository.CategorieRepository) *CategorieService {
	return &CategorieService{categories: categories}
}

func (s *CategorieService) Lister(ctx context.Context) ([]models.Categorie, error) {
	return s.categories.FindAll(ctx)
}

func (s *CategorieService) Obtenir(ctx context.Context, id primitive.ObjectID) (*models.Categorie, error) {
	c, err := s.categories.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, introuvable("Catégorie introuvable")
	}
	return c, err
}

func (s *CategorieService) Creer(ctx context.Context, in models.CategorieInput) (*models.Categorie, error) {
	if _, err := s.categories.FindByNom(ctx, in.Nom); err == nil {
		return nil, conflit("Une catégorie porte déjà ce nom")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	c := &models.Categorie{
		Nom:         in.Nom,
		Description: in.Description,
		Prix:        in.Prix,
		Specialites: in.Specialites,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategorieService) Modifier(ctx context.Context, id primitive.ObjectID, in models.CategorieInput) (*models.Categorie, error) {
	if existante, err := s.categories.FindByNom(ctx, in.Nom); err == nil && existante.ID != id {
		return nil, conflit("Une catégorie porte déjà ce nom")
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	c, err := s.categories.Update(ctx, id, &models.Categorie{
		Nom:         in.Nom,
		Description: in.Description,
		Prix:        in.Prix,
		Specialites: in.Specialites,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, introuvable("Catégorie introuvable")
	}
	return c, err
}

func (s *CategorieService) Supprimer(ctx context.Context, id primitive.ObjectID) error {
	err := s.categories.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return introuvable("Catégorie introuvable")
	}
	return err
}

package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository"
)

// UtilisateurService covers the self-service profile and the public
// professional directory.
type UtilisateurService struct {
	utilisateurs repository.UtilisateurRepository
	categories   repository.CategorieRepository
}

func NewUtilisateurService(utilisateurs repository.UtilisateurRepository, categories repository.CategorieRepository) *UtilisateurService {
	return &UtilisateurService{utilisateurs: utilisateurs, categories: categories}
}

func (s *UtilisateurService) Profil(ctx context.Context, id primitive.ObjectID) (*models.Utilisateur, error) {
	u, err := s.utilisateurs.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, introuvable("Utilisateur introuvable")
	}
	return u, err
}

// ModifierProfil applies a PROF's profile edit and recomputes the
// completeness flag: category set, description non-empty, at least one
// specialty.
func (s *UtilisateurService) ModifierProfil(ctx context.Context, id primitive.ObjectID, in models.ProfilInput) (*models.Utilisateur, error) {
	u, err := s.utilisateurs.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, introuvable("Utilisateur introuvable")
	}
	if err != nil {
		return nil, err
	}
	if !u.EstProf() {
		return nil, invalide("Seul un professionnel peut modifier ce profil")
	}

	upd := repository.ProfilUpdate{
		Specialites:  in.Specialites,
		TarifHoraire: in.TarifHoraire,
		Description:  in.Description,
	}
	if in.CategorieID != "" {
		categorieID, err := primitive.ObjectIDFromHex(in.CategorieID)
		if err != nil {
			return nil, invalide("Catégorie invalide")
		}
		if _, err := s.categories.FindByID(ctx, categorieID); errors.Is(err, repository.ErrNotFound) {
			return nil, introuvable("Catégorie introuvable")
		} else if err != nil {
			return nil, err
		}
		upd.CategorieID = &categorieID
	}

	// Completeness is computed on the record as it will be after the
	// update, then written with it.
	categorie := u.CategorieID
	if upd.CategorieID != nil {
		categorie = upd.CategorieID
	}
	description := u.Description
	if in.Description != nil {
		description = *in.Description
	}
	specialites := u.Specialites
	if in.Specialites != nil {
		specialites = in.Specialites
	}
	complet := categorie != nil && description != "" && len(specialites) > 0
	upd.ProfilComplet = &complet

	return s.utilisateurs.UpdateProfil(ctx, id, upd)
}

// DefinirPhoto records the stored path of an uploaded profile photo.
func (s *UtilisateurService) DefinirPhoto(ctx context.Context, id primitive.ObjectID, chemin string) (*models.Utilisateur, error) {
	u, err := s.utilisateurs.UpdateProfil(ctx, id, repository.ProfilUpdate{Photo: &chemin})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, introuvable("Utilisateur introuvable")
	}
	return u, err
}

// Professionnels lists ACTIF professionals, optionally narrowed by
// category or name fragment.
func (s *UtilisateurService) Professionnels(ctx context.Context, categorieID string, nom string) ([]models.Utilisateur, error) {
	var catID *primitive.ObjectID
	if categorieID != "" {
		id, err := primitive.ObjectIDFromHex(categorieID)
		if err != nil {
			return nil, invalide("Catégorie invalide")
		}
		catID = &id
	}
	return s.utilisateurs.FindProfessionnels(ctx, catID, nom)
}

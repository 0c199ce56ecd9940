package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository"
)

// AdminService is read-only aggregation plus the few direct mutations the
// back office exposes. No booking logic lives here.
type AdminService struct {
	utilisateurs repository.UtilisateurRepository
	rendezvous   repository.RendezVousRepository
	categories   repository.CategorieRepository
}

func NewAdminService(
	utilisateurs repository.UtilisateurRepository,
	rendezvous repository.RendezVousRepository,
	categories repository.CategorieRepository,
) *AdminService {
	return &AdminService{utilisateurs: utilisateurs, rendezvous: rendezvous, categories: categories}
}

type Statistiques struct {
	UtilisateursParRole map[string]int64   `json:"utilisateursParRole"`
	RendezVousParStatut map[string]int64   `json:"rendezVousParStatut"`
	Categories          []models.Categorie `json:"categories"`
}

func (s *AdminService) Statistiques(ctx context.Context) (*Statistiques, error) {
	parRole, err := s.utilisateurs.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	parStatut, err := s.rendezvous.CountByStatut(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return &Statistiques{
		UtilisateursParRole: parRole,
		RendezVousParStatut: parStatut,
		Categories:          categories,
	}, nil
}

func (s *AdminService) ListerUtilisateurs(ctx context.Context, role string) ([]models.Utilisateur, error) {
	return s.utilisateurs.FindByRole(ctx, role)
}

// ChangerStatut bulk-edits account statuses. INACTIF clears the credential
// hash to force a reset; SUSPENDU also revokes the stored session token.
func (s *AdminService) ChangerStatut(ctx context.Context, in models.StatutInput) (int64, error) {
	ids := make([]primitive.ObjectID, 0, len(in.UserIDs))
	for _, hex := range in.UserIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return 0, invalide("Identifiant utilisateur invalide")
		}
		ids = append(ids, id)
	}

	unsetMotDePasse := in.Statut == models.StatutInactif || in.Statut == models.StatutSuspendu
	unsetToken := in.Statut == models.StatutSuspendu
	return s.utilisateurs.SetStatut(ctx, ids, in.Statut, unsetMotDePasse, unsetToken)
}

func (s *AdminService) SupprimerUtilisateur(ctx context.Context, id primitive.ObjectID) error {
	err := s.utilisateurs.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return introuvable("Utilisateur introuvable")
	}
	return err
}

func (s *AdminService) SupprimerRendezVous(ctx context.Context, id primitive.ObjectID) error {
	err := s.rendezvous.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return introuvable("Rendez-vous introuvable")
	}
	return err
}

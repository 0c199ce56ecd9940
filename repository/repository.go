package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rdvpro/booking-api/models"
)

// ErrNotFound is returned by every lookup or scoped update whose filter
// matched nothing. Callers decide how much of the cause they reveal.
var ErrNotFound = errors.New("document introuvable")

// Partie identifies one side of an appointment or notification. Exactly
// one of the two ids is set.
type Partie struct {
	UtilisateurID   *primitive.ObjectID
	ProfessionnelID *primitive.ObjectID
}

func PartieUtilisateur(id primitive.ObjectID) Partie   { return Partie{UtilisateurID: &id} }
func PartieProfessionnel(id primitive.ObjectID) Partie { return Partie{ProfessionnelID: &id} }

// ProfilUpdate carries the self-service profile mutation; nil fields are
// left untouched.
type ProfilUpdate struct {
	CategorieID   *primitive.ObjectID
	Specialites   []string
	TarifHoraire  *float64
	Description   *string
	Photo         *string
	ProfilComplet *bool
}

// DisponibiliteFilter selects a professional's slots. Jour restricts to
// one calendar day; when nil and Tout is false, only future slots match.
type DisponibiliteFilter struct {
	ProfessionnelID primitive.ObjectID
	Jour            *time.Time
	Tout            bool
}

type UtilisateurRepository interface {
	Create(ctx context.Context, u *models.Utilisateur) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Utilisateur, error)
	FindByEmail(ctx context.Context, email string) (*models.Utilisateur, error)
	FindByRole(ctx context.Context, role string) ([]models.Utilisateur, error)
	FindProfessionnels(ctx context.Context, categorieID *primitive.ObjectID, nom string) ([]models.Utilisateur, error)
	UpdateProfil(ctx context.Context, id primitive.ObjectID, upd ProfilUpdate) (*models.Utilisateur, error)
	SetToken(ctx context.Context, id primitive.ObjectID, token string) error
	// SetStatut applies the status to every listed id; the unset flags
	// clear the credential hash and session token fields.
	SetStatut(ctx context.Context, ids []primitive.ObjectID, statut string, unsetMotDePasse, unsetToken bool) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByRole(ctx context.Context) (map[string]int64, error)
}

type CategorieRepository interface {
	Create(ctx context.Context, c *models.Categorie) error
	FindAll(ctx context.Context) ([]models.Categorie, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Categorie, error)
	FindByNom(ctx context.Context, nom string) (*models.Categorie, error)
	Update(ctx context.Context, id primitive.ObjectID, c *models.Categorie) (*models.Categorie, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type DisponibiliteRepository interface {
	Create(ctx context.Context, d *models.Disponibilite) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Disponibilite, error)
	// Find returns matching slots sorted by debut ascending.
	Find(ctx context.Context, f DisponibiliteFilter) ([]models.Disponibilite, error)
	// Overlaps reports whether any slot of the professional intersects
	// [debut, fin] under the half-open test or contains debut.
	Overlaps(ctx context.Context, professionnelID primitive.ObjectID, debut, fin time.Time) (bool, error)
	// FindCovering returns a slot with debut <= ts <= fin, or ErrNotFound.
	FindCovering(ctx context.Context, professionnelID primitive.ObjectID, ts time.Time) (*models.Disponibilite, error)
	SetStatut(ctx context.Context, id primitive.ObjectID, statut string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type RendezVousRepository interface {
	Create(ctx context.Context, r *models.RendezVous) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.RendezVous, error)
	// ExistsAt reports whether the professional already has an appointment
	// at exactly ts in one of the given statuses.
	ExistsAt(ctx context.Context, professionnelID primitive.ObjectID, ts time.Time, statuts []string) (bool, error)
	// FindActifs returns the professional's PENDING and CONFIRME
	// appointments, the inputs of the free-slot filter.
	FindActifs(ctx context.Context, professionnelID primitive.ObjectID) ([]models.RendezVous, error)
	// FindByPartie lists the party's appointments, excluding records
	// soft-deleted for that side, sorted by date ascending.
	FindByPartie(ctx context.Context, p Partie) ([]models.RendezVous, error)
	// Transition updates statut in a single owner-and-state scoped write
	// and returns the updated record; a filter miss is ErrNotFound
	// whatever the reason.
	Transition(ctx context.Context, id primitive.ObjectID, owner Partie, from []string, to string) (*models.RendezVous, error)
	// MarquerSupprime sets the owning side's soft-delete flag.
	MarquerSupprime(ctx context.Context, id primitive.ObjectID, owner Partie) (*models.RendezVous, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByStatut(ctx context.Context) (map[string]int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	// FindByDestinataire lists the addressee's notifications sorted by
	// createdAt descending.
	FindByDestinataire(ctx context.Context, dest Partie) ([]models.Notification, error)
	MarquerLue(ctx context.Context, id primitive.ObjectID, dest Partie) (*models.Notification, error)
	MarquerToutesLues(ctx context.Context, dest Partie) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID, dest Partie) error
}

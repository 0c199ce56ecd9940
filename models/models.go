package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles d'un compte.
const (
	RoleUtilisateur = "UTILISATEUR"
	RoleProf        = "PROF"
	RoleAdmin       = "ADMIN"
)

// Statuts d'un compte.
const (
	StatutActif    = "ACTIF"
	StatutInactif  = "INACTIF"
	StatutSuspendu = "SUSPENDU"
)

// Statuts d'une disponibilité.
const (
	DispoDisponible = "disponible"
	DispoReserve    = "reserve"
)

// Statuts d'un rendez-vous.
const (
	RdvPending  = "PENDING"
	RdvConfirme = "CONFIRME"
	RdvAnnule   = "ANNULE"
	RdvTermine  = "TERMINE"
)

// Types de notification.
const (
	NotifReservation  = "RESERVATION"
	NotifAnnulation   = "ANNULATION"
	NotifConfirmation = "CONFIRMATION"
	NotifRefus        = "REFUS"
	NotifRappel       = "RAPPEL"
	NotifSuppression  = "SUPPRESSION"
	NotifAutre        = "AUTRE"
)

// Utilisateur is the unified account record: end users, professionals and
// admins share the collection, distinguished by Role. The PROF-only fields
// stay empty for everyone else.
type Utilisateur struct {
	ID            primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Nom           string              `json:"nom" bson:"nom"`
	Prenom        string              `json:"prenom" bson:"prenom"`
	Email         string              `json:"email" bson:"email"`
	MotDePasse    string              `json:"-" bson:"motDePasse,omitempty"`
	Role          string              `json:"role" bson:"role"`
	Statut        string              `json:"statut" bson:"statut"`
	Token         string              `json:"-" bson:"token,omitempty"`
	CategorieID   *primitive.ObjectID `json:"categorieId,omitempty" bson:"categorieId,omitempty"`
	Specialites   []string            `json:"specialites,omitempty" bson:"specialites,omitempty"`
	TarifHoraire  float64             `json:"tarifHoraire,omitempty" bson:"tarifHoraire,omitempty"`
	Description   string              `json:"description,omitempty" bson:"description,omitempty"`
	Photo         string              `json:"photo,omitempty" bson:"photo,omitempty"`
	ProfilComplet bool                `json:"profilComplet" bson:"profilComplet"`
	CreatedAt     time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// EstProf reports whether the account offers bookable services.
func (u *Utilisateur) EstProf() bool { return u.Role == RoleProf }

type Categorie struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Nom         string             `json:"nom" bson:"nom"`
	Description string             `json:"description" bson:"description"`
	Prix        float64            `json:"prix" bson:"prix"`
	Specialites []string           `json:"specialites" bson:"specialites"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// Disponibilite is a time range a professional has opened for booking.
// Debut/Fin are inclusive bounds; Statut flips to reserve once a booking
// consumes the slot.
type Disponibilite struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProfessionnelID primitive.ObjectID `json:"professionnelId" bson:"professionnelId"`
	Debut           time.Time          `json:"debut" bson:"debut"`
	Fin             time.Time          `json:"fin" bson:"fin"`
	Statut          string             `json:"statut" bson:"statut"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

// RendezVous ties a user, a professional, a time and a status together.
// The two Supprime flags are independent soft deletes: hiding the record
// for one party keeps it visible for the other.
type RendezVous struct {
	ID                    primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UtilisateurID         primitive.ObjectID  `json:"utilisateurId" bson:"utilisateurId"`
	ProfessionnelID       primitive.ObjectID  `json:"professionnelId" bson:"professionnelId"`
	Date                  time.Time           `json:"date" bson:"date"`
	Motif                 string              `json:"motif" bson:"motif"`
	Statut                string              `json:"statut" bson:"statut"`
	DisponibiliteID       *primitive.ObjectID `json:"disponibiliteId,omitempty" bson:"disponibiliteId,omitempty"`
	SupprimeProfessionnel bool                `json:"supprimeProfessionnel" bson:"supprimeProfessionnel"`
	SupprimeUtilisateur   bool                `json:"supprimeUtilisateur" bson:"supprimeUtilisateur"`
	CreatedAt             time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// Notification is addressed to exactly one of UtilisateurID or
// ProfessionnelID, never both. RendezVousID is a lookup reference only:
// the appointment keeps changing after the notification is read.
type Notification struct {
	ID              primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Contenu         string              `json:"contenu" bson:"contenu"`
	UtilisateurID   *primitive.ObjectID `json:"utilisateurId,omitempty" bson:"utilisateurId,omitempty"`
	ProfessionnelID *primitive.ObjectID `json:"professionnelId,omitempty" bson:"professionnelId,omitempty"`
	Lue             bool                `json:"lue" bson:"lue"`
	Type            string              `json:"type" bson:"type"`
	RendezVousID    *primitive.ObjectID `json:"rendezVousId,omitempty" bson:"rendezVousId,omitempty"`
	CreatedAt       time.Time           `json:"createdAt" bson:"createdAt"`
}

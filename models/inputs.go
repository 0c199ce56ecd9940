package models

// Boundary input shapes. Validation tags are enforced once, at the
// handler, so the services only ever see canonical values.

type RegisterInput struct {
	Nom        string `json:"nom" validate:"required,min=2,max=100"`
	Prenom     string `json:"prenom" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	MotDePasse string `json:"motDePasse" validate:"required,min=6"`
	Role       string `json:"role" validate:"required,oneof=UTILISATEUR PROF"`
}

type LoginInput struct {
	Email      string `json:"email" validate:"required,email"`
	MotDePasse string `json:"motDePasse" validate:"required"`
}

type ReservationInput struct {
	ProfessionnelID string `json:"professionnelId" validate:"required,mongodb"`
	Date            string `json:"date" validate:"required"`
	Motif           string `json:"motif" validate:"required,min=2,max=500"`
}

type DisponibiliteInput struct {
	Debut string `json:"debut" validate:"required"`
	Fin   string `json:"fin" validate:"required"`
}

// Specialites must arrive as a JSON array of non-empty strings; the
// stringly-typed variants some clients used to send are rejected outright.
type ProfilInput struct {
	CategorieID  string   `json:"categorieId" validate:"omitempty,mongodb"`
	Specialites  []string `json:"specialites" validate:"omitempty,dive,min=1,max=100"`
	TarifHoraire *float64 `json:"tarifHoraire" validate:"omitempty,gte=0"`
	Description  *string  `json:"description" validate:"omitempty,max=2000"`
}

type CategorieInput struct {
	Nom         string   `json:"nom" validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"max=2000"`
	Prix        float64  `json:"prix" validate:"gte=0"`
	Specialites []string `json:"specialites" validate:"omitempty,dive,min=1,max=100"`
}

type StatutInput struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,dive,mongodb"`
	Statut  string   `json:"statut" validate:"required,oneof=ACTIF INACTIF SUSPENDU"`
}

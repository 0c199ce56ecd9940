package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository"
)

type DisponibiliteService struct {
	disponibilites repository.DisponibiliteRepository
	rendezvous     repository.RendezVousRepository
}

func NewDisponibiliteService(disponibilites repository.DisponibiliteRepository, rendezvous repository.RendezVousRepository) *DisponibiliteService {
	return &DisponibiliteService{disponibilites: disponibilites, rendezvous: rendezvous}
}

// CreneauxQuery selects a professional's slots. Jour restricts to one
// calendar day, otherwise only future slots are returned; Tout bypasses
// every filter. With SeulementLibres, slots holding an active appointment
// are dropped unless that appointment belongs to DemandeurID: a slot is
// unavailable to others but stays visible to its holder.
type CreneauxQuery struct {
	ProfessionnelID primitive.ObjectID
	Jour            *time.Time
	SeulementLibres bool
	Tout            bool
	DemandeurID     *primitive.ObjectID
}

func (s *DisponibiliteService) Lister(ctx context.Context, q CreneauxQuery) ([]models.Disponibilite, error) {
	creneaux, err := s.disponibilites.Find(ctx, repository.DisponibiliteFilter{
		ProfessionnelID: q.ProfessionnelID,
		Jour:            q.Jour,
		Tout:            q.Tout,
	})
	if err != nil {
		return nil, err
	}
	if !q.SeulementLibres || q.Tout {
		return creneaux, nil
	}

	actifs, err := s.rendezvous.FindActifs(ctx, q.ProfessionnelID)
	if err != nil {
		return nil, err
	}

	libres := make([]models.Disponibilite, 0, len(creneaux))
	for _, c := range creneaux {
		occupe := false
		for _, rdv := range actifs {
			if rdv.Date.Before(c.Debut) || rdv.Date.After(c.Fin) {
				continue
			}
			if q.DemandeurID != nil && rdv.UtilisateurID == *q.DemandeurID {
				continue
			}
			occupe = true
			break
		}
		if !occupe {
			libres = append(libres, c)
		}
	}
	return libres, nil
}

// Creer validates and opens a new slot. Overlap uses the half-open
// intersection test, plus the degenerate case of a new debut falling
// inside an existing interval's inclusive bounds.
func (s *DisponibiliteService) Creer(ctx context.Context, professionnelID primitive.ObjectID, in models.DisponibiliteInput) (*models.Disponibilite, error) {
	debut, err := time.Parse(time.RFC3339, in.Debut)
	if err != nil {
		return nil, invalide("Date de début invalide")
	}
	fin, err := time.Parse(time.RFC3339, in.Fin)
	if err != nil {
		return nil, invalide("Date de fin invalide")
	}
	if !fin.After(debut) {
		return nil, invalide("La fin doit être après le début")
	}

	chevauche, err := s.disponibilites.Overlaps(ctx, professionnelID, debut, fin)
	if err != nil {
		return nil, err
	}
	if chevauche {
		return nil, conflit("Ce créneau chevauche un créneau existant")
	}

	d := &models.Disponibilite{
		ProfessionnelID: professionnelID,
		Debut:           debut,
		Fin:             fin,
		Statut:          models.DispoDisponible,
	}
	if err := s.disponibilites.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Supprimer removes a slot the caller owns. A wrong owner reads as
// not-found so existence never leaks; a reserved slot is refused.
func (s *DisponibiliteService) Supprimer(ctx context.Context, id, professionnelID primitive.ObjectID) error {
	d, err := s.disponibilites.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return introuvable("Créneau introuvable")
	}
	if err != nil {
		return err
	}
	if d.ProfessionnelID != professionnelID {
		return introuvable("Créneau introuvable")
	}
	if d.Statut == models.DispoReserve {
		return etat("Impossible de supprimer un créneau réservé")
	}
	return s.disponibilites.Delete(ctx, id)
}

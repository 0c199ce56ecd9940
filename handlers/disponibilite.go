package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/services"
)

// ListerDisponibilites handles
// GET /professionnels/:id/disponibilites?date=YYYY-MM-DD&disponible=bool&all=bool.
func (h *Handler) ListerDisponibilites(c *fiber.Ctx) error {
	professionnelID, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}

	q := services.CreneauxQuery{
		ProfessionnelID: professionnelID,
		SeulementLibres: c.QueryBool("disponible"),
		Tout:            c.QueryBool("all"),
	}
	if raw := c.Query("date"); raw != "" {
		jour, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return repondreErreur(c, &services.Erreur{Kind: services.ErrValidation, Message: "Date invalide (format attendu YYYY-MM-DD)"})
		}
		q.Jour = &jour
	}
	if callerRole(c) == models.RoleUtilisateur {
		id := callerID(c)
		q.DemandeurID = &id
	}

	creneaux, err := h.Disponibilites.Lister(c.Context(), q)
	if err != nil {
		return repondreErreur(c, err)
	}
	if creneaux == nil {
		creneaux = []models.Disponibilite{}
	}
	return c.JSON(fiber.Map{"success": true, "data": creneaux})
}

func (h *Handler) CreerDisponibilite(c *fiber.Ctx) error {
	var body struct {
		Disponibilite models.DisponibiliteInput `json:"disponibilite" validate:"required"`
	}
	if err := h.parseBody(c, &body); err != nil {
		return repondreErreur(c, err)
	}

	d, err := h.Disponibilites.Creer(c.Context(), callerID(c), body.Disponibilite)
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": d})
}

func (h *Handler) SupprimerDisponibilite(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}
	if err := h.Disponibilites.Supprimer(c.Context(), id, callerID(c)); err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Créneau supprimé"})
}

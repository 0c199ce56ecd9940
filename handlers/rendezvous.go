package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rdvpro/booking-api/models"
)

func (h *Handler) ReserverRendezVous(c *fiber.Ctx) error {
	var in models.ReservationInput
	if err := h.parseBody(c, &in); err != nil {
		return repondreErreur(c, err)
	}

	rdv, err := h.RendezVous.Reserver(c.Context(), callerID(c), in)
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Rendez-vous réservé",
		"data":    rdv,
	})
}

func (h *Handler) ListerRendezVous(c *fiber.Ctx) error {
	rdvs, err := h.RendezVous.Lister(c.Context(), callerPartie(c))
	if err != nil {
		return repondreErreur(c, err)
	}
	if rdvs == nil {
		rdvs = []models.RendezVous{}
	}
	return c.JSON(fiber.Map{"success": true, "data": rdvs})
}

func (h *Handler) AccepterRendezVous(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}
	rdv, err := h.RendezVous.Accepter(c.Context(), id, callerID(c))
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"message": "Rendez-vous confirmé", "rendezVous": rdv})
}

func (h *Handler) RefuserRendezVous(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}
	rdv, err := h.RendezVous.Refuser(c.Context(), id, callerID(c))
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"message": "Rendez-vous refusé", "rendezVous": rdv})
}

func (h *Handler) AnnulerRendezVous(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}
	rdv, err := h.RendezVous.Annuler(c.Context(), id, callerID(c))
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"message": "Rendez-vous annulé", "rendezVous": rdv})
}

// SupprimerRendezVous hides the record on the caller's side only.
func (h *Handler) SupprimerRendezVous(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}

	var rdv *models.RendezVous
	if callerRole(c) == models.RoleProf {
		rdv, err = h.RendezVous.SupprimerPourProfessionnel(c.Context(), id, callerID(c))
	} else {
		rdv, err = h.RendezVous.SupprimerPourUtilisateur(c.Context(), id, callerID(c))
	}
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"message": "Rendez-vous supprimé", "rendezVous": rdv})
}

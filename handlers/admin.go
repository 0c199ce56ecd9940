package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rdvpro/booking-api/models"
)

func (h *Handler) Statistiques(c *fiber.Ctx) error {
	stats, err := h.Admin.Statistiques(c.Context())
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}

func (h *Handler) ListerUtilisateurs(c *fiber.Ctx) error {
	utilisateurs, err := h.Admin.ListerUtilisateurs(c.Context(), c.Query("role"))
	if err != nil {
		return repondreErreur(c, err)
	}
	if utilisateurs == nil {
		utilisateurs = []models.Utilisateur{}
	}
	return c.JSON(fiber.Map{"success": true, "data": utilisateurs})
}

func (h *Handler) ChangerStatutUtilisateurs(c *fiber.Ctx) error {
	var in models.StatutInput
	if err := h.parseBody(c, &in); err != nil {
		return repondreErreur(c, err)
	}
	modifies, err := h.Admin.ChangerStatut(c.Context(), in)
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"modifies": modifies}})
}

func (h *Handler) SupprimerUtilisateur(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}
	if err := h.Admin.SupprimerUtilisateur(c.Context(), id); err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Utilisateur supprimé"})
}

func (h *Handler) SupprimerRendezVousAdmin(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}
	if err := h.Admin.SupprimerRendezVous(c.Context(), id); err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Rendez-vous supprimé"})
}

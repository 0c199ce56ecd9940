package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rdvpro/booking-api/models"
)

func (h *Handler) ListerCategories(c *fiber.Ctx) error {
	categories, err := h.Categories.Lister(c.Context())
	if err != nil {
		return repondreErreur(c, err)
	}
	if categories == nil {
		categories = []models.Categorie{}
	}
	return c.JSON(fiber.Map{"success": true, "data": categories})
}

func (h *Handler) ObtenirCategorie(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}
	categorie, err := h.Categories.Obtenir(c.Context(), id)
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": categorie})
}

func (h *Handler) CreerCategorie(c *fiber.Ctx) error {
	var in models.CategorieInput
	if err := h.parseBody(c, &in); err != nil {
		return repondreErreur(c, err)
	}
	categorie, err := h.Categories.Creer(c.Context(), in)
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": categorie})
}

func (h *Handler) ModifierCategorie(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}
	var in models.CategorieInput
	if err := h.parseBody(c, &in); err != nil {
		return repondreErreur(c, err)
	}
	categorie, err := h.Categories.Modifier(c.Context(), id, in)
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": categorie})
}

func (h *Handler) SupprimerCategorie(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}
	if err := h.Categories.Supprimer(c.Context(), id); err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Catégorie supprimée"})
}

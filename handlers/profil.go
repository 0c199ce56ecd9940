package handlers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rdvpro/booking-api/models"
)

func (h *Handler) ObtenirProfil(c *fiber.Ctx) error {
	u, err := h.Utilisateurs.Profil(c.Context(), callerID(c))
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": u})
}

func (h *Handler) ModifierProfil(c *fiber.Ctx) error {
	var in models.ProfilInput
	if err := h.parseBody(c, &in); err != nil {
		return repondreErreur(c, err)
	}
	u, err := h.Utilisateurs.ModifierProfil(c.Context(), callerID(c), in)
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": u})
}

// TeleverserPhoto stores the multipart "photo" file under the upload
// directory with a generated name and records its path on the profile.
func (h *Handler) TeleverserPhoto(c *fiber.Ctx) error {
	fichier, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Fichier photo manquant"})
	}

	nom := uuid.NewString() + filepath.Ext(fichier.Filename)
	chemin := filepath.Join(h.UploadDir, nom)
	if err := c.SaveFile(fichier, chemin); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Échec de l'enregistrement du fichier"})
	}

	u, err := h.Utilisateurs.DefinirPhoto(c.Context(), callerID(c), chemin)
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": u})
}

// ListerProfessionnels is the public directory behind the booking UI.
func (h *Handler) ListerProfessionnels(c *fiber.Ctx) error {
	profs, err := h.Utilisateurs.Professionnels(c.Context(), c.Query("categorieId"), c.Query("nom"))
	if err != nil {
		return repondreErreur(c, err)
	}
	if profs == nil {
		profs = []models.Utilisateur{}
	}
	return c.JSON(fiber.Map{"success": true, "data": profs})
}

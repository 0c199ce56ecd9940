package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rdvpro/booking-api/models"
)

func (h *Handler) Register(c *fiber.Ctx) error {
	var in models.RegisterInput
	if err := h.parseBody(c, &in); err != nil {
		return repondreErreur(c, err)
	}

	u, err := h.Auth.Register(c.Context(), in)
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": u})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var in models.LoginInput
	if err := h.parseBody(c, &in); err != nil {
		return repondreErreur(c, err)
	}

	u, token, err := h.Auth.Login(c.Context(), in)
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "token": token, "data": u})
}

package handlers

import "github.com/gofiber/fiber/v2"

func (h *Handler) RepondreChatbot(c *fiber.Ctx) error {
	var body struct {
		Message string `json:"message" validate:"required"`
	}
	if err := h.parseBody(c, &body); err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"reponse": h.Chatbot.Repondre(body.Message)}})
}

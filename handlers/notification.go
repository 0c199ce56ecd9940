package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rdvpro/booking-api/models"
)

func (h *Handler) ListerNotifications(c *fiber.Ctx) error {
	notifications, err := h.Notifications.Lister(c.Context(), callerPartie(c))
	if err != nil {
		return repondreErreur(c, err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return c.JSON(fiber.Map{"success": true, "data": notifications})
}

func (h *Handler) MarquerNotificationLue(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}
	n, err := h.Notifications.MarquerLue(c.Context(), id, callerPartie(c))
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": n})
}

func (h *Handler) MarquerNotificationsLues(c *fiber.Ctx) error {
	modifiees, err := h.Notifications.MarquerToutesLues(c.Context(), callerPartie(c))
	if err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"modifiees": modifiees}})
}

func (h *Handler) SupprimerNotification(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return repondreErreur(c, err)
	}
	if err := h.Notifications.Supprimer(c.Context(), id, callerPartie(c)); err != nil {
		return repondreErreur(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Notification supprimée"})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rdvpro/booking-api/middleware"
	"github.com/rdvpro/booking-api/models"
)

// Routes mounts the API. Routes registered before auth stay public; the
// rest require a bearer token, with role guards where one side owns the
// operation.
func (h *Handler) Routes(app *fiber.App, auth fiber.Handler) {
	api := app.Group("/api")

	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Get("/categories", h.ListerCategories)
	api.Get("/categories/:id", h.ObtenirCategorie)
	api.Get("/professionnels", h.ListerProfessionnels)
	api.Post("/chatbot", h.RepondreChatbot)

	api.Use(auth)

	api.Get("/profil", h.ObtenirProfil)
	api.Put("/profil", h.ModifierProfil)
	api.Post("/profil/photo", h.TeleverserPhoto)

	api.Get("/professionnels/:id/disponibilites", h.ListerDisponibilites)
	api.Post("/disponibilites", middleware.RequireRole(models.RoleProf), h.CreerDisponibilite)
	api.Delete("/disponibilites/:id", middleware.RequireRole(models.RoleProf), h.SupprimerDisponibilite)

	api.Post("/rendezvous", middleware.RequireRole(models.RoleUtilisateur), h.ReserverRendezVous)
	api.Get("/rendezvous", h.ListerRendezVous)
	api.Put("/rendezvous/:id/accepter", middleware.RequireRole(models.RoleProf), h.AccepterRendezVous)
	api.Put("/rendezvous/:id/refuser", middleware.RequireRole(models.RoleProf), h.RefuserRendezVous)
	api.Put("/rendezvous/:id/annuler", middleware.RequireRole(models.RoleUtilisateur), h.AnnulerRendezVous)
	api.Delete("/rendezvous/:id", h.SupprimerRendezVous)

	api.Get("/notifications", h.ListerNotifications)
	api.Put("/notifications/lues", h.MarquerNotificationsLues)
	api.Put("/notifications/:id/lue", h.MarquerNotificationLue)
	api.Delete("/notifications/:id", h.SupprimerNotification)

	api.Post("/categories", middleware.RequireRole(models.RoleAdmin), h.CreerCategorie)
	api.Put("/categories/:id", middleware.RequireRole(models.RoleAdmin), h.ModifierCategorie)
	api.Delete("/categories/:id", middleware.RequireRole(models.RoleAdmin), h.SupprimerCategorie)

	admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.Get("/statistiques", h.Statistiques)
	admin.Get("/utilisateurs", h.ListerUtilisateurs)
	admin.Put("/utilisateurs/statut", h.ChangerStatutUtilisateurs)
	admin.Delete("/utilisateurs/:id", h.SupprimerUtilisateur)
	admin.Delete("/rendezvous/:id", h.SupprimerRendezVousAdmin)
}

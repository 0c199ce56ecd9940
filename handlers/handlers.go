package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rdvpro/booking-api/middleware"
	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository"
	"github.com/rdvpro/booking-api/services"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	Auth           *services.AuthService
	Utilisateurs   *services.UtilisateurService
	Categories     *services.CategorieService
	Disponibilites *services.DisponibiliteService
	RendezVous     *services.RendezVousService
	Notifications  *services.NotificationService
	Admin          *services.AdminService
	Chatbot        *services.Chatbot
	UploadDir      string

	validate *validator.Validate
}

func NewHandler(
	auth *services.AuthService,
	utilisateurs *services.UtilisateurService,
	categories *services.CategorieService,
	disponibilites *services.DisponibiliteService,
	rendezVous *services.RendezVousService,
	notifications *services.NotificationService,
	admin *services.AdminService,
	chatbot *services.Chatbot,
	uploadDir string,
) *Handler {
	return &Handler{
		Auth:           auth,
		Utilisateurs:   utilisateurs,
		Categories:     categories,
		Disponibilites: disponibilites,
		RendezVous:     rendezVous,
		Notifications:  notifications,
		Admin:          admin,
		Chatbot:        chatbot,
		UploadDir:      uploadDir,
		validate:       validator.New(),
	}
}

// parseBody decodes and validates the JSON body in one step; a failure is
// always a 400 before any service runs.
func (h *Handler) parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return &services.Erreur{Kind: services.ErrValidation, Message: "Corps de requête invalide"}
	}
	if err := h.validate.Struct(dst); err != nil {
		return &services.Erreur{Kind: services.ErrValidation, Message: "Champs manquants ou invalides"}
	}
	return nil
}

// repondreErreur translates the service error taxonomy to the wire. The
// real cause is logged; the body only carries the conflated message.
func repondreErreur(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflit), errors.Is(err, services.ErrEtat):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrIntrouvable):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrIdentifiants):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrCompte):
		status = fiber.StatusForbidden
	default:
		log.Printf("erreur inattendue: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Erreur interne du serveur"})
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "message": err.Error()})
}

func callerID(c *fiber.Ctx) primitive.ObjectID {
	id, _ := c.Locals(middleware.LocalUserID).(primitive.ObjectID)
	return id
}

func callerRole(c *fiber.Ctx) string {
	role, _ := c.Locals(middleware.LocalRole).(string)
	return role
}

// callerPartie maps the caller onto its side of appointments and
// notifications: professionals address the professional reference,
// everyone else the user reference.
func callerPartie(c *fiber.Ctx) repository.Partie {
	if callerRole(c) == models.RoleProf {
		return repository.PartieProfessionnel(callerID(c))
	}
	return repository.PartieUtilisateur(callerID(c))
}

func parseIDParam(c *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, &services.Erreur{Kind: services.ErrValidation, Message: "Identifiant invalide"}
	}
	return id, nil
}

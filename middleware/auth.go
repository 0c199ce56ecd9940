package middleware

import (
	"errors"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"

	"github.com/rdvpro/booking-api/services"
)

// Locals keys set for downstream handlers.
const (
	LocalUserID = "userId"
	LocalRole   = "role"
)

// Auth parses the bearer token, loads the account and rejects the request
// before any business handler runs: invalid or expired tokens get a 401,
// deactivated accounts a 403.
func Auth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Token manquant"})
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("méthode de signature inattendue")
			}
			return auth.Secret(), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Token invalide ou expiré"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Token invalide ou expiré"})
		}
		id, _ := claims["id"].(string)

		u, err := auth.Caller(c.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrCompte) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Compte désactivé ou suspendu"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Token invalide ou expiré"})
		}

		c.Locals(LocalUserID, u.ID)
		c.Locals(LocalRole, u.Role)
		return c.Next()
	}
}

// RequireRole guards a route group; it assumes Auth already ran.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Accès refusé"})
	}
}

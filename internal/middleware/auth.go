package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/damrideal/internal/config"
	"github.com/example/damrideal/internal/utils"
)

const (
	userContextKey  = "currentUserID"
	adminContextKey = "currentAdminClaims"
)

// RequireUser validates session tokens and loads the authenticated user
// ID into context. Admin tokens pass too; mutation routes only need a
// valid identity. Tokens arrive as "Authorization: Bearer <t>" or, for
// older clients, in the x-auth-token header.
func RequireUser(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseRequestToken(c, cfg.JWTSecret)
		if err != nil {
			return err
		}

		if claims.IsReset() {
			return fiber.NewError(fiber.StatusUnauthorized, "Token is not valid")
		}

		id, err := claims.SubjectID()
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token is not valid")
		}

		c.Locals(userContextKey, id)
		return c.Next()
	}
}

// RequireAdmin validates session tokens and rejects any that do not
// carry the admin claims shape.
func RequireAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseRequestToken(c, cfg.JWTSecret)
		if err != nil {
			return err
		}

		if !claims.IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "Not authorized as admin")
		}

		c.Locals(adminContextKey, claims)
		return c.Next()
	}
}

func parseRequestToken(c *fiber.Ctx, secret string) (*utils.TokenClaims, error) {
	token := c.Get("x-auth-token")

	if token == "" {
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
	}

	if token == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "No token, authorization denied")
	}

	claims, err := utils.ParseToken(secret, token)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Token is not valid")
	}

	return claims, nil
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return uuid.Nil, false
	}

	if id, ok := value.(uuid.UUID); ok {
		return id, true
	}

	return uuid.Nil, false
}

// GetCurrentAdmin extracts the authenticated admin claims from context.
func GetCurrentAdmin(c *fiber.Ctx) (*utils.TokenClaims, bool) {
	value := c.Locals(adminContextKey)
	if value == nil {
		return nil, false
	}

	if claims, ok := value.(*utils.TokenClaims); ok {
		return claims, true
	}

	return nil, false
}

package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mgudino/stock-ledger-api/internal/application/dto"
	"github.com/mgudino/stock-ledger-api/pkg/jwt"
)

// Locals keys for ActorID and TenantID in fiber.
const (
	LocalActorID  = "actor_id"
	LocalTenantID = "tenant_id"
)

// AuthMiddleware validates the Bearer token and loads ActorID and TenantID
// into c.Locals. Token issuing belongs to the identity provider; this layer
// only dereferences an already-issued token into the tenant/actor context
// every repository operation is scoped by.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		actorID, tenantID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		if tenantID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TENANT", Message: "token carries no tenant"})
		}
		c.Locals(LocalActorID, actorID)
		c.Locals(LocalTenantID, tenantID)
		return c.Next()
	}
}

// GetActorID returns the ActorID from the context (after auth middleware).
func GetActorID(c *fiber.Ctx) string {
	v := c.Locals(LocalActorID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetTenantID returns the TenantID from the context (after auth middleware).
func GetTenantID(c *fiber.Ctx) string {
	v := c.Locals(LocalTenantID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Package middleware provides HTTP middleware components for the application.
// It includes authentication and authorization middleware for the fiber web
// framework.
package middleware

import (
	"log"
	"strings"

	"apexscore/internal/models"
	"apexscore/internal/services/auth"
	"apexscore/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware handles JWT token validation and operator authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the operator claims to the request context.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Handler validates JWT tokens and adds claims to the request context.
// It checks for:
// - Presence of Authorization header with Bearer token
// - Valid JWT signature and expiration
// - Token version matches the operator's current version
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	_, claims, err := utils.ParseToken(tokenString)
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	// A password change or logout bumps the stored version, which kills
	// every token minted before it.
	currentVersion, err := m.authService.GetTokenVersion(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}
	if claims.TokenVersion != currentVersion {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "session expired"})
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)

	return c.Next()
}

// AdminAuthMiddleware verifies that the request has valid admin claims.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid claims"})
	}

	if claims.Role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}

	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		// Admins hold every permission implicitly.
		if claims.Role == "admin" {
			return c.Next()
		}

		if claims.HasPermission(permission) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}

package handlers

import (
	"errors"
	"log"
	"time"

	"apexscore/internal/config"
	"apexscore/internal/models"
	"apexscore/internal/services/auth"
	"apexscore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates an operator and returns JWT tokens.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Email == "" || input.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	user, accessToken, refreshToken, err := h.authService.Login(input.Email, input.Password, c.IP())
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return response.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return response.ServerError(c, "Authentication failed")
	}

	h.setAuthCookies(c, accessToken, refreshToken)

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": fiber.Map{
			"id":          user.ID,
			"email":       user.Email,
			"name":        user.Name,
			"role":        user.Role,
			"institution": user.Institution,
			"permissions": models.GetDefaultPermissions(user.Role),
		},
	})
}

// RefreshToken exchanges a valid refresh token for a fresh token pair.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")

	if refreshToken == "" {
		var input struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.BodyParser(&input); err == nil {
			refreshToken = input.RefreshToken
		}
	}

	if refreshToken == "" {
		return response.Error(c, fiber.StatusUnauthorized, "Refresh token not provided")
	}

	newAccessToken, newRefreshToken, err := h.authService.RefreshTokens(refreshToken)
	if err != nil {
		log.Printf("Token refresh failed: %v", err)
		return response.Error(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	h.setAuthCookies(c, newAccessToken, newRefreshToken)

	return c.JSON(fiber.Map{
		"access_token":  newAccessToken,
		"refresh_token": newRefreshToken,
	})
}

// Logout invalidates all outstanding tokens for the operator.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c)
	}

	if err := h.authService.Logout(claims.UserID); err != nil {
		return response.ServerError(c, "Failed to logout")
	}

	h.clearAuthCookies(c)

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// ChangePassword updates the operator's password after verifying the old one.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c)
	}

	if err := h.authService.ChangePassword(claims.UserID, input.OldPassword, input.NewPassword); err != nil {
		log.Printf("Password change failed for user %d: %v", claims.UserID, err)
		return response.BadRequest(c, err.Error())
	}

	return c.JSON(fiber.Map{
		"message": "Password changed successfully",
	})
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		MaxAge:   15 * 60,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		MaxAge:   7 * 24 * 60 * 60,
	})
}

func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   config.IsProduction(),
			Path:     "/",
		})
	}
}

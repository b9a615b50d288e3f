package handlers

import (
	"errors"

	"apexscore/internal/models"
	"apexscore/internal/services/settings"
	"apexscore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settings settings.Service
	logger   *zap.Logger
}

func NewSettingsHandler(settingsSvc settings.Service, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settingsSvc,
		logger:   logger,
	}
}

// Get returns the active risk settings.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.settings.Get(c.Context()))
}

// Update replaces the risk settings. Admin only; enforced in routing.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c)
	}

	// Unnamed fields keep their defaults rather than dropping to zero.
	input := models.DefaultRiskSettings()
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validateRiskSettings(input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.settings.Save(c.Context(), input, claims.UserID); err != nil {
		h.logger.Error("settings save failed", zap.Uint("user_id", claims.UserID), zap.Error(err))
		return response.ServerError(c, "Failed to save settings")
	}

	return c.JSON(fiber.Map{
		"message":  "Settings updated",
		"settings": input,
	})
}

func validateRiskSettings(s models.RiskSettings) error {
	switch {
	case s.MinAcceptableScore < 0 || s.MinAcceptableScore > 100:
		return errors.New("minAcceptableScore must be between 0 and 100")
	case s.MaxDebtToIncomeRatio <= 0:
		return errors.New("maxDebtToIncomeRatio must be positive")
	case s.MaxOutstandingDebt <= 0:
		return errors.New("maxOutstandingDebt must be positive")
	case s.MaxLoanAmount <= 0:
		return errors.New("maxLoanAmount must be positive")
	case s.BaseInterestRate < 0:
		return errors.New("baseInterestRate cannot be negative")
	}
	return nil
}

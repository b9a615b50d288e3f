package handlers

import (
	"apexscore/internal/services/dashboard"
	"apexscore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboard dashboard.Service
	logger    *zap.Logger
}

func NewDashboardHandler(dashboardSvc dashboard.Service, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboardSvc,
		logger:    logger,
	}
}

// Stats returns portfolio statistics plus the operator's search activity.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c)
	}

	overview, err := h.dashboard.Overview(c.Context(), userID)
	if err != nil {
		h.logger.Error("dashboard overview failed", zap.Uint("user_id", userID), zap.Error(err))
		return response.ServerError(c, "Failed to load dashboard")
	}

	return c.JSON(overview)
}

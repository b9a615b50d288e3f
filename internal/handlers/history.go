package handlers

import (
	"apexscore/internal/models"
	"apexscore/internal/services/history"
	"apexscore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type HistoryHandler struct {
	history history.Service
	logger  *zap.Logger
}

func NewHistoryHandler(historySvc history.Service, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: historySvc,
		logger:  logger,
	}
}

// List returns the operator's search history, newest first.
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c)
	}

	items, err := h.history.List(c.Context(), userID)
	if err != nil {
		h.logger.Error("history list failed", zap.Uint("user_id", userID), zap.Error(err))
		return response.ServerError(c, "Failed to load search history")
	}

	if items == nil {
		items = []models.SearchHistory{}
	}
	return c.JSON(fiber.Map{
		"history": items,
		"count":   len(items),
	})
}

// Clear wipes the operator's search history.
func (h *HistoryHandler) Clear(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c)
	}

	if err := h.history.Clear(c.Context(), userID); err != nil {
		h.logger.Error("history clear failed", zap.Uint("user_id", userID), zap.Error(err))
		return response.ServerError(c, "Failed to clear search history")
	}

	return c.JSON(fiber.Map{
		"message": "Search history cleared",
	})
}

package handlers

import (
	"errors"
	"strconv"

	"apexscore/internal/models"
	"apexscore/internal/services/apexapi"
	"apexscore/internal/services/history"
	"apexscore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ApplicantHandler struct {
	apex    apexapi.Client
	history history.Service
	logger  *zap.Logger
}

func NewApplicantHandler(apex apexapi.Client, historySvc history.Service, logger *zap.Logger) *ApplicantHandler {
	return &ApplicantHandler{
		apex:    apex,
		history: historySvc,
		logger:  logger,
	}
}

// Search looks up an applicant by email and records the search in the
// operator's history.
func (h *ApplicantHandler) Search(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return response.BadRequest(c, "email query parameter is required")
	}

	applicant, err := h.apex.SearchByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, apexapi.ErrApplicantNotFound) {
			return response.NotFound(c, "Applicant not found")
		}
		h.logger.Error("applicant search failed", zap.String("email", email), zap.Error(err))
		return response.Error(c, fiber.StatusBadGateway, "Scoring service unavailable")
	}

	// History is a convenience; a failed write never fails the search.
	if userID, ok := c.Locals("userID").(uint); ok {
		if err := h.history.Record(c.Context(), userID, applicant); err != nil {
			h.logger.Warn("failed to record search", zap.Uint("user_id", userID), zap.Error(err))
		}
	}

	return c.JSON(applicant)
}

// Get returns a single applicant by upstream id.
func (h *ApplicantHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "applicant id is required")
	}

	applicant, err := h.apex.GetApplicant(c.Context(), id)
	if err != nil {
		if errors.Is(err, apexapi.ErrApplicantNotFound) {
			return response.NotFound(c, "Applicant not found")
		}
		h.logger.Error("applicant fetch failed", zap.String("id", id), zap.Error(err))
		return response.Error(c, fiber.StatusBadGateway, "Scoring service unavailable")
	}

	return c.JSON(applicant)
}

// List returns a page of applicants from the upstream API.
func (h *ApplicantHandler) List(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return response.BadRequest(c, "limit must be a positive integer")
		}
		limit = parsed
	}

	applicants, err := h.apex.ListApplicants(c.Context(), limit)
	if err != nil {
		h.logger.Error("applicant list failed", zap.Error(err))
		return response.Error(c, fiber.StatusBadGateway, "Scoring service unavailable")
	}

	if applicants == nil {
		applicants = []models.Applicant{}
	}
	return c.JSON(fiber.Map{
		"applicants": applicants,
		"count":      len(applicants),
	})
}

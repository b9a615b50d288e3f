package handlers

import (
	"errors"
	"strconv"

	"apexscore/internal/metrics"
	"apexscore/internal/services/apexapi"
	"apexscore/internal/services/risk"
	"apexscore/internal/services/settings"
	"apexscore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// recommendationTermMonths is the term the projected schedule covers.
const recommendationTermMonths = 12

type RiskHandler struct {
	apex     apexapi.Client
	risk     risk.Service
	settings settings.Service
	logger   *zap.Logger
}

func NewRiskHandler(apex apexapi.Client, riskSvc risk.Service, settingsSvc settings.Service, logger *zap.Logger) *RiskHandler {
	return &RiskHandler{
		apex:     apex,
		risk:     riskSvc,
		settings: settingsSvc,
		logger:   logger,
	}
}

// Breakdown explains an applicant's score as weighted category factors.
func (h *RiskHandler) Breakdown(c *fiber.Ctx) error {
	applicant, err := h.apex.GetApplicant(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, apexapi.ErrApplicantNotFound) {
			return response.NotFound(c, "Applicant not found")
		}
		return response.Error(c, fiber.StatusBadGateway, "Scoring service unavailable")
	}

	riskSettings := h.settings.Get(c.Context())
	breakdowns, err := h.risk.CalculateScoreBreakdown(applicant, riskSettings)
	if err != nil {
		var invalid *risk.InvalidInputError
		if errors.As(err, &invalid) {
			return response.Error(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		h.logger.Error("breakdown failed", zap.String("applicant", applicant.ID), zap.Error(err))
		return response.ServerError(c, "Failed to calculate breakdown")
	}
	metrics.RiskCalculations.WithLabelValues("breakdown").Inc()

	total, max := risk.SummarizeBreakdown(breakdowns)
	return c.JSON(fiber.Map{
		"applicant_id": applicant.ID,
		"apex_score":   applicant.ApexScore,
		"breakdown":    breakdowns,
		"summary": fiber.Map{
			"total": total,
			"max":   max,
		},
	})
}

// Recommendation derives safe borrowing terms for an applicant. Pass
// ?schedule=true to include the projected month-by-month repayment plan.
func (h *RiskHandler) Recommendation(c *fiber.Ctx) error {
	applicant, err := h.apex.GetApplicant(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, apexapi.ErrApplicantNotFound) {
			return response.NotFound(c, "Applicant not found")
		}
		return response.Error(c, fiber.StatusBadGateway, "Scoring service unavailable")
	}

	riskSettings := h.settings.Get(c.Context())
	recommendation, err := h.risk.RecommendBorrowing(applicant, riskSettings)
	if err != nil {
		var invalid *risk.InvalidInputError
		if errors.As(err, &invalid) {
			return response.Error(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		h.logger.Error("recommendation failed", zap.String("applicant", applicant.ID), zap.Error(err))
		return response.ServerError(c, "Failed to calculate recommendation")
	}
	metrics.RiskCalculations.WithLabelValues("recommendation").Inc()

	result := fiber.Map{
		"applicant_id":   applicant.ID,
		"recommendation": recommendation,
	}

	if includeSchedule, _ := strconv.ParseBool(c.Query("schedule")); includeSchedule {
		result["schedule"] = h.risk.RepaymentSchedule(
			recommendation.RecommendedAmount,
			recommendation.InterestRate,
			recommendationTermMonths,
		)
	}

	return c.JSON(result)
}

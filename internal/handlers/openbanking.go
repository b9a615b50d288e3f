package handlers

import (
	"errors"

	"apexscore/internal/models"
	"apexscore/internal/repositories"
	"apexscore/internal/services/openbanking"
	"apexscore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type OpenBankingHandler struct {
	openBanking openbanking.Service
	logger      *zap.Logger
}

func NewOpenBankingHandler(openBankingSvc openbanking.Service, logger *zap.Logger) *OpenBankingHandler {
	return &OpenBankingHandler{
		openBanking: openBankingSvc,
		logger:      logger,
	}
}

// ListPolicies returns the institution's published policies.
func (h *OpenBankingHandler) ListPolicies(c *fiber.Ctx) error {
	policies, err := h.openBanking.ListPolicies(c.Context())
	if err != nil {
		h.logger.Error("policy list failed", zap.Error(err))
		return response.ServerError(c, "Failed to load policies")
	}

	if policies == nil {
		policies = []models.InstitutionPolicy{}
	}
	return c.JSON(fiber.Map{
		"policies": policies,
	})
}

// CreateRequest files a document request with a partner institution.
func (h *OpenBankingHandler) CreateRequest(c *fiber.Ctx) error {
	var input openbanking.CreateDocumentRequestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req, err := h.openBanking.CreateDocumentRequest(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, openbanking.ErrRequestTypeRequired),
			errors.Is(err, openbanking.ErrRecipientRequired):
			return response.BadRequest(c, err.Error())
		default:
			h.logger.Error("document request create failed", zap.Error(err))
			return response.ServerError(c, "Failed to create document request")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

// ListRequests returns all document requests, newest first.
func (h *OpenBankingHandler) ListRequests(c *fiber.Ctx) error {
	reqs, err := h.openBanking.ListDocumentRequests(c.Context())
	if err != nil {
		h.logger.Error("document request list failed", zap.Error(err))
		return response.ServerError(c, "Failed to load document requests")
	}

	if reqs == nil {
		reqs = []models.DocumentRequest{}
	}
	return c.JSON(fiber.Map{
		"requests": reqs,
	})
}

// UpdateRequestStatus moves a document request through its lifecycle.
func (h *OpenBankingHandler) UpdateRequestStatus(c *fiber.Ctx) error {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req, err := h.openBanking.UpdateRequestStatus(c.Context(), c.Params("id"), input.Status)
	if err != nil {
		switch {
		case errors.Is(err, openbanking.ErrInvalidStatus):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, repositories.ErrDocumentRequestNotFound):
			return response.NotFound(c, "Document request not found")
		default:
			h.logger.Error("document request update failed", zap.String("id", c.Params("id")), zap.Error(err))
			return response.ServerError(c, "Failed to update document request")
		}
	}

	return c.JSON(req)
}

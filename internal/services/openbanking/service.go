// Package openbanking manages institution policies and document requests
// exchanged with partner institutions.
package openbanking

import (
	"context"
	"errors"
	"time"

	"apexscore/internal/models"
	"apexscore/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrRequestTypeRequired = errors.New("request type is required")
	ErrRecipientRequired   = errors.New("recipient institution is required")
	ErrInvalidStatus       = errors.New("invalid request status")
)

// CreateDocumentRequestInput is the payload for a new document request.
type CreateDocumentRequestInput struct {
	RequestType          string    `json:"request_type"`
	RecipientInstitution string    `json:"recipient_institution"`
	ApplicantEmail       string    `json:"applicant_email"`
	Priority             string    `json:"priority"`
	DueDate              time.Time `json:"due_date"`
	Notes                string    `json:"notes"`
}

type Service interface {
	// EnsureDefaultPolicies seeds the policy catalogue on first boot.
	EnsureDefaultPolicies(ctx context.Context) error

	ListPolicies(ctx context.Context) ([]models.InstitutionPolicy, error)

	CreateDocumentRequest(ctx context.Context, input *CreateDocumentRequestInput) (*models.DocumentRequest, error)
	ListDocumentRequests(ctx context.Context) ([]models.DocumentRequest, error)
	UpdateRequestStatus(ctx context.Context, id, status string) (*models.DocumentRequest, error)
}

type service struct {
	repo   repositories.OpenBankingRepository
	logger *zap.Logger
}

func NewService(repo repositories.OpenBankingRepository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) EnsureDefaultPolicies(ctx context.Context) error {
	count, err := s.repo.CountPolicies(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	s.logger.Info("seeding default institution policies")
	return s.repo.CreatePolicies(ctx, defaultPolicies())
}

func (s *service) ListPolicies(ctx context.Context) ([]models.InstitutionPolicy, error) {
	return s.repo.ListPolicies(ctx)
}

func (s *service) CreateDocumentRequest(ctx context.Context, input *CreateDocumentRequestInput) (*models.DocumentRequest, error) {
	if input.RequestType == "" {
		return nil, ErrRequestTypeRequired
	}
	if input.RecipientInstitution == "" {
		return nil, ErrRecipientRequired
	}

	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	req := &models.DocumentRequest{
		ID:                   uuid.NewString(),
		RequestType:          input.RequestType,
		RecipientInstitution: input.RecipientInstitution,
		ApplicantEmail:       input.ApplicantEmail,
		Status:               models.RequestStatusPending,
		Priority:             priority,
		DueDate:              input.DueDate,
		Notes:                input.Notes,
	}
	if err := s.repo.CreateDocumentRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListDocumentRequests(ctx context.Context) ([]models.DocumentRequest, error) {
	return s.repo.ListDocumentRequests(ctx)
}

func (s *service) UpdateRequestStatus(ctx context.Context, id, status string) (*models.DocumentRequest, error) {
	switch status {
	case models.RequestStatusPending, models.RequestStatusApproved,
		models.RequestStatusRejected, models.RequestStatusCompleted:
	default:
		return nil, ErrInvalidStatus
	}

	req, err := s.repo.GetDocumentRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Status = status
	if err := s.repo.UpdateDocumentRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func defaultPolicies() []models.InstitutionPolicy {
	now := time.Now().UTC()
	return []models.InstitutionPolicy{
		{
			ID:          uuid.NewString(),
			Name:        "Standard Lending Policy",
			Description: "Baseline eligibility and disbursement rules for consumer loans",
			Type:        "lending",
			Status:      "active",
			Terms:       "Applicants must hold a verified identity and an ApexScore at or above the configured minimum.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "KYC Verification Policy",
			Description: "Identity verification requirements for new applicants",
			Type:        "kyc",
			Status:      "active",
			Terms:       "SIM registration must be verified and device fingerprints collected before scoring.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Data Sharing Agreement",
			Description: "Terms for exchanging applicant documents with partner institutions",
			Type:        "data_sharing",
			Status:      "active",
			Terms:       "Shared documents are restricted to the stated request purpose and retained for 90 days.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Regulatory Compliance Policy",
			Description: "Reporting obligations for high-risk lending decisions",
			Type:        "compliance",
			Status:      "draft",
			Terms:       "High-risk approvals above the recommended amount require a documented override.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

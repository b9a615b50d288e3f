// Package history records which applicants an operator has looked up, so
// past reports can be reopened without re-hitting the upstream API.
package history

import (
	"context"
	"fmt"
	"time"

	"apexscore/internal/models"
	"apexscore/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxEntriesPerUser caps retention; older searches are dropped first.
const maxEntriesPerUser = 100

type Service interface {
	// Record stores a search. A repeat lookup of the same applicant email
	// replaces the earlier entry.
	Record(ctx context.Context, userID uint, applicant *models.Applicant) error

	// List returns the operator's history, newest first.
	List(ctx context.Context, userID uint) ([]models.SearchHistory, error)

	// Clear wipes the operator's history.
	Clear(ctx context.Context, userID uint) error

	// Counts returns total searches and searches within the given window.
	Counts(ctx context.Context, userID uint, window time.Duration) (total, recent int64, err error)
}

type service struct {
	repo   repositories.HistoryRepository
	logger *zap.Logger
}

func NewService(repo repositories.HistoryRepository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Record(ctx context.Context, userID uint, applicant *models.Applicant) error {
	if applicant == nil {
		return fmt.Errorf("cannot record nil applicant")
	}

	payload, err := models.AsJSON(applicant)
	if err != nil {
		return fmt.Errorf("failed to encode applicant snapshot: %w", err)
	}

	item := &models.SearchHistory{
		ID:             uuid.NewString(),
		UserID:         userID,
		ApplicantEmail: applicant.Email,
		ApplicantName:  applicant.Name.Full,
		ApexScore:      applicant.ApexScore,
		RiskLevel:      applicant.RiskLevel,
		ApplicantData:  payload,
		SearchedAt:     time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return err
	}

	// Retention is best effort; a failed trim never fails the search.
	if err := s.repo.TrimToNewest(ctx, userID, maxEntriesPerUser); err != nil {
		s.logger.Warn("failed to trim search history", zap.Uint("user_id", userID), zap.Error(err))
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uint) ([]models.SearchHistory, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	return s.repo.DeleteByUser(ctx, userID)
}

func (s *service) Counts(ctx context.Context, userID uint, window time.Duration) (int64, int64, error) {
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	recent, err := s.repo.CountByUserSince(ctx, userID, time.Now().Add(-window).Unix())
	if err != nil {
		return 0, 0, err
	}
	return total, recent, nil
}

// Package dashboard aggregates upstream portfolio statistics with the
// operator's local search activity.
package dashboard

import (
	"context"
	"time"

	"apexscore/internal/models"
	"apexscore/internal/services/apexapi"
	"apexscore/internal/services/history"

	"go.uber.org/zap"
)

// recentWindow bounds what counts as "recent" operator activity.
const recentWindow = 7 * 24 * time.Hour

type Service interface {
	Overview(ctx context.Context, userID uint) (*models.DashboardOverview, error)
}

type service struct {
	apex    apexapi.Client
	history history.Service
	logger  *zap.Logger
}

func NewService(apex apexapi.Client, historySvc history.Service, logger *zap.Logger) Service {
	return &service{apex: apex, history: historySvc, logger: logger}
}

func (s *service) Overview(ctx context.Context, userID uint) (*models.DashboardOverview, error) {
	stats, err := s.apex.GetStats(ctx)
	if err != nil {
		// The dashboard still renders local activity when the upstream
		// is down; portfolio numbers show as zero.
		s.logger.Warn("portfolio stats unavailable", zap.Error(err))
		stats = &models.PortfolioStats{}
	}

	total, recent, err := s.history.Counts(ctx, userID, recentWindow)
	if err != nil {
		return nil, err
	}

	return &models.DashboardOverview{
		Portfolio:      *stats,
		TotalSearches:  total,
		RecentSearches: recent,
	}, nil
}

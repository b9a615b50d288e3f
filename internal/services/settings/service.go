// Package settings resolves the risk policy configuration. Reads never fail:
// any storage problem falls back to the hardcoded defaults so a scoring
// request can always proceed. The resolved snapshot is passed into the risk
// engine by value; the engine itself never touches this store.
package settings

import (
	"context"
	"errors"
	"fmt"

	"apexscore/internal/metrics"
	"apexscore/internal/models"
	"apexscore/internal/repositories"
	"apexscore/internal/repositories/cache"

	"go.uber.org/zap"
)

type Service interface {
	// Get returns the active risk settings, or the defaults if no stored
	// value can be retrieved.
	Get(ctx context.Context) models.RiskSettings

	// Save persists new settings and invalidates the cache.
	Save(ctx context.Context, settings models.RiskSettings, updatedBy uint) error
}

type service struct {
	repo   repositories.SettingsRepository
	cache  *cache.CacheService
	logger *zap.Logger
}

func NewService(repo repositories.SettingsRepository, cacheService *cache.CacheService, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

func (s *service) Get(ctx context.Context) models.RiskSettings {
	if s.cache != nil {
		if cached, err := s.cache.GetRiskSettings(ctx); err == nil {
			return cached
		}
	}

	record, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, repositories.ErrSettingsNotFound) {
			s.logger.Warn("risk settings unavailable, using defaults", zap.Error(err))
		}
		metrics.SettingsFallbacks.Inc()
		return models.DefaultRiskSettings()
	}

	// Merge the stored payload over the defaults: fields absent from the
	// stored document keep their default value.
	resolved := models.DefaultRiskSettings()
	if err := record.Payload.Decode(&resolved); err != nil {
		s.logger.Warn("malformed risk settings record, using defaults", zap.Error(err))
		metrics.SettingsFallbacks.Inc()
		return models.DefaultRiskSettings()
	}

	if s.cache != nil {
		if err := s.cache.CacheRiskSettings(ctx, resolved); err != nil {
			s.logger.Warn("failed to cache risk settings", zap.Error(err))
		}
	}
	return resolved
}

func (s *service) Save(ctx context.Context, riskSettings models.RiskSettings, updatedBy uint) error {
	payload, err := models.AsJSON(riskSettings)
	if err != nil {
		return fmt.Errorf("failed to encode risk settings: %w", err)
	}

	record := &models.RiskSettingsRecord{
		Payload:   payload,
		UpdatedBy: updatedBy,
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateRiskSettings(ctx); err != nil {
			s.logger.Warn("failed to invalidate settings cache", zap.Error(err))
		}
	}
	return nil
}

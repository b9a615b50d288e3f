package repositories

import (
	"context"
	"errors"
	"fmt"

	"apexscore/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSettingsNotFound = errors.New("risk settings not found")

// SettingsRepository persists the single active risk settings record.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.RiskSettingsRecord, error)
	Save(ctx context.Context, record *models.RiskSettingsRecord) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.RiskSettingsRecord, error) {
	var record models.RiskSettingsRecord
	err := r.db.WithContext(ctx).
		Where("key = ?", models.RiskSettingsKey).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to load risk settings: %w", err)
	}
	return &record, nil
}

func (r *settingsRepository) Save(ctx context.Context, record *models.RiskSettingsRecord) error {
	record.Key = models.RiskSettingsKey
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to save risk settings: %w", err)
	}
	return nil
}

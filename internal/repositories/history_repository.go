package repositories

import (
	"context"
	"fmt"

	"apexscore/internal/models"

	"gorm.io/gorm"
)

// HistoryRepository persists operator search history.
type HistoryRepository interface {
	Upsert(ctx context.Context, item *models.SearchHistory) error
	ListByUser(ctx context.Context, userID uint) ([]models.SearchHistory, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountByUserSince(ctx context.Context, userID uint, sinceUnix int64) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) error
	TrimToNewest(ctx context.Context, userID uint, keep int) error
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Upsert replaces any previous search for the same applicant email so each
// applicant appears once per operator, with the freshest snapshot.
func (r *historyRepository) Upsert(ctx context.Context, item *models.SearchHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND applicant_email = ?", item.UserID, item.ApplicantEmail).
			Delete(&models.SearchHistory{}).Error; err != nil {
			return fmt.Errorf("failed to dedupe history: %w", err)
		}
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to insert history: %w", err)
		}
		return nil
	})
}

func (r *historyRepository) ListByUser(ctx context.Context, userID uint) ([]models.SearchHistory, error) {
	var items []models.SearchHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("searched_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return items, nil
}

func (r *historyRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SearchHistory{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *historyRepository) CountByUserSince(ctx context.Context, userID uint, sinceUnix int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SearchHistory{}).
		Where("user_id = ? AND searched_at >= to_timestamp(?)", userID, sinceUnix).
		Count(&count).Error
	return count, err
}

func (r *historyRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.SearchHistory{}).Error
}

// TrimToNewest drops everything beyond the newest keep rows for the user.
func (r *historyRepository) TrimToNewest(ctx context.Context, userID uint, keep int) error {
	return r.db.WithContext(ctx).Exec(`
		DELETE FROM search_histories
		WHERE user_id = ? AND id NOT IN (
			SELECT id FROM search_histories
			WHERE user_id = ?
			ORDER BY searched_at DESC
			LIMIT ?
		)`, userID, userID, keep).Error
}

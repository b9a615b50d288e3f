package repositories

import (
	"context"
	"errors"
	"fmt"

	"apexscore/internal/models"
	"apexscore/internal/repositories/cache"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository manages operator accounts.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	IncrementTokenVersion(id uint) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewUserRepository(db *gorm.DB, cacheService *cache.CacheService) UserRepository {
	return &userRepository{db: db, cache: cacheService}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	if r.cache != nil {
		if user, err := r.cache.GetUserByID(context.Background(), id); err == nil {
			return user, nil
		}
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		_ = r.cache.CacheUser(context.Background(), &user)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if r.cache != nil {
		_ = r.cache.InvalidateUser(context.Background(), user)
	}
	return nil
}

func (r *userRepository) IncrementTokenVersion(id uint) error {
	user, err := r.GetByID(id)
	if err != nil {
		return err
	}
	user.TokenVersion++
	return r.Update(user)
}

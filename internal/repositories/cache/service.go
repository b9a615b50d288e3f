package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"apexscore/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent. Callers fall through to the
// backing store.
var ErrCacheMiss = errors.New("cache miss")

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Applicant caching. Fetched applicants are immutable snapshots, so a plain
// TTL is enough; there is no invalidation path.
func (s *CacheService) CacheApplicant(ctx context.Context, applicant *models.Applicant, ttl time.Duration) error {
	if applicant == nil {
		return errors.New("cannot cache nil applicant")
	}
	return s.SetWithTTL(ctx, s.GenerateKey("applicant", "email", applicant.Email), applicant, ttl)
}

func (s *CacheService) GetApplicantByEmail(ctx context.Context, email string) (*models.Applicant, error) {
	var applicant models.Applicant
	if err := s.Get(ctx, s.GenerateKey("applicant", "email", email), &applicant); err != nil {
		return nil, err
	}
	return &applicant, nil
}

// Risk settings caching.
func (s *CacheService) CacheRiskSettings(ctx context.Context, settings models.RiskSettings) error {
	return s.Set(ctx, s.GenerateKey("settings", "key", models.RiskSettingsKey), settings)
}

func (s *CacheService) GetRiskSettings(ctx context.Context) (models.RiskSettings, error) {
	var settings models.RiskSettings
	if err := s.Get(ctx, s.GenerateKey("settings", "key", models.RiskSettingsKey), &settings); err != nil {
		return models.RiskSettings{}, err
	}
	return settings, nil
}

func (s *CacheService) InvalidateRiskSettings(ctx context.Context) error {
	return s.Delete(ctx, s.GenerateKey("settings", "key", models.RiskSettingsKey))
}

// User caching.
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	if err := s.Set(ctx, s.GenerateKey("user", "id", user.ID), user); err != nil {
		return err
	}
	return s.Set(ctx, s.GenerateKey("user", "email", user.Email), user)
}

func (s *CacheService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.Get(ctx, s.GenerateKey("user", "id", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, user *models.User) error {
	return s.Delete(ctx,
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "email", user.Email),
	)
}

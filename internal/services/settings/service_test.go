package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"apexscore/internal/models"
	"apexscore/internal/repositories"
	"apexscore/internal/repositories/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRepo struct {
	record *models.RiskSettingsRecord
	getErr error
	saved  *models.RiskSettingsRecord
}

func (s *stubRepo) Get(ctx context.Context) (*models.RiskSettingsRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.record, nil
}

func (s *stubRepo) Save(ctx context.Context, record *models.RiskSettingsRecord) error {
	s.saved = record
	return nil
}

func testCache(t *testing.T) *cache.CacheService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.NewCacheService(client, time.Minute)
}

func TestGet_FallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name string
		repo *stubRepo
	}{
		{"no stored record", &stubRepo{getErr: repositories.ErrSettingsNotFound}},
		{"storage failure", &stubRepo{getErr: errors.New("connection refused")}},
		{"malformed payload", &stubRepo{record: &models.RiskSettingsRecord{
			Payload: models.JSON{"maxLoanAmount": "not-a-number"},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.repo, nil, zap.NewNop())
			got := svc.Get(context.Background())
			assert.Equal(t, models.DefaultRiskSettings(), got)
		})
	}
}

func TestGet_MergesStoredOverDefaults(t *testing.T) {
	repo := &stubRepo{record: &models.RiskSettingsRecord{
		Payload: models.JSON{
			"maxLoanAmount": float64(2000000),
			"vpnPenalty":    float64(20),
		},
	}}
	svc := NewService(repo, nil, zap.NewNop())

	got := svc.Get(context.Background())
	assert.Equal(t, float64(2000000), got.MaxLoanAmount)
	assert.Equal(t, float64(20), got.VPNPenalty)
	// Untouched knobs keep their defaults.
	assert.Equal(t, float64(45), got.FinancialWeight)
	assert.Equal(t, float64(12), got.BaseInterestRate)
}

func TestGet_CachesResolvedSettings(t *testing.T) {
	repo := &stubRepo{record: &models.RiskSettingsRecord{
		Payload: models.JSON{"deviceWeight": float64(25)},
	}}
	svc := NewService(repo, testCache(t), zap.NewNop())

	first := svc.Get(context.Background())
	assert.Equal(t, float64(25), first.DeviceWeight)

	// Break the repo; the cached copy must still serve.
	repo.getErr = errors.New("db down")
	second := svc.Get(context.Background())
	assert.Equal(t, first, second)
}

func TestSave_PersistsAndInvalidatesCache(t *testing.T) {
	repo := &stubRepo{getErr: repositories.ErrSettingsNotFound}
	c := testCache(t)
	svc := NewService(repo, c, zap.NewNop())

	// Prime the cache with the defaults.
	_ = svc.Get(context.Background())

	updated := models.DefaultRiskSettings()
	updated.MaxLoanAmount = 750000
	require.NoError(t, svc.Save(context.Background(), updated, 42))

	require.NotNil(t, repo.saved)
	assert.Equal(t, uint(42), repo.saved.UpdatedBy)
	assert.Equal(t, float64(750000), repo.saved.Payload["maxLoanAmount"])

	// Next read resolves the new value through the repo.
	repo.getErr = nil
	repo.record = repo.saved
	got := svc.Get(context.Background())
	assert.Equal(t, float64(750000), got.MaxLoanAmount)
}

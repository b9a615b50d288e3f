package history

import (
	"context"
	"testing"
	"time"

	"apexscore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) Upsert(ctx context.Context, item *models.SearchHistory) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockHistoryRepo) ListByUser(ctx context.Context, userID uint) ([]models.SearchHistory, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.SearchHistory), args.Error(1)
}

func (m *MockHistoryRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepo) CountByUserSince(ctx context.Context, userID uint, sinceUnix int64) (int64, error) {
	args := m.Called(ctx, userID, sinceUnix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepo) DeleteByUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockHistoryRepo) TrimToNewest(ctx context.Context, userID uint, keep int) error {
	args := m.Called(ctx, userID, keep)
	return args.Error(0)
}

func testApplicant() *models.Applicant {
	return &models.Applicant{
		ID:        "app-001",
		Email:     "jane.doe@example.com",
		Name:      models.ApplicantName{Full: "Jane Doe"},
		ApexScore: 80,
		RiskLevel: models.RiskLevelLow,
	}
}

func TestRecord(t *testing.T) {
	repo := new(MockHistoryRepo)
	svc := NewService(repo, zap.NewNop())

	var captured *models.SearchHistory
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.SearchHistory")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*models.SearchHistory)
		}).Return(nil)
	repo.On("TrimToNewest", mock.Anything, uint(7), maxEntriesPerUser).Return(nil)

	err := svc.Record(context.Background(), 7, testApplicant())
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.NotEmpty(t, captured.ID)
	assert.Equal(t, uint(7), captured.UserID)
	assert.Equal(t, "jane.doe@example.com", captured.ApplicantEmail)
	assert.Equal(t, "Jane Doe", captured.ApplicantName)
	assert.Equal(t, float64(80), captured.ApexScore)
	assert.Equal(t, models.RiskLevelLow, captured.RiskLevel)
	assert.WithinDuration(t, time.Now().UTC(), captured.SearchedAt, 5*time.Second)
	assert.Equal(t, "app-001", captured.ApplicantData["id"])

	repo.AssertExpectations(t)
}

func TestRecord_NilApplicant(t *testing.T) {
	repo := new(MockHistoryRepo)
	svc := NewService(repo, zap.NewNop())

	err := svc.Record(context.Background(), 7, nil)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Upsert")
}

func TestRecord_TrimFailureIsNotFatal(t *testing.T) {
	repo := new(MockHistoryRepo)
	svc := NewService(repo, zap.NewNop())

	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	repo.On("TrimToNewest", mock.Anything, uint(7), maxEntriesPerUser).
		Return(assert.AnError)

	err := svc.Record(context.Background(), 7, testApplicant())
	assert.NoError(t, err)
}

func TestCounts(t *testing.T) {
	repo := new(MockHistoryRepo)
	svc := NewService(repo, zap.NewNop())

	repo.On("CountByUser", mock.Anything, uint(7)).Return(int64(42), nil)
	repo.On("CountByUserSince", mock.Anything, uint(7), mock.AnythingOfType("int64")).
		Return(int64(5), nil)

	total, recent, err := svc.Counts(context.Background(), 7, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.Equal(t, int64(5), recent)
}

package apexapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"apexscore/internal/repositories/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const applicantJSON = `{
	"id": "app-001",
	"email": "jane.doe@example.com",
	"name": {"first": "Jane", "last": "Doe", "full": "Jane Doe"},
	"sim_registration": "VERIFIED",
	"device_fingerprint": {"device_id": "dev-1", "is_rooted": false, "vpn_detected": false},
	"bank_accounts": [{"bank_name": "First Bank", "status": "Active"}],
	"tfd": {"currency": "NGN", "currency_symbol": "₦", "outstanding_debt": 100000, "loan_history": []},
	"bsi": {"location_consistency": 85, "device_stability": 90, "sim_changes": 80, "ip_region_match": 95, "travel_frequency": 40},
	"apex_score": 80,
	"risk_level": "Low"
}`

func testCache(t *testing.T) *cache.CacheService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.NewCacheService(client, time.Minute)
}

func TestSearchByEmail(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "jane.doe@example.com", r.URL.Query().Get("email"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(applicantJSON))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL}, testCache(t), zap.NewNop())

	applicant, err := c.SearchByEmail(context.Background(), "jane.doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "app-001", applicant.ID)
	assert.Equal(t, float64(80), applicant.ApexScore)
	require.NotNil(t, applicant.BSI)
	assert.Equal(t, float64(85), applicant.BSI.LocationConsistency)

	// Second lookup is served from cache.
	again, err := c.SearchByEmail(context.Background(), "jane.doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, applicant.ID, again.ID)
	assert.Equal(t, 1, hits)
}

func TestSearchByEmail_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL}, nil, zap.NewNop())

	_, err := c.SearchByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrApplicantNotFound)
}

func TestSearchByEmail_RejectsInvalidPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing tfd and bsi.
		_, _ = w.Write([]byte(`{"id": "x", "email": "a@b.c", "apex_score": 50, "risk_level": "Low", "device_fingerprint": {"is_rooted": false, "vpn_detected": false}}`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL}, nil, zap.NewNop())

	_, err := c.SearchByEmail(context.Background(), "a@b.c")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGetApplicant_NotFoundIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL}, nil, zap.NewNop())

	_, err := c.GetApplicant(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrApplicantNotFound)
}

func TestListApplicants(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/applicants", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"applicants": [` + applicantJSON + `]}`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL}, nil, zap.NewNop())

	applicants, err := c.ListApplicants(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	assert.Equal(t, "jane.doe@example.com", applicants[0].Email)
}

func TestGetStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{"total_applicants": 1200, "active_defaults": 37, "high_risk_percentage": "12.5%"}`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL}, nil, zap.NewNop())

	stats, err := c.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1200, stats.TotalApplicants)
	assert.Equal(t, 37, stats.ActiveDefaults)
	assert.Equal(t, "12.5%", stats.HighRiskPercentage)
}

func TestGetStats_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL}, nil, zap.NewNop())

	_, err := c.GetStats(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

// Package apexapi is the client for the upstream ApexScore API, which serves
// pre-scored applicant records. The dashboard fetches records verbatim and
// never mutates them; successful email lookups are cached in Redis.
package apexapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"apexscore/internal/metrics"
	"apexscore/internal/models"
	"apexscore/internal/repositories/cache"

	"go.uber.org/zap"
)

var (
	ErrApplicantNotFound = errors.New("applicant not found")
	ErrUpstream          = errors.New("upstream scoring API error")
)

// Client talks to the upstream scoring API.
type Client interface {
	SearchByEmail(ctx context.Context, email string) (*models.Applicant, error)
	GetApplicant(ctx context.Context, id string) (*models.Applicant, error)
	ListApplicants(ctx context.Context, limit int) ([]models.Applicant, error)
	GetStats(ctx context.Context) (*models.PortfolioStats, error)
}

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.CacheService
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewClient(cfg Config, cacheService *cache.CacheService, logger *zap.Logger) Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}
	return &client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cacheService,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

func (c *client) SearchByEmail(ctx context.Context, email string) (*models.Applicant, error) {
	if c.cache != nil {
		if applicant, err := c.cache.GetApplicantByEmail(ctx, email); err == nil {
			metrics.ApplicantCache.WithLabelValues("hit").Inc()
			return applicant, nil
		}
		metrics.ApplicantCache.WithLabelValues("miss").Inc()
	}

	body, status, err := c.get(ctx, "/api/search", url.Values{"email": {email}})
	if err != nil {
		metrics.ApplicantLookups.WithLabelValues("error").Inc()
		return nil, err
	}
	if status == http.StatusNotFound {
		metrics.ApplicantLookups.WithLabelValues("not_found").Inc()
		return nil, ErrApplicantNotFound
	}
	if status != http.StatusOK {
		metrics.ApplicantLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: search returned status %d", ErrUpstream, status)
	}

	applicant, err := decodeApplicant(body)
	if err != nil {
		metrics.ApplicantLookups.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ApplicantLookups.WithLabelValues("success").Inc()

	if c.cache != nil {
		if err := c.cache.CacheApplicant(ctx, applicant, c.cacheTTL); err != nil {
			c.logger.Warn("failed to cache applicant", zap.String("email", email), zap.Error(err))
		}
	}
	return applicant, nil
}

func (c *client) GetApplicant(ctx context.Context, id string) (*models.Applicant, error) {
	body, status, err := c.get(ctx, "/api/applicant/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrApplicantNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: applicant returned status %d", ErrUpstream, status)
	}
	return decodeApplicant(body)
}

func (c *client) ListApplicants(ctx context.Context, limit int) ([]models.Applicant, error) {
	if limit <= 0 {
		limit = 50
	}
	body, status, err := c.get(ctx, "/api/applicants", url.Values{"limit": {strconv.Itoa(limit)}})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: applicants returned status %d", ErrUpstream, status)
	}

	var payload struct {
		Applicants []models.Applicant `json:"applicants"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed applicants response: %v", ErrUpstream, err)
	}
	return payload.Applicants, nil
}

func (c *client) GetStats(ctx context.Context) (*models.PortfolioStats, error) {
	body, status, err := c.get(ctx, "/api/stats", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: stats returned status %d", ErrUpstream, status)
	}

	var stats models.PortfolioStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("%w: malformed stats response: %v", ErrUpstream, err)
	}
	return &stats, nil
}

func (c *client) get(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamLatency.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}
	return body, resp.StatusCode, nil
}

// Package jobsearch queries the JSearch API on RapidAPI and normalizes the
// postings it returns.
package jobsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"jobx-backend/internal/shared/apperr"
	"jobx-backend/internal/shared/metrics"
	"jobx-backend/internal/shared/telemetry"
)

const (
	DefaultBaseURL = "https://jsearch.p.rapidapi.com/search"
	DefaultHost    = "jsearch.p.rapidapi.com"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 2048
)

// ErrNotConfigured is returned by Search when no API key is configured.
var ErrNotConfigured = apperr.Configuration(
	"search_not_configured",
	"Job search not configured. Please set JSEARCH_API_KEY in environment variables.",
)

// Config holds the RapidAPI connection settings.
type Config struct {
	APIKey  string
	BaseURL string
	Host    string
	Country string
	Timeout time.Duration
	// RatePerSec and Burst throttle outbound calls; zero disables throttling.
	RatePerSec float64
	Burst      int
}

// Client calls JSearch.
type Client struct {
	apiKey     string
	baseURL    string
	host       string
	country    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a Client. A missing key is reported on the first search.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = DefaultHost
	}
	country := strings.TrimSpace(cfg.Country)
	if country == "" {
		country = "us"
	}
	var limiter *rate.Limiter
	if cfg.RatePerSec > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst)
	}
	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    baseURL,
		host:       host,
		country:    country,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
	}
}

type searchResponse struct {
	Status string            `json:"status"`
	Data   []json.RawMessage `json:"data"`
}

// Search runs one query for the criteria and returns normalized postings.
// Items that cannot be decoded are skipped.
func (c *Client) Search(ctx context.Context, criteria Criteria, numPages int) ([]Posting, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if numPages <= 0 {
		numPages = 1
	}

	start := time.Now()
	postings, err := c.search(ctx, criteria, numPages)
	metrics.ObserveSearch(metrics.Since(start), err != nil)
	if err != nil {
		telemetry.Error("jobsearch.failed", map[string]any{
			"role":     criteria.Role,
			"location": criteria.Location,
			"error":    err.Error(),
		})
		return nil, err
	}
	return postings, nil
}

func (c *Client) search(ctx context.Context, criteria Criteria, numPages int) ([]Posting, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apperr.Timeout("search_timeout", "Job search throttled past the request deadline", err)
		}
	}

	query := BuildQuery(criteria.Role, criteria.Experience, criteria.Location)
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("num_pages", strconv.Itoa(numPages))
	params.Set("country", c.country)
	params.Set("date_posted", "all")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperr.Internal("build job search request", err)
	}
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, apperr.Upstream(
			"search_api_error",
			fmt.Sprintf("Job search API error: %d", resp.StatusCode),
			resp.StatusCode,
			errors.New(strings.TrimSpace(string(body))),
		)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		if isTimeout(ctx, err) {
			return nil, transportError(ctx, err)
		}
		return nil, apperr.Upstream("search_api_error", "Job search API returned an unreadable response", resp.StatusCode, err)
	}

	postings := make([]Posting, 0, len(parsed.Data))
	skipped := 0
	for i, item := range parsed.Data {
		p, err := normalize(item)
		if err != nil {
			skipped++
			telemetry.Warn("jobsearch.item_skipped", map[string]any{"index": i, "error": err.Error()})
			continue
		}
		postings = append(postings, p)
	}
	metrics.AddPostingsSkipped(skipped)
	telemetry.Info("jobsearch.complete", map[string]any{
		"query":   query,
		"results": len(postings),
		"skipped": skipped,
	})
	return postings, nil
}

func isTimeout(ctx context.Context, err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())
}

func transportError(ctx context.Context, err error) error {
	if isTimeout(ctx, err) {
		return apperr.Timeout("search_timeout", "Job search request timed out", err)
	}
	return apperr.Upstream("search_network_error", "Network error contacting job search API", 0, err)
}

// Package sportmonks talks to the Sportmonks v3 football API and normalizes
// its fixture and statistics payloads into the service's models.
package sportmonks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fixture-analyst-service/internal/metrics"
	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
)

const (
	// DefaultBaseURL is the football API root
	DefaultBaseURL = "https://api.sportmonks.com/v3/football"

	fixtureListIncludes = "participants;league.country;scores;state;statistics"
	statisticsIncludes  = "statistics;participants"

	providerName = "sportmonks"
	maxErrorBody = 4 << 10
)

// ErrNotConfigured is returned when no API token is set
var ErrNotConfigured = errors.New("sportmonks API token not configured")

// ErrInvalidEndpoint is returned by Forward for endpoints outside the API root
var ErrInvalidEndpoint = errors.New("invalid endpoint")

// StatusError is returned when the provider answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sportmonks API error: status=%d, body=%s", e.StatusCode, e.Body)
}

// ClientConfig holds Sportmonks client configuration
type ClientConfig struct {
	BaseURL      string
	APIToken     string
	Timeout      time.Duration
	Timezone     string // display timezone for kickoff times, e.g. "Europe/Rome"
	RegionFilter bool   // keep only European and international fixtures in date lists
}

// Client is a Sportmonks football API client
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiToken     string
	location     *time.Location
	regionFilter bool
	now          func() time.Time
	logger       zerolog.Logger
}

// NewClient creates a new Sportmonks client
func NewClient(config ClientConfig, logger zerolog.Logger) (*Client, error) {
	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", config.Timezone, err)
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiToken:     config.APIToken,
		location:     loc,
		regionFilter: config.RegionFilter,
		now:          time.Now,
		logger:       logger.With().Str("component", "sportmonks_client").Logger(),
	}, nil
}

// Configured reports whether an API token is set
func (c *Client) Configured() bool {
	return c.apiToken != ""
}

// Fixtures returns live fixtures, or the fixtures of the given day when live
// is false. A zero date means today.
func (c *Client) Fixtures(ctx context.Context, live bool, date time.Time) ([]models.Fixture, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	endpoint := "livescores"
	if !live {
		if date.IsZero() {
			date = c.now()
		}
		endpoint = "fixtures/date/" + date.UTC().Format("2006-01-02")
	}

	body, err := c.get(ctx, endpoint, fixtureListIncludes, "")
	if err != nil {
		return nil, err
	}

	var resp fixturesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}

	raws := resp.Data
	if c.regionFilter {
		raws = FilterRegion(raws, live)
	}

	fixtures := NormalizeFixtures(raws, c.location)

	c.logger.Debug().
		Bool("live", live).
		Int("received", len(resp.Data)).
		Int("kept", len(fixtures)).
		Msg("fetched fixtures")

	return fixtures, nil
}

// Statistics returns the statistics of one fixture, or nil when the provider
// reports none.
func (c *Client) Statistics(ctx context.Context, fixtureID string) (*models.MatchStatistics, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := c.get(ctx, "fixtures/"+url.PathEscape(fixtureID), statisticsIncludes, "")
	if err != nil {
		return nil, err
	}

	var resp fixtureResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode fixture statistics: %w", err)
	}
	if resp.Data == nil {
		return nil, nil
	}

	return NormalizeStatistics(*resp.Data), nil
}

// Forward performs a raw GET against endpoint with the server-held token and
// returns the provider's status code and body untouched.
func (c *Client) Forward(ctx context.Context, endpoint, includes, filters string) (int, []byte, error) {
	if !c.Configured() {
		return 0, nil, ErrNotConfigured
	}

	endpoint = strings.TrimPrefix(endpoint, "/")
	if endpoint == "" || strings.Contains(endpoint, "..") || strings.Contains(endpoint, "://") {
		return 0, nil, ErrInvalidEndpoint
	}

	resp, err := c.do(ctx, c.buildURL(endpoint, includes, filters))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}

	return resp.StatusCode, body, nil
}

func (c *Client) get(ctx context.Context, endpoint, includes, filters string) ([]byte, error) {
	resp, err := c.do(ctx, c.buildURL(endpoint, includes, filters))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ProviderLatency.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return nil, fmt.Errorf("making request: %w", err)
	}

	result := "ok"
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result = "error"
	}
	metrics.ProviderRequests.WithLabelValues(providerName, result).Inc()

	return resp, nil
}

func (c *Client) buildURL(endpoint, includes, filters string) string {
	q := url.Values{}
	q.Set("api_token", c.apiToken)
	if includes != "" {
		q.Set("include", includes)
	}
	if filters != "" {
		q.Set("filters", filters)
	}
	return fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, q.Encode())
}

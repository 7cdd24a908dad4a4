// Package gemini calls the Gemini generative-language REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fixture-analyst-service/internal/metrics"
	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"

	providerName = "gemini"
	maxErrorBody = 4 << 10
)

var (
	// ErrNotConfigured is returned when no API key is set
	ErrNotConfigured = errors.New("gemini API key not configured")
	// ErrEmptyReply is returned when the model produced no text
	ErrEmptyReply = errors.New("gemini returned no text")
)

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini API error: status=%d, body=%s", e.StatusCode, e.Body)
}

// ClientConfig holds Gemini client configuration
type ClientConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature *float64
	SearchTool  bool // ground answers with the Google Search tool
}

// Reply is the text of the first candidate and its grounding sources
type Reply struct {
	Text    string
	Sources []models.Source
}

// Client is a generateContent client
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature *float64
	searchTool  bool
	logger      zerolog.Logger
}

// NewClient creates a new Gemini client
func NewClient(config ClientConfig, logger zerolog.Logger) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := config.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      config.APIKey,
		model:       model,
		temperature: config.Temperature,
		searchTool:  config.SearchTool,
		logger:      logger.With().Str("component", "gemini_client").Logger(),
	}
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	Tools            []tool            `json:"tools,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content           content `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// Generate sends prompt as a single user turn and returns the reply text
func (c *Client) Generate(ctx context.Context, prompt string) (*Reply, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	reqBody := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	if c.temperature != nil {
		reqBody.GenerationConfig = &generationConfig{Temperature: c.temperature}
	}
	if c.searchTool {
		reqBody.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	target := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ProviderLatency.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	metrics.ProviderRequests.WithLabelValues(providerName, "ok").Inc()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(out.Candidates) == 0 {
		return nil, ErrEmptyReply
	}

	cand := out.Candidates[0]
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return nil, ErrEmptyReply
	}

	reply := &Reply{Text: sb.String(), Sources: []models.Source{}}
	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			reply.Sources = append(reply.Sources, models.Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}

	c.logger.Debug().
		Str("model", c.model).
		Int("chars", sb.Len()).
		Int("sources", len(reply.Sources)).
		Msg("generated content")

	return reply, nil
}

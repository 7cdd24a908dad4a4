package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fixture-analyst-service/internal/provider/gemini"
	"github.com/cypherlabdev/fixture-analyst-service/internal/provider/sportmonks"
)

// Forwarder relays raw GET requests to the football data API
type Forwarder interface {
	Configured() bool
	Forward(ctx context.Context, endpoint, includes, filters string) (int, []byte, error)
}

// Generator produces text from a prompt
type Generator interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (*gemini.Reply, error)
}

// ProxyHandler forwards browser requests to the upstream APIs with
// credentials held by the server
type ProxyHandler struct {
	sportmonks Forwarder
	gemini     Generator
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewProxyHandler creates a new proxy handler
func NewProxyHandler(forwarder Forwarder, generator Generator, logger zerolog.Logger) *ProxyHandler {
	return &ProxyHandler{
		sportmonks: forwarder,
		gemini:     generator,
		validate:   validator.New(),
		logger:     logger.With().Str("component", "proxy_handler").Logger(),
	}
}

// RegisterRoutes registers the proxy routes on r
func (h *ProxyHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sportmonks", h.handleSportmonks)
	r.Post("/gemini", h.handleGemini)
}

// handleSportmonks handles GET /api/sportmonks?endpoint=&includes=&filters=
func (h *ProxyHandler) handleSportmonks(w http.ResponseWriter, r *http.Request) {
	if !h.sportmonks.Configured() {
		errorResponse(w, h.logger, http.StatusInternalServerError, "API token not configured")
		return
	}

	query := forwardedQuery(r.URL.RawQuery)
	endpoint := query.Get("endpoint")
	if endpoint == "" {
		errorResponse(w, h.logger, http.StatusBadRequest, "endpoint parameter is required")
		return
	}

	status, body, err := h.sportmonks.Forward(r.Context(), endpoint, query.Get("includes"), query.Get("filters"))
	if errors.Is(err, sportmonks.ErrInvalidEndpoint) {
		errorResponse(w, h.logger, http.StatusBadRequest, "invalid endpoint")
		return
	} else if err != nil {
		h.logger.Error().Err(err).Str("endpoint", endpoint).Msg("sportmonks forward failed")
		jsonResponse(w, h.logger, http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Details: err.Error(),
		})
		return
	}

	if status < 200 || status > 299 {
		h.logger.Warn().Int("status", status).Str("endpoint", endpoint).Msg("sportmonks returned an error")
		jsonResponse(w, h.logger, status, ErrorResponse{
			Error:   "Sportmonks API error",
			Status:  status,
			Details: strings.TrimSpace(string(body)),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to write proxied body")
	}
}

// forwardedQuery parses a query string splitting on '&' only. Sportmonks
// include and filter lists use ';' as their separator, which url.ParseQuery
// rejects. Pairs that fail to unescape are dropped.
func forwardedQuery(rawQuery string) url.Values {
	values := url.Values{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			continue
		}
		values.Add(key, value)
	}
	return values
}

// GenerateRequest is the body of POST /api/gemini
type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// GenerateResponse is the success body of POST /api/gemini
type GenerateResponse struct {
	Text string `json:"text"`
}

// handleGemini handles POST /api/gemini
func (h *ProxyHandler) handleGemini(w http.ResponseWriter, r *http.Request) {
	if !h.gemini.Configured() {
		errorResponse(w, h.logger, http.StatusInternalServerError, "API key not configured")
		return
	}

	var req GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorResponse(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.StructCtx(r.Context(), req); err != nil {
		errorResponse(w, h.logger, http.StatusBadRequest, "prompt is required")
		return
	}

	reply, err := h.gemini.Generate(r.Context(), req.Prompt)
	if err != nil {
		h.logger.Error().Err(err).Msg("gemini generate failed")
		jsonResponse(w, h.logger, http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to generate content",
			Details: err.Error(),
		})
		return
	}

	jsonResponse(w, h.logger, http.StatusOK, GenerateResponse{Text: reply.Text})
}

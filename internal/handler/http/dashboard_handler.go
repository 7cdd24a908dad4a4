package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fixture-analyst-service/internal/ledger"
	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
	"github.com/cypherlabdev/fixture-analyst-service/internal/service"
	"github.com/cypherlabdev/fixture-analyst-service/pkg/ranking"
)

// DashboardHandler handles HTTP requests for fixtures, analyses and bets
type DashboardHandler struct {
	service  *service.DashboardService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewDashboardHandler creates a new dashboard HTTP handler
func NewDashboardHandler(service *service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// RegisterRoutes registers the dashboard routes on r
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/fixtures", h.handleListFixtures)
	r.Get("/fixtures/{id}/statistics", h.handleStatistics)

	r.Post("/analysis", h.handleAnalyze)
	r.Get("/analysis/current", h.handleCurrentAnalysis)

	r.Get("/bets", h.handleBetHistory)
	r.Delete("/bets", h.handleClearBets)
	r.Get("/bets/stats", h.handleBetStats)
	r.Get("/bets/{id}", h.handleGetBet)
	r.Put("/bets/{id}", h.handleSaveBet)
	r.Patch("/bets/{id}/draft", h.handleDraftBet)
	r.Post("/bets/{id}/draft/flush", h.handleFlushDraft)
	r.Post("/bets/{id}/settle", h.handleSettleBet)
	r.Delete("/bets/{id}", h.handleDeleteBet)
}

// FixtureListResponse is the body of GET /fixtures
type FixtureListResponse struct {
	View     string           `json:"view"`
	Live     bool             `json:"live"`
	Count    int              `json:"count"`
	Leagues  []string         `json:"leagues"`
	Fixtures []ranking.Scored `json:"fixtures"`
}

// handleListFixtures handles GET /api/v1/fixtures?live=&view=&refresh=.
// The view defaults to all for live lists and top otherwise.
func (h *DashboardHandler) handleListFixtures(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	live, err := boolParam(query.Get("live"))
	if err != nil {
		errorResponse(w, h.logger, http.StatusBadRequest, "live must be a boolean")
		return
	}
	refresh, err := boolParam(query.Get("refresh"))
	if err != nil {
		errorResponse(w, h.logger, http.StatusBadRequest, "refresh must be a boolean")
		return
	}

	view := query.Get("view")
	if view == "" {
		view = defaultView(live)
	}

	list := h.service.FilteredFixtures(r.Context(), live, refresh, view)

	jsonResponse(w, h.logger, http.StatusOK, FixtureListResponse{
		View:     view,
		Live:     live,
		Count:    len(list.Fixtures),
		Leagues:  list.Leagues,
		Fixtures: list.Fixtures,
	})
}

// defaultView lists every live match and ranks the upcoming ones
func defaultView(live bool) string {
	if live {
		return ranking.ViewAll
	}
	return ranking.ViewTop
}

// handleStatistics handles GET /api/v1/fixtures/{id}/statistics
func (h *DashboardHandler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	fixtureID := chi.URLParam(r, "id")

	stats := h.service.Statistics(r.Context(), fixtureID)
	if stats == nil {
		errorResponse(w, h.logger, http.StatusNotFound, "statistics not available")
		return
	}

	jsonResponse(w, h.logger, http.StatusOK, stats)
}

// AnalysisRequest is the body of POST /analysis. Live defaults to the
// fixture's own status.
type AnalysisRequest struct {
	Fixture models.Fixture `json:"fixture"`
	Live    *bool          `json:"live"`
}

// handleAnalyze handles POST /api/v1/analysis
func (h *DashboardHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if !h.decode(w, r, &req) {
		return
	}

	live := req.Fixture.IsLive()
	if req.Live != nil {
		live = *req.Live
	}

	result := h.service.Analyze(r.Context(), req.Fixture, live)

	jsonResponse(w, h.logger, http.StatusOK, result)
}

// handleCurrentAnalysis handles GET /api/v1/analysis/current
func (h *DashboardHandler) handleCurrentAnalysis(w http.ResponseWriter, r *http.Request) {
	result, ok := h.service.Current()
	if !ok {
		errorResponse(w, h.logger, http.StatusNotFound, "no analysis selected")
		return
	}

	jsonResponse(w, h.logger, http.StatusOK, result)
}

// BetView is a bet record with its profit/loss
type BetView struct {
	models.BetRecord
	PnL models.RecordResult `json:"pnl"`
}

func newBetView(rec models.BetRecord) BetView {
	return BetView{BetRecord: rec, PnL: ledger.RecordPnL(rec)}
}

// BetHistoryResponse is the body of GET /bets
type BetHistoryResponse struct {
	Count int       `json:"count"`
	Bets  []BetView `json:"bets"`
}

type historyQuery struct {
	Status string `validate:"omitempty,oneof=all won lost pending ALL WON LOST PENDING"`
	Search string `validate:"max=100"`
}

// handleBetHistory handles GET /api/v1/bets?status=&q=
func (h *DashboardHandler) handleBetHistory(w http.ResponseWriter, r *http.Request) {
	q := historyQuery{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("q"),
	}
	if err := h.validate.StructCtx(r.Context(), q); err != nil {
		validationResponse(w, h.logger, err)
		return
	}

	records := h.service.BetHistory(ledger.HistoryFilter{Status: q.Status, Search: q.Search})

	views := make([]BetView, len(records))
	for i, rec := range records {
		views[i] = newBetView(rec)
	}

	jsonResponse(w, h.logger, http.StatusOK, BetHistoryResponse{Count: len(views), Bets: views})
}

// handleBetStats handles GET /api/v1/bets/stats
func (h *DashboardHandler) handleBetStats(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, h.logger, http.StatusOK, h.service.BetStats())
}

// handleGetBet handles GET /api/v1/bets/{id}
func (h *DashboardHandler) handleGetBet(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.service.Bet(chi.URLParam(r, "id"))
	if !ok {
		errorResponse(w, h.logger, http.StatusNotFound, "bet not found")
		return
	}

	jsonResponse(w, h.logger, http.StatusOK, newBetView(rec))
}

// BetRequest is the body of PUT /bets/{id} and PATCH /bets/{id}/draft.
// Stake and odds are stored exactly as typed.
type BetRequest struct {
	HomeTeam     string         `json:"home_team" validate:"required,max=100"`
	AwayTeam     string         `json:"away_team" validate:"required,max=100"`
	HomeTeamLogo string         `json:"home_team_logo" validate:"omitempty,url"`
	AwayTeamLogo string         `json:"away_team_logo" validate:"omitempty,url"`
	Selection    string         `json:"selection" validate:"max=120"`
	Stake        string         `json:"stake" validate:"max=32"`
	Odds         string         `json:"odds" validate:"max=32"`
	Outcome      models.Outcome `json:"outcome" validate:"omitempty,oneof=pending won lost void"`
}

func (req BetRequest) record(fixtureID string) models.BetRecord {
	return models.BetRecord{
		FixtureID:    fixtureID,
		HomeTeam:     req.HomeTeam,
		AwayTeam:     req.AwayTeam,
		HomeTeamLogo: req.HomeTeamLogo,
		AwayTeamLogo: req.AwayTeamLogo,
		Selection:    req.Selection,
		Stake:        req.Stake,
		Odds:         req.Odds,
		Outcome:      req.Outcome,
	}
}

// handleSaveBet handles PUT /api/v1/bets/{id}
func (h *DashboardHandler) handleSaveBet(w http.ResponseWriter, r *http.Request) {
	var req BetRequest
	if !h.decode(w, r, &req) {
		return
	}

	saved := h.service.SaveBet(r.Context(), req.record(chi.URLParam(r, "id")))

	jsonResponse(w, h.logger, http.StatusOK, newBetView(saved))
}

// handleDraftBet handles PATCH /api/v1/bets/{id}/draft
func (h *DashboardHandler) handleDraftBet(w http.ResponseWriter, r *http.Request) {
	var req BetRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.service.DraftBet(req.record(chi.URLParam(r, "id")))

	jsonResponse(w, h.logger, http.StatusAccepted, map[string]string{
		"status": "scheduled",
	})
}

// handleFlushDraft handles POST /api/v1/bets/{id}/draft/flush
func (h *DashboardHandler) handleFlushDraft(w http.ResponseWriter, r *http.Request) {
	flushed := h.service.FlushDraft(chi.URLParam(r, "id"))

	jsonResponse(w, h.logger, http.StatusOK, map[string]bool{
		"flushed": flushed,
	})
}

// SettleRequest is the body of POST /bets/{id}/settle
type SettleRequest struct {
	Outcome models.Outcome `json:"outcome" validate:"required,oneof=pending won lost void"`
}

// handleSettleBet handles POST /api/v1/bets/{id}/settle
func (h *DashboardHandler) handleSettleBet(w http.ResponseWriter, r *http.Request) {
	var req SettleRequest
	if !h.decode(w, r, &req) {
		return
	}

	rec, err := h.service.SettleBet(r.Context(), chi.URLParam(r, "id"), req.Outcome)
	if errors.Is(err, ledger.ErrNotFound) {
		errorResponse(w, h.logger, http.StatusNotFound, "bet not found")
		return
	} else if err != nil {
		errorResponse(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	jsonResponse(w, h.logger, http.StatusOK, newBetView(rec))
}

// handleDeleteBet handles DELETE /api/v1/bets/{id}
func (h *DashboardHandler) handleDeleteBet(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBet(r.Context(), chi.URLParam(r, "id")); err != nil {
		errorResponse(w, h.logger, http.StatusNotFound, "bet not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleClearBets handles DELETE /api/v1/bets
func (h *DashboardHandler) handleClearBets(w http.ResponseWriter, r *http.Request) {
	n := h.service.ClearBets(r.Context())

	jsonResponse(w, h.logger, http.StatusOK, map[string]int{
		"cleared": n,
	})
}

// decode reads a JSON body into dest and validates it, writing a 400 on failure
func (h *DashboardHandler) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := decodeJSON(w, r, dest); err != nil {
		errorResponse(w, h.logger, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.StructCtx(r.Context(), dest); err != nil {
		validationResponse(w, h.logger, err)
		return false
	}
	return true
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(v))
}

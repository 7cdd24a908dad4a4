package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fixture-analyst-service/internal/cache"
	"github.com/cypherlabdev/fixture-analyst-service/internal/ledger"
	"github.com/cypherlabdev/fixture-analyst-service/internal/metrics"
	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
	"github.com/cypherlabdev/fixture-analyst-service/internal/provider/gemini"
	"github.com/cypherlabdev/fixture-analyst-service/pkg/datablock"
	"github.com/cypherlabdev/fixture-analyst-service/pkg/ranking"
)

// FallbackSummary is the narrative of an analysis that could not be generated
const FallbackSummary = "Analysis not available at the moment."

// syntheticIDPrefix marks fixtures that do not come from the data API
const syntheticIDPrefix = "match-"

// Ticket identifies one fixture selection. Only the latest ticket may
// publish its analysis.
type Ticket struct {
	seq       uint64
	FixtureID string
}

// FixtureList is a ranked or filtered view of the fixture list
type FixtureList struct {
	Fixtures []ranking.Scored
	Leagues  []string
}

// Config tunes the dashboard service
type Config struct {
	TopN      int
	SaveDelay time.Duration
}

// DashboardService orchestrates fixture listing, analysis and the bet ledger
type DashboardService struct {
	fixtures  FixtureProvider
	analyst   AnalysisProvider
	cache     Cache
	publisher EventPublisher
	ledger    *ledger.Ledger
	drafts    *ledger.DraftSaver
	topN      int
	now       func() time.Time
	logger    zerolog.Logger

	mu      sync.Mutex
	seq     uint64
	current *models.AnalysisResult
}

// NewDashboardService creates a new dashboard service. publisher may be nil.
func NewDashboardService(
	fixtures FixtureProvider,
	analyst AnalysisProvider,
	cache Cache,
	publisher EventPublisher,
	book *ledger.Ledger,
	config Config,
	logger zerolog.Logger,
) *DashboardService {
	topN := config.TopN
	if topN <= 0 {
		topN = ranking.DefaultTopN
	}

	s := &DashboardService{
		fixtures:  fixtures,
		analyst:   analyst,
		cache:     cache,
		publisher: publisher,
		ledger:    book,
		topN:      topN,
		now:       time.Now,
		logger:    logger.With().Str("component", "dashboard_service").Logger(),
	}
	s.drafts = ledger.NewDraftSaver(config.SaveDelay, func(rec models.BetRecord) {
		s.saveBet(context.Background(), rec, "draft")
	}, logger)

	return s
}

// ListFixtures returns the live fixtures or today's fixtures with a
// cache-first strategy. Provider failures yield an empty list.
func (s *DashboardService) ListFixtures(ctx context.Context, live bool) []models.Fixture {
	day := s.now()

	cached, err := s.cache.GetFixtures(ctx, live, day)
	if err == nil {
		s.logger.Debug().
			Bool("live", live).
			Int("count", len(cached)).
			Msg("cache hit for fixtures")
		return cached
	}
	if !isCacheMiss(err) {
		s.logger.Warn().
			Err(err).
			Bool("live", live).
			Msg("cache error, fetching fixtures from provider")
	}

	fixtures, err := s.fixtures.Fixtures(ctx, live, day)
	if err != nil {
		s.logger.Error().
			Err(err).
			Bool("live", live).
			Msg("failed to fetch fixtures")
		return []models.Fixture{}
	}
	if fixtures == nil {
		fixtures = []models.Fixture{}
	}

	if err := s.cache.SetFixtures(ctx, live, day, fixtures); err != nil {
		s.logger.Warn().
			Err(err).
			Bool("live", live).
			Msg("failed to cache fixtures")
		// Don't fail the request on cache errors
	}

	return fixtures
}

// RefreshFixtures drops the cached list and fetches it again
func (s *DashboardService) RefreshFixtures(ctx context.Context, live bool) []models.Fixture {
	if err := s.cache.InvalidateFixtures(ctx, live, s.now()); err != nil {
		s.logger.Warn().Err(err).Bool("live", live).Msg("failed to invalidate fixtures")
	}
	return s.ListFixtures(ctx, live)
}

// FilteredFixtures returns the list for a view: "top", "all" or a league name
func (s *DashboardService) FilteredFixtures(ctx context.Context, live, refresh bool, view string) FixtureList {
	var fixtures []models.Fixture
	if refresh {
		fixtures = s.RefreshFixtures(ctx, live)
	} else {
		fixtures = s.ListFixtures(ctx, live)
	}

	return FixtureList{
		Fixtures: ranking.Filter(fixtures, view, s.topN),
		Leagues:  ranking.Leagues(fixtures),
	}
}

// Statistics returns the statistics of a fixture, or nil when unavailable
func (s *DashboardService) Statistics(ctx context.Context, fixtureID string) *models.MatchStatistics {
	cached, err := s.cache.GetStatistics(ctx, fixtureID)
	if err == nil {
		return cached
	}
	if !isCacheMiss(err) {
		s.logger.Warn().Err(err).Str("fixture_id", fixtureID).Msg("cache error for statistics")
	}

	stats, err := s.fixtures.Statistics(ctx, fixtureID)
	if err != nil {
		s.logger.Error().Err(err).Str("fixture_id", fixtureID).Msg("failed to fetch statistics")
		return nil
	}
	if stats == nil {
		return nil
	}

	if err := s.cache.SetStatistics(ctx, fixtureID, stats); err != nil {
		s.logger.Warn().Err(err).Str("fixture_id", fixtureID).Msg("failed to cache statistics")
	}

	return stats
}

// Select starts a new fixture selection and supersedes any earlier one
func (s *DashboardService) Select(fixtureID string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	return Ticket{seq: s.seq, FixtureID: fixtureID}
}

// Complete publishes result as the current analysis if t is still the latest
// selection. Late results of superseded selections are dropped.
func (s *DashboardService) Complete(t Ticket, result models.AnalysisResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.seq != s.seq {
		metrics.AnalysesGenerated.WithLabelValues("superseded").Inc()
		s.logger.Debug().
			Str("fixture_id", t.FixtureID).
			Msg("discarding superseded analysis")
		return false
	}

	s.current = &result
	return true
}

// Current returns the analysis of the latest completed selection
func (s *DashboardService) Current() (models.AnalysisResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.AnalysisResult{}, false
	}
	return *s.current, true
}

// Analyze selects fixture and produces its analysis. The result is always
// returned; it becomes Current only if no newer selection started meanwhile.
func (s *DashboardService) Analyze(ctx context.Context, fixture models.Fixture, live bool) models.AnalysisResult {
	ticket := s.Select(fixture.ID)
	result := s.GenerateAnalysis(ctx, fixture, live)
	s.Complete(ticket, result)
	return result
}

// GenerateAnalysis fetches statistics, asks the analysis provider and parses
// the reply. Failures produce the fallback analysis.
func (s *DashboardService) GenerateAnalysis(ctx context.Context, fixture models.Fixture, live bool) models.AnalysisResult {
	var stats *models.MatchStatistics
	if !strings.HasPrefix(fixture.ID, syntheticIDPrefix) {
		stats = s.Statistics(ctx, fixture.ID)
	}

	prompt := gemini.BuildPrompt(fixture, live, stats)

	reply, err := s.analyst.Generate(ctx, prompt)
	if err != nil || reply == nil || strings.TrimSpace(reply.Text) == "" {
		if err == nil {
			err = gemini.ErrEmptyReply
		}
		s.logger.Error().
			Err(err).
			Str("fixture_id", fixture.ID).
			Bool("live", live).
			Msg("analysis generation failed")
		metrics.AnalysesGenerated.WithLabelValues("fallback").Inc()
		return s.fallbackAnalysis(fixture, live, stats)
	}

	summary, fields := datablock.Parse(reply.Text)
	sources := reply.Sources
	if sources == nil {
		sources = []models.Source{}
	}

	metrics.AnalysesGenerated.WithLabelValues("parsed").Inc()
	s.logger.Info().
		Str("fixture_id", fixture.ID).
		Bool("live", live).
		Str("best_bet", fields.BestBet).
		Int("confidence", fields.Confidence).
		Int("sources", len(sources)).
		Msg("generated analysis")

	return s.buildResult(fixture, live, stats, summary, fields, sources)
}

func (s *DashboardService) fallbackAnalysis(fixture models.Fixture, live bool, stats *models.MatchStatistics) models.AnalysisResult {
	return s.buildResult(fixture, live, stats, FallbackSummary, datablock.DefaultFields(), []models.Source{})
}

func (s *DashboardService) buildResult(
	fixture models.Fixture,
	live bool,
	stats *models.MatchStatistics,
	summary string,
	fields datablock.Fields,
	sources []models.Source,
) models.AnalysisResult {
	return models.AnalysisResult{
		ID:           uuid.New(),
		FixtureID:    fixture.ID,
		Summary:      summary,
		HomeWinProb:  fields.HomeProb,
		DrawProb:     fields.DrawProb,
		AwayWinProb:  fields.AwayProb,
		Prediction:   fields.Prediction,
		BestBet:      fields.BestBet,
		Confidence:   fields.Confidence,
		CurrentScore: currentScore(fields.Score, fixture),
		Sources:      sources,
		IsLive:       live,
		Stats:        stats,
		GeneratedAt:  s.now().UTC(),
	}
}

// currentScore prefers the parsed score, then the fixture's own score
func currentScore(parsed string, fixture models.Fixture) string {
	if parsed != "" && parsed != "-" {
		return parsed
	}
	if fixture.HasScore() {
		return fmt.Sprintf("%d-%d", *fixture.HomeScore, *fixture.AwayScore)
	}
	return "-"
}

// SaveBet stores a bet immediately, replacing any pending draft for it
func (s *DashboardService) SaveBet(ctx context.Context, rec models.BetRecord) models.BetRecord {
	rec = s.withSelection(rec)

	var saved models.BetRecord
	s.drafts.Supersede(rec.FixtureID, func() {
		saved = s.saveBet(ctx, rec, "save")
	})
	return saved
}

// DraftBet schedules a debounced save of an in-progress bet form
func (s *DashboardService) DraftBet(rec models.BetRecord) {
	s.drafts.Edit(s.withSelection(rec))
}

// withSelection fills an empty selection with the best bet of the current
// analysis when that analysis is for the same fixture
func (s *DashboardService) withSelection(rec models.BetRecord) models.BetRecord {
	if strings.TrimSpace(rec.Selection) != "" {
		return rec
	}

	current, ok := s.Current()
	if !ok || current.FixtureID != rec.FixtureID {
		return rec
	}
	if current.BestBet != "" && current.BestBet != datablock.DefaultFields().BestBet {
		rec.Selection = current.BestBet
	}
	return rec
}

// FlushDraft writes a fixture's pending draft now
func (s *DashboardService) FlushDraft(fixtureID string) bool {
	return s.drafts.Flush(fixtureID)
}

// SettleBet sets the outcome of an existing bet
func (s *DashboardService) SettleBet(ctx context.Context, fixtureID string, outcome models.Outcome) (models.BetRecord, error) {
	if !outcome.Valid() {
		return models.BetRecord{}, fmt.Errorf("invalid outcome %q", outcome)
	}

	// A pending draft must land before its outcome changes
	s.drafts.Flush(fixtureID)

	rec, err := s.ledger.Settle(fixtureID, outcome)
	if err != nil {
		return models.BetRecord{}, fmt.Errorf("failed to settle bet: %w", err)
	}

	s.recordWrite("settle")
	s.publish(ctx, models.BetEventSettled, rec)

	s.logger.Info().
		Str("fixture_id", fixtureID).
		Str("outcome", string(outcome)).
		Msg("settled bet")

	return rec, nil
}

// DeleteBet removes a bet and any pending draft for it
func (s *DashboardService) DeleteBet(ctx context.Context, fixtureID string) error {
	var (
		rec models.BetRecord
		ok  bool
	)
	s.drafts.Supersede(fixtureID, func() {
		rec, ok = s.ledger.Get(fixtureID)
		ok = ok && s.ledger.Delete(fixtureID)
	})
	if !ok {
		return ledger.ErrNotFound
	}

	s.recordWrite("delete")
	s.publish(ctx, models.BetEventDeleted, rec)
	return nil
}

// ClearBets empties the ledger and returns how many records were removed
func (s *DashboardService) ClearBets(ctx context.Context) int {
	var records []models.BetRecord
	s.drafts.SupersedeAll(func() {
		records = s.ledger.All()
		s.ledger.Clear()
	})

	s.recordWrite("clear")
	for _, rec := range records {
		s.publish(ctx, models.BetEventDeleted, rec)
	}

	s.logger.Info().Int("count", len(records)).Msg("cleared bet ledger")
	return len(records)
}

// Bet returns the record stored for a fixture
func (s *DashboardService) Bet(fixtureID string) (models.BetRecord, bool) {
	return s.ledger.Get(fixtureID)
}

// BetHistory lists bets matching filter, most recent first
func (s *DashboardService) BetHistory(filter ledger.HistoryFilter) []models.BetRecord {
	return s.ledger.History(filter)
}

// BetStats aggregates the whole ledger
func (s *DashboardService) BetStats() models.LedgerStats {
	return s.ledger.Stats()
}

// Ping checks the cache backend
func (s *DashboardService) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

// Shutdown writes every pending draft
func (s *DashboardService) Shutdown() {
	n := s.drafts.FlushAll()
	s.logger.Info().Int("flushed_drafts", n).Msg("dashboard service stopped")
}

func (s *DashboardService) saveBet(ctx context.Context, rec models.BetRecord, op string) models.BetRecord {
	saved := s.ledger.Save(rec)

	s.recordWrite(op)
	s.publish(ctx, models.BetEventSaved, saved)

	s.logger.Debug().
		Str("fixture_id", saved.FixtureID).
		Str("op", op).
		Msg("saved bet")

	return saved
}

func (s *DashboardService) recordWrite(op string) {
	metrics.LedgerWrites.WithLabelValues(op).Inc()
	metrics.LedgerRecords.Set(float64(s.ledger.Len()))
}

func (s *DashboardService) publish(ctx context.Context, eventType models.BetEventType, rec models.BetRecord) {
	if s.publisher == nil {
		return
	}

	event := models.KafkaBetEvent{
		ID:         uuid.New(),
		Type:       eventType,
		Record:     rec,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishBetEvent(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("fixture_id", rec.FixtureID).
			Str("type", string(eventType)).
			Msg("failed to publish bet event")
	}
}

func isCacheMiss(err error) bool {
	return errors.Is(err, cache.ErrCacheMiss)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/fixture-analyst-service/internal/cache"
	"github.com/cypherlabdev/fixture-analyst-service/internal/ledger"
	"github.com/cypherlabdev/fixture-analyst-service/internal/mocks"
	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
	"github.com/cypherlabdev/fixture-analyst-service/internal/provider/gemini"
	"github.com/cypherlabdev/fixture-analyst-service/pkg/ranking"
)

// testDashboardSetup is a helper struct to hold test dependencies
type testDashboardSetup struct {
	service       *DashboardService
	mockFixtures  *mocks.MockFixtureProvider
	mockAnalyst   *mocks.MockAnalysisProvider
	mockCache     *mocks.MockCache
	mockPublisher *mocks.MockEventPublisher
	ledger        *ledger.Ledger
	ctx           context.Context
	now           time.Time
}

// setupTestDashboard creates a service with mocked dependencies
func setupTestDashboard(t *testing.T) *testDashboardSetup {
	ctrl := gomock.NewController(t)

	setup := &testDashboardSetup{
		mockFixtures:  mocks.NewMockFixtureProvider(ctrl),
		mockAnalyst:   mocks.NewMockAnalysisProvider(ctrl),
		mockCache:     mocks.NewMockCache(ctrl),
		mockPublisher: mocks.NewMockEventPublisher(ctrl),
		ledger:        ledger.New(zerolog.Nop()),
		ctx:           context.Background(),
		now:           time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC),
	}

	setup.service = NewDashboardService(
		setup.mockFixtures,
		setup.mockAnalyst,
		setup.mockCache,
		setup.mockPublisher,
		setup.ledger,
		Config{TopN: 2, SaveDelay: 20 * time.Millisecond},
		zerolog.Nop(),
	)
	setup.service.now = func() time.Time { return setup.now }

	return setup
}

func intPtr(v int) *int { return &v }

func liveFixture() models.Fixture {
	minute := "Live"
	return models.Fixture{
		ID:        "19135003",
		HomeTeam:  "Inter",
		AwayTeam:  "Napoli",
		League:    "Serie A",
		Status:    models.StatusLive,
		HomeScore: intPtr(1),
		AwayScore: intPtr(1),
		Minute:    &minute,
	}
}

func testBet(id string) models.BetRecord {
	return models.BetRecord{
		FixtureID: id,
		HomeTeam:  "Inter",
		AwayTeam:  "Napoli",
		Selection: "Over 2.5",
		Stake:     "10",
		Odds:      "2.0",
	}
}

const analysisReply = `Inter pressing high.

$$DATA_BLOCK$$
SCORE: 1-1
PREDICTION: 2-1
BEST_BET: Over 2.5
CONFIDENCE: 8
PROBS: 50|30|20
$$END_BLOCK$$`

// TestListFixtures_CacheHit tests that a cached list skips the provider
func TestListFixtures_CacheHit(t *testing.T) {
	setup := setupTestDashboard(t)
	cached := []models.Fixture{liveFixture()}

	setup.mockCache.EXPECT().GetFixtures(gomock.Any(), true, setup.now).Return(cached, nil)

	got := setup.service.ListFixtures(setup.ctx, true)

	assert.Equal(t, cached, got)
}

// TestListFixtures_CacheMiss tests fetching and caching on miss
func TestListFixtures_CacheMiss(t *testing.T) {
	setup := setupTestDashboard(t)
	fixtures := []models.Fixture{liveFixture()}

	gomock.InOrder(
		setup.mockCache.EXPECT().GetFixtures(gomock.Any(), false, setup.now).Return(nil, cache.ErrCacheMiss),
		setup.mockFixtures.EXPECT().Fixtures(gomock.Any(), false, setup.now).Return(fixtures, nil),
		setup.mockCache.EXPECT().SetFixtures(gomock.Any(), false, setup.now, fixtures).Return(nil),
	)

	got := setup.service.ListFixtures(setup.ctx, false)

	assert.Equal(t, fixtures, got)
}

// TestListFixtures_CacheErrorsIgnored tests that cache failures do not fail the read
func TestListFixtures_CacheErrorsIgnored(t *testing.T) {
	setup := setupTestDashboard(t)
	fixtures := []models.Fixture{liveFixture()}

	setup.mockCache.EXPECT().GetFixtures(gomock.Any(), true, gomock.Any()).Return(nil, errors.New("connection refused"))
	setup.mockFixtures.EXPECT().Fixtures(gomock.Any(), true, gomock.Any()).Return(fixtures, nil)
	setup.mockCache.EXPECT().SetFixtures(gomock.Any(), true, gomock.Any(), fixtures).Return(errors.New("connection refused"))

	got := setup.service.ListFixtures(setup.ctx, true)

	assert.Equal(t, fixtures, got)
}

// TestListFixtures_ProviderError tests the empty list on provider failure
func TestListFixtures_ProviderError(t *testing.T) {
	setup := setupTestDashboard(t)

	setup.mockCache.EXPECT().GetFixtures(gomock.Any(), true, gomock.Any()).Return(nil, cache.ErrCacheMiss)
	setup.mockFixtures.EXPECT().Fixtures(gomock.Any(), true, gomock.Any()).Return(nil, errors.New("status=401"))

	got := setup.service.ListFixtures(setup.ctx, true)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// TestFilteredFixtures_TopView tests ranking and league listing
func TestFilteredFixtures_TopView(t *testing.T) {
	setup := setupTestDashboard(t)
	fixtures := []models.Fixture{
		{ID: "1", HomeTeam: "A", AwayTeam: "B", League: "Ligue 2"},
		{ID: "2", HomeTeam: "C", AwayTeam: "D", League: "Bundesliga"},
		{ID: "3", HomeTeam: "Arsenal", AwayTeam: "E", League: "Premier League"},
	}

	setup.mockCache.EXPECT().GetFixtures(gomock.Any(), false, gomock.Any()).Return(fixtures, nil)

	list := setup.service.FilteredFixtures(setup.ctx, false, false, ranking.ViewTop)

	require.Len(t, list.Fixtures, 2)
	assert.Equal(t, "3", list.Fixtures[0].ID)
	assert.Equal(t, 35, list.Fixtures[0].Score)
	assert.Equal(t, "2", list.Fixtures[1].ID)
	assert.Equal(t, []string{"Bundesliga", "Ligue 2", "Premier League"}, list.Leagues)
}

// TestFilteredFixtures_Refresh tests that refresh invalidates before reading
func TestFilteredFixtures_Refresh(t *testing.T) {
	setup := setupTestDashboard(t)
	fixtures := []models.Fixture{liveFixture()}

	gomock.InOrder(
		setup.mockCache.EXPECT().InvalidateFixtures(gomock.Any(), true, setup.now).Return(nil),
		setup.mockCache.EXPECT().GetFixtures(gomock.Any(), true, setup.now).Return(nil, cache.ErrCacheMiss),
		setup.mockFixtures.EXPECT().Fixtures(gomock.Any(), true, setup.now).Return(fixtures, nil),
		setup.mockCache.EXPECT().SetFixtures(gomock.Any(), true, setup.now, fixtures).Return(nil),
	)

	list := setup.service.FilteredFixtures(setup.ctx, true, true, ranking.ViewAll)

	require.Len(t, list.Fixtures, 1)
	assert.Equal(t, 0, list.Fixtures[0].Score)
}

// TestStatistics_CacheFirst tests hit, miss and failure paths
func TestStatistics_CacheFirst(t *testing.T) {
	setup := setupTestDashboard(t)
	stats := &models.MatchStatistics{Home: models.TeamStatistics{Possession: 60}}

	setup.mockCache.EXPECT().GetStatistics(gomock.Any(), "1").Return(stats, nil)
	assert.Equal(t, stats, setup.service.Statistics(setup.ctx, "1"))

	setup.mockCache.EXPECT().GetStatistics(gomock.Any(), "2").Return(nil, cache.ErrCacheMiss)
	setup.mockFixtures.EXPECT().Statistics(gomock.Any(), "2").Return(stats, nil)
	setup.mockCache.EXPECT().SetStatistics(gomock.Any(), "2", stats).Return(nil)
	assert.Equal(t, stats, setup.service.Statistics(setup.ctx, "2"))

	setup.mockCache.EXPECT().GetStatistics(gomock.Any(), "3").Return(nil, cache.ErrCacheMiss)
	setup.mockFixtures.EXPECT().Statistics(gomock.Any(), "3").Return(nil, errors.New("timeout"))
	assert.Nil(t, setup.service.Statistics(setup.ctx, "3"))

	setup.mockCache.EXPECT().GetStatistics(gomock.Any(), "4").Return(nil, cache.ErrCacheMiss)
	setup.mockFixtures.EXPECT().Statistics(gomock.Any(), "4").Return(nil, nil)
	assert.Nil(t, setup.service.Statistics(setup.ctx, "4"))
}

// TestAnalyze_Success tests a parsed analysis with statistics and sources
func TestAnalyze_Success(t *testing.T) {
	setup := setupTestDashboard(t)
	fixture := liveFixture()
	stats := &models.MatchStatistics{Home: models.TeamStatistics{Possession: 55}}
	sources := []models.Source{{Title: "News", URI: "https://example.com"}}

	setup.mockCache.EXPECT().GetStatistics(gomock.Any(), fixture.ID).Return(stats, nil)
	setup.mockAnalyst.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (*gemini.Reply, error) {
			assert.Contains(t, prompt, "Inter vs Napoli")
			assert.Contains(t, prompt, "Possession: Inter 55%")
			return &gemini.Reply{Text: analysisReply, Sources: sources}, nil
		})

	result := setup.service.Analyze(setup.ctx, fixture, true)

	assert.Equal(t, "Inter pressing high.", result.Summary)
	assert.Equal(t, "1-1", result.CurrentScore)
	assert.Equal(t, "2-1", result.Prediction)
	assert.Equal(t, "Over 2.5", result.BestBet)
	assert.Equal(t, 8, result.Confidence)
	assert.Equal(t, 50, result.HomeWinProb)
	assert.Equal(t, 30, result.DrawProb)
	assert.Equal(t, 20, result.AwayWinProb)
	assert.Equal(t, sources, result.Sources)
	assert.True(t, result.IsLive)
	assert.Equal(t, stats, result.Stats)
	assert.Equal(t, fixture.ID, result.FixtureID)
	assert.Equal(t, setup.now, result.GeneratedAt)

	current, ok := setup.service.Current()
	require.True(t, ok)
	assert.Equal(t, result.ID, current.ID)
}

// TestAnalyze_SyntheticIDSkipsStatistics tests that match- IDs are not looked up
func TestAnalyze_SyntheticIDSkipsStatistics(t *testing.T) {
	setup := setupTestDashboard(t)
	fixture := models.Fixture{ID: "match-7", HomeTeam: "A", AwayTeam: "B", League: "Friendly"}

	setup.mockAnalyst.EXPECT().Generate(gomock.Any(), gomock.Any()).
		Return(&gemini.Reply{Text: "Plain text without block"}, nil)

	result := setup.service.Analyze(setup.ctx, fixture, false)

	assert.Nil(t, result.Stats)
	assert.Equal(t, "Plain text without block", result.Summary)
	assert.Equal(t, "-", result.CurrentScore)
	assert.Equal(t, 5, result.Confidence)
	assert.NotNil(t, result.Sources)
	assert.Empty(t, result.Sources)
}

// TestAnalyze_Fallback tests the empty analysis on provider failure and empty text
func TestAnalyze_Fallback(t *testing.T) {
	for name, reply := range map[string]struct {
		reply *gemini.Reply
		err   error
	}{
		"error":      {err: errors.New("status=500")},
		"empty text": {reply: &gemini.Reply{Text: "  "}},
		"nil reply":  {},
	} {
		t.Run(name, func(t *testing.T) {
			setup := setupTestDashboard(t)
			fixture := liveFixture()

			setup.mockCache.EXPECT().GetStatistics(gomock.Any(), fixture.ID).Return(nil, cache.ErrCacheMiss)
			setup.mockFixtures.EXPECT().Statistics(gomock.Any(), fixture.ID).Return(nil, nil)
			setup.mockAnalyst.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(reply.reply, reply.err)

			result := setup.service.Analyze(setup.ctx, fixture, true)

			assert.Equal(t, FallbackSummary, result.Summary)
			assert.Equal(t, "N/A", result.Prediction)
			assert.Equal(t, "N/A", result.BestBet)
			assert.Equal(t, 5, result.Confidence)
			assert.Equal(t, 33, result.HomeWinProb)
			assert.Equal(t, 34, result.DrawProb)
			assert.Equal(t, 33, result.AwayWinProb)
			assert.Equal(t, "1-1", result.CurrentScore)
			assert.Empty(t, result.Sources)
		})
	}
}

// TestComplete_SupersededSelection tests that late results are discarded
func TestComplete_SupersededSelection(t *testing.T) {
	setup := setupTestDashboard(t)

	first := setup.service.Select("1")
	second := setup.service.Select("2")

	assert.True(t, setup.service.Complete(second, models.AnalysisResult{FixtureID: "2"}))
	assert.False(t, setup.service.Complete(first, models.AnalysisResult{FixtureID: "1"}))

	current, ok := setup.service.Current()
	require.True(t, ok)
	assert.Equal(t, "2", current.FixtureID)
}

// TestCurrent_Empty tests that no analysis exists before the first selection
func TestCurrent_Empty(t *testing.T) {
	setup := setupTestDashboard(t)

	_, ok := setup.service.Current()

	assert.False(t, ok)
}

// TestCurrentScore tests the score display fallbacks
func TestCurrentScore(t *testing.T) {
	assert.Equal(t, "2-0", currentScore("2-0", liveFixture()))
	assert.Equal(t, "1-1", currentScore("-", liveFixture()))
	assert.Equal(t, "-", currentScore("-", models.Fixture{}))
}

// TestSaveBet_PublishesEvent tests immediate saves
func TestSaveBet_PublishesEvent(t *testing.T) {
	setup := setupTestDashboard(t)

	setup.mockPublisher.EXPECT().PublishBetEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.KafkaBetEvent) error {
			assert.Equal(t, models.BetEventSaved, event.Type)
			assert.Equal(t, "1", event.Record.FixtureID)
			assert.Equal(t, models.OutcomePending, event.Record.Outcome)
			assert.Equal(t, setup.now, event.OccurredAt)
			return nil
		})

	saved := setup.service.SaveBet(setup.ctx, testBet("1"))

	assert.Equal(t, models.OutcomePending, saved.Outcome)
	got, ok := setup.service.Bet("1")
	require.True(t, ok)
	assert.Equal(t, "Over 2.5", got.Selection)
}

// TestSaveBet_PublishFailureIgnored tests that publish errors never surface
func TestSaveBet_PublishFailureIgnored(t *testing.T) {
	setup := setupTestDashboard(t)

	setup.mockPublisher.EXPECT().PublishBetEvent(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	saved := setup.service.SaveBet(setup.ctx, testBet("1"))

	assert.Equal(t, "1", saved.FixtureID)
	assert.Equal(t, 1, setup.ledger.Len())
}

// TestSaveBet_NilPublisher tests running without Kafka
func TestSaveBet_NilPublisher(t *testing.T) {
	setup := setupTestDashboard(t)
	setup.service.publisher = nil

	setup.service.SaveBet(setup.ctx, testBet("1"))

	assert.Equal(t, 1, setup.ledger.Len())
}

// TestDraftBet_Coalesces tests that rapid edits produce one save
func TestDraftBet_Coalesces(t *testing.T) {
	setup := setupTestDashboard(t)

	published := make(chan models.KafkaBetEvent, 1)
	setup.mockPublisher.EXPECT().PublishBetEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.KafkaBetEvent) error {
			published <- event
			return nil
		}).Times(1)

	for _, stake := range []string{"1", "10", "100"} {
		rec := testBet("1")
		rec.Stake = stake
		setup.service.DraftBet(rec)
	}

	select {
	case event := <-published:
		assert.Equal(t, "100", event.Record.Stake)
	case <-time.After(time.Second):
		t.Fatal("draft was not saved")
	}

	rec, ok := setup.service.Bet("1")
	require.True(t, ok)
	assert.Equal(t, "100", rec.Stake)
	assert.Equal(t, 1, setup.ledger.Len())
}

// TestShutdown_FlushesDrafts tests that pending drafts are written on teardown
func TestShutdown_FlushesDrafts(t *testing.T) {
	setup := setupTestDashboard(t)
	setup.service.drafts = ledger.NewDraftSaver(time.Hour, func(rec models.BetRecord) {
		setup.service.saveBet(context.Background(), rec, "draft")
	}, zerolog.Nop())

	setup.mockPublisher.EXPECT().PublishBetEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	setup.service.DraftBet(testBet("1"))
	setup.service.DraftBet(testBet("2"))
	assert.Equal(t, 0, setup.ledger.Len())

	setup.service.Shutdown()

	assert.Equal(t, 2, setup.ledger.Len())
}

// TestSaveBet_DiscardsPendingDraft tests that an explicit save wins over a draft
func TestSaveBet_DiscardsPendingDraft(t *testing.T) {
	setup := setupTestDashboard(t)
	setup.service.drafts = ledger.NewDraftSaver(time.Hour, func(rec models.BetRecord) {
		setup.service.saveBet(context.Background(), rec, "draft")
	}, zerolog.Nop())

	setup.mockPublisher.EXPECT().PublishBetEvent(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	draft := testBet("1")
	draft.Stake = "999"
	setup.service.DraftBet(draft)
	setup.service.SaveBet(setup.ctx, testBet("1"))
	setup.service.Shutdown()

	rec, ok := setup.service.Bet("1")
	require.True(t, ok)
	assert.Equal(t, "10", rec.Stake)
}

// TestSaveBet_FillsSelectionFromAnalysis tests that an empty selection takes
// the best bet of the fixture's current analysis
func TestSaveBet_FillsSelectionFromAnalysis(t *testing.T) {
	setup := setupTestDashboard(t)
	setup.service.publisher = nil

	ticket := setup.service.Select("1")
	setup.service.Complete(ticket, models.AnalysisResult{FixtureID: "1", BestBet: "Over 2.5"})

	tests := []struct {
		name      string
		fixtureID string
		selection string
		expected  string
	}{
		{name: "Empty selection on analysed fixture", fixtureID: "1", selection: "", expected: "Over 2.5"},
		{name: "Typed selection kept", fixtureID: "1", selection: "BTTS", expected: "BTTS"},
		{name: "Other fixture untouched", fixtureID: "2", selection: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testBet(tt.fixtureID)
			rec.Selection = tt.selection

			saved := setup.service.SaveBet(setup.ctx, rec)

			assert.Equal(t, tt.expected, saved.Selection)
		})
	}
}

// TestSaveBet_IgnoresPlaceholderBestBet tests that the parser default is not
// used as a selection
func TestSaveBet_IgnoresPlaceholderBestBet(t *testing.T) {
	setup := setupTestDashboard(t)
	setup.service.publisher = nil

	ticket := setup.service.Select("1")
	setup.service.Complete(ticket, models.AnalysisResult{FixtureID: "1", BestBet: "N/A"})

	rec := testBet("1")
	rec.Selection = ""
	saved := setup.service.SaveBet(setup.ctx, rec)

	assert.Empty(t, saved.Selection)
}

// TestDeleteBet_DropsPendingDraft tests that a deleted bet is not recreated by its draft
func TestDeleteBet_DropsPendingDraft(t *testing.T) {
	setup := setupTestDashboard(t)
	setup.service.publisher = nil
	setup.service.drafts = ledger.NewDraftSaver(time.Hour, func(rec models.BetRecord) {
		setup.service.saveBet(context.Background(), rec, "draft")
	}, zerolog.Nop())

	setup.service.SaveBet(setup.ctx, testBet("1"))
	setup.service.DraftBet(testBet("1"))

	require.NoError(t, setup.service.DeleteBet(setup.ctx, "1"))
	setup.service.Shutdown()

	_, ok := setup.service.Bet("1")
	assert.False(t, ok)
}

// TestSettleBet tests settlement and its errors
func TestSettleBet(t *testing.T) {
	setup := setupTestDashboard(t)

	setup.mockPublisher.EXPECT().PublishBetEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	setup.service.SaveBet(setup.ctx, testBet("1"))

	rec, err := setup.service.SettleBet(setup.ctx, "1", models.OutcomeWon)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeWon, rec.Outcome)

	_, err = setup.service.SettleBet(setup.ctx, "missing", models.OutcomeLost)
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = setup.service.SettleBet(setup.ctx, "1", models.Outcome("maybe"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ledger.ErrNotFound)

	stats := setup.service.BetStats()
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, "10", stats.NetProfit.String())
}

// TestDeleteBet tests removal and the not-found error
func TestDeleteBet(t *testing.T) {
	setup := setupTestDashboard(t)

	setup.mockPublisher.EXPECT().PublishBetEvent(gomock.Any(), gomock.Any()).Return(nil)
	setup.service.SaveBet(setup.ctx, testBet("1"))

	setup.mockPublisher.EXPECT().PublishBetEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.KafkaBetEvent) error {
			assert.Equal(t, models.BetEventDeleted, event.Type)
			return nil
		})
	require.NoError(t, setup.service.DeleteBet(setup.ctx, "1"))

	assert.ErrorIs(t, setup.service.DeleteBet(setup.ctx, "1"), ledger.ErrNotFound)
	assert.Equal(t, 0, setup.ledger.Len())
}

// TestClearBets tests emptying the ledger
func TestClearBets(t *testing.T) {
	setup := setupTestDashboard(t)

	setup.mockPublisher.EXPECT().PublishBetEvent(gomock.Any(), gomock.Any()).Return(nil).Times(4)
	setup.service.SaveBet(setup.ctx, testBet("1"))
	setup.service.SaveBet(setup.ctx, testBet("2"))

	assert.Equal(t, 2, setup.service.ClearBets(setup.ctx))
	assert.Equal(t, 0, setup.ledger.Len())
	assert.Empty(t, setup.service.BetHistory(ledger.HistoryFilter{}))
}

// TestBetHistory_Filters tests status filtering through the service
func TestBetHistory_Filters(t *testing.T) {
	setup := setupTestDashboard(t)

	setup.mockPublisher.EXPECT().PublishBetEvent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	setup.service.SaveBet(setup.ctx, testBet("1"))
	setup.service.SaveBet(setup.ctx, testBet("2"))
	_, err := setup.service.SettleBet(setup.ctx, "2", models.OutcomeLost)
	require.NoError(t, err)

	lost := setup.service.BetHistory(ledger.HistoryFilter{Status: ledger.FilterLost})
	require.Len(t, lost, 1)
	assert.Equal(t, "2", lost[0].FixtureID)

	pending := setup.service.BetHistory(ledger.HistoryFilter{Status: ledger.FilterPending, Search: "napoli"})
	require.Len(t, pending, 1)
	assert.Equal(t, "1", pending[0].FixtureID)
}

// TestPing tests the readiness check
func TestPing(t *testing.T) {
	setup := setupTestDashboard(t)

	setup.mockCache.EXPECT().Ping(gomock.Any()).Return(nil)

	assert.NoError(t, setup.service.Ping(setup.ctx))
}

package ledger

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
)

// setupTestLedger creates a ledger with a controllable clock
func setupTestLedger() (*Ledger, *time.Time) {
	l := New(zerolog.Nop())
	now := time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func record(id, stake, odds string, outcome models.Outcome) models.BetRecord {
	return models.BetRecord{
		FixtureID: id,
		HomeTeam:  "Inter",
		AwayTeam:  "Juventus",
		Selection: "Over 1.5",
		Stake:     stake,
		Odds:      odds,
		Outcome:   outcome,
	}
}

// TestSave_Overwrite tests that a second save under the same fixture replaces the first
func TestSave_Overwrite(t *testing.T) {
	l, _ := setupTestLedger()

	l.Save(record("fx-1", "10", "2.0", models.OutcomePending))
	second := models.BetRecord{
		FixtureID: "fx-1",
		HomeTeam:  "Milan",
		AwayTeam:  "Roma",
		Selection: "Goal",
		Stake:     "25",
		Odds:      "1.8",
		Outcome:   models.OutcomeWon,
	}
	l.Save(second)

	assert.Equal(t, 1, l.Len())
	got, ok := l.Get("fx-1")
	require.True(t, ok)
	assert.Equal(t, "Milan", got.HomeTeam)
	assert.Equal(t, "Roma", got.AwayTeam)
	assert.Equal(t, "Goal", got.Selection)
	assert.Equal(t, "25", got.Stake)
	assert.Equal(t, "1.8", got.Odds)
	assert.Equal(t, models.OutcomeWon, got.Outcome)
}

// TestSave_DefaultsOutcomeAndTimestamp tests save-time defaults
func TestSave_DefaultsOutcomeAndTimestamp(t *testing.T) {
	l, now := setupTestLedger()

	saved := l.Save(models.BetRecord{FixtureID: "fx-1", Stake: "5"})

	assert.Equal(t, models.OutcomePending, saved.Outcome)
	assert.Equal(t, *now, saved.UpdatedAt)
}

// TestAll_KeepsFirstSaveOrder tests that overwriting keeps the original position
func TestAll_KeepsFirstSaveOrder(t *testing.T) {
	l, _ := setupTestLedger()

	l.Save(record("a", "1", "2", models.OutcomePending))
	l.Save(record("b", "1", "2", models.OutcomePending))
	l.Save(record("a", "3", "2", models.OutcomeWon))

	all := l.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].FixtureID)
	assert.Equal(t, "3", all[0].Stake)
	assert.Equal(t, "b", all[1].FixtureID)
}

// TestSettle tests outcome updates
func TestSettle(t *testing.T) {
	l, _ := setupTestLedger()
	l.Save(record("fx-1", "10", "2.0", models.OutcomePending))

	rec, err := l.Settle("fx-1", models.OutcomeLost)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeLost, rec.Outcome)
	assert.Equal(t, "10", rec.Stake)

	_, err = l.Settle("missing", models.OutcomeWon)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestDeleteAndClear tests record removal
func TestDeleteAndClear(t *testing.T) {
	l, _ := setupTestLedger()
	l.Save(record("a", "1", "2", models.OutcomePending))
	l.Save(record("b", "1", "2", models.OutcomePending))

	assert.True(t, l.Delete("a"))
	assert.False(t, l.Delete("a"))
	require.Len(t, l.All(), 1)
	assert.Equal(t, "b", l.All()[0].FixtureID)

	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.All())
}

// TestHistory tests status filtering, search and ordering
func TestHistory(t *testing.T) {
	l, _ := setupTestLedger()
	l.Save(models.BetRecord{FixtureID: "1", HomeTeam: "Inter", AwayTeam: "Juventus", Selection: "Over 1.5", Outcome: models.OutcomeWon})
	l.Save(models.BetRecord{FixtureID: "2", HomeTeam: "Liverpool", AwayTeam: "Man City", Selection: "Goal", Outcome: models.OutcomeLost})
	l.Save(models.BetRecord{FixtureID: "3", HomeTeam: "Bayern", AwayTeam: "Dortmund", Selection: "Over 2.5", Outcome: models.OutcomePending})
	l.Save(models.BetRecord{FixtureID: "4", HomeTeam: "Napoli", AwayTeam: "Roma", Selection: "1X", Outcome: models.OutcomeVoid})

	ids := func(recs []models.BetRecord) []string {
		out := make([]string, len(recs))
		for i, r := range recs {
			out[i] = r.FixtureID
		}
		return out
	}

	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(l.History(HistoryFilter{})))
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(l.History(HistoryFilter{Status: "ALL"})))
	assert.Equal(t, []string{"1"}, ids(l.History(HistoryFilter{Status: FilterWon})))
	assert.Equal(t, []string{"2"}, ids(l.History(HistoryFilter{Status: FilterLost})))
	assert.Equal(t, []string{"3"}, ids(l.History(HistoryFilter{Status: FilterPending})))
	assert.Equal(t, []string{"3", "1"}, ids(l.History(HistoryFilter{Search: "over"})))
	assert.Equal(t, []string{"2"}, ids(l.History(HistoryFilter{Search: "MAN CITY"})))
	assert.Equal(t, []string{"1"}, ids(l.History(HistoryFilter{Status: FilterWon, Search: "juve"})))
	assert.Empty(t, l.History(HistoryFilter{Status: "unknown"}))
}

// TestComputeStats_Example tests the won/lost aggregate example
func TestComputeStats_Example(t *testing.T) {
	records := []models.BetRecord{
		record("a", "10", "2.0", models.OutcomeWon),
		record("b", "5", "3.0", models.OutcomeLost),
	}

	stats := ComputeStats(records)

	assert.True(t, stats.TotalStaked.Equal(decimal.NewFromInt(15)), stats.TotalStaked.String())
	assert.True(t, stats.TotalReturned.Equal(decimal.NewFromInt(20)), stats.TotalReturned.String())
	assert.True(t, stats.NetProfit.Equal(decimal.NewFromInt(5)), stats.NetProfit.String())
	assert.Equal(t, "33.33", stats.ROI.StringFixed(2))
	assert.True(t, stats.WinRate.Equal(decimal.NewFromInt(50)), stats.WinRate.String())
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 2, stats.TotalBets)
}

// TestComputeStats_Empty tests that an empty ledger has zero ROI and win rate
func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.True(t, stats.ROI.IsZero())
	assert.True(t, stats.WinRate.IsZero())
	assert.True(t, stats.TotalStaked.IsZero())
	assert.True(t, stats.NetProfit.IsZero())
	assert.Equal(t, 0, stats.TotalBets)
}

// TestComputeStats_PendingAndVoidExcludedFromMoney tests counting without money
func TestComputeStats_PendingAndVoidExcludedFromMoney(t *testing.T) {
	records := []models.BetRecord{
		record("a", "10", "2.0", models.OutcomePending),
		record("b", "20", "1.5", models.OutcomeVoid),
	}

	stats := ComputeStats(records)

	assert.True(t, stats.TotalStaked.IsZero())
	assert.True(t, stats.TotalReturned.IsZero())
	assert.True(t, stats.ROI.IsZero())
	assert.True(t, stats.WinRate.IsZero())
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.TotalBets)
}

// TestComputeStats_MalformedAmountsAreZero tests lenient parsing
func TestComputeStats_MalformedAmountsAreZero(t *testing.T) {
	records := []models.BetRecord{
		record("a", "abc", "2.0", models.OutcomeWon),
		record("b", "10€", "n/a", models.OutcomeWon),
	}

	stats := ComputeStats(records)

	assert.True(t, stats.TotalStaked.Equal(decimal.NewFromInt(10)), stats.TotalStaked.String())
	assert.True(t, stats.TotalReturned.IsZero())
	assert.True(t, stats.NetProfit.Equal(decimal.NewFromInt(-10)))
	assert.Equal(t, "-100.00", stats.ROI.StringFixed(2))
	assert.True(t, stats.WinRate.Equal(decimal.NewFromInt(100)))
}

// TestLedgerStats tests that the ledger aggregates its own records
func TestLedgerStats(t *testing.T) {
	l, _ := setupTestLedger()
	l.Save(record("a", "10", "2.0", models.OutcomeWon))
	l.Save(record("b", "5", "3.0", models.OutcomeLost))
	l.Save(record("a", "10", "2.0", models.OutcomeLost))

	stats := l.Stats()

	assert.Equal(t, 2, stats.TotalBets)
	assert.Equal(t, 2, stats.Losses)
	assert.True(t, stats.TotalStaked.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, "-100.00", stats.ROI.StringFixed(2))
}

// TestRecordPnL tests per-record profit and ROI
func TestRecordPnL(t *testing.T) {
	won := RecordPnL(record("a", "10", "2.5", models.OutcomeWon))
	assert.Equal(t, "25.00", won.PotentialReturn.StringFixed(2))
	assert.Equal(t, "15.00", won.ProfitLoss.StringFixed(2))
	assert.Equal(t, "150.00", won.ROI.StringFixed(2))

	lost := RecordPnL(record("b", "10", "2.5", models.OutcomeLost))
	assert.Equal(t, "-10.00", lost.ProfitLoss.StringFixed(2))
	assert.Equal(t, "-100.00", lost.ROI.StringFixed(2))

	pending := RecordPnL(record("c", "10", "2.5", models.OutcomePending))
	assert.True(t, pending.ProfitLoss.IsZero())
	assert.True(t, pending.ROI.IsZero())
	assert.Equal(t, "25.00", pending.PotentialReturn.StringFixed(2))

	zeroStake := RecordPnL(record("d", "", "2.5", models.OutcomeWon))
	assert.True(t, zeroStake.ROI.IsZero())
	assert.True(t, zeroStake.ProfitLoss.IsZero())
}

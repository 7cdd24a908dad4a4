package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
	"github.com/cypherlabdev/fixture-analyst-service/pkg/numeric"
)

var hundred = decimal.NewFromInt(100)

// ComputeStats aggregates records. Won bets add their stake to the staked
// total and stake*odds to the returned total; lost bets add only their
// stake. Pending and void bets are counted but carry no money.
// ROI and win rate are 0 when their denominators are 0.
func ComputeStats(records []models.BetRecord) models.LedgerStats {
	stats := models.LedgerStats{
		TotalStaked:   decimal.Zero,
		TotalReturned: decimal.Zero,
		TotalBets:     len(records),
	}

	for _, rec := range records {
		stake := parseAmount(rec.Stake)
		odds := parseAmount(rec.Odds)

		switch rec.Outcome {
		case models.OutcomeWon:
			stats.TotalStaked = stats.TotalStaked.Add(stake)
			stats.TotalReturned = stats.TotalReturned.Add(stake.Mul(odds))
			stats.Wins++
		case models.OutcomeLost:
			stats.TotalStaked = stats.TotalStaked.Add(stake)
			stats.Losses++
		case models.OutcomePending:
			stats.Pending++
		}
	}

	stats.NetProfit = stats.TotalReturned.Sub(stats.TotalStaked)

	stats.ROI = decimal.Zero
	if stats.TotalStaked.IsPositive() {
		stats.ROI = stats.NetProfit.Div(stats.TotalStaked).Mul(hundred)
	}

	stats.WinRate = decimal.Zero
	if settled := stats.Wins + stats.Losses; settled > 0 {
		stats.WinRate = decimal.NewFromInt(int64(stats.Wins)).
			Div(decimal.NewFromInt(int64(settled))).
			Mul(hundred)
	}

	return stats
}

// RecordPnL applies the won/lost rules of ComputeStats to a single record
func RecordPnL(rec models.BetRecord) models.RecordResult {
	stake := parseAmount(rec.Stake)
	odds := parseAmount(rec.Odds)

	res := models.RecordResult{
		Stake:           stake,
		Odds:            odds,
		PotentialReturn: stake.Mul(odds),
		ProfitLoss:      decimal.Zero,
		ROI:             decimal.Zero,
	}

	switch rec.Outcome {
	case models.OutcomeWon:
		res.ProfitLoss = res.PotentialReturn.Sub(stake)
		if !stake.IsZero() {
			res.ROI = res.ProfitLoss.Div(stake).Mul(hundred)
		}
	case models.OutcomeLost:
		res.ProfitLoss = stake.Neg()
		res.ROI = hundred.Neg()
	}

	return res
}

// parseAmount reads a typed stake or odds value; anything unparseable is 0
func parseAmount(s string) decimal.Decimal {
	v, ok := numeric.Leading(s)
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outcome is the settlement state of a bet
type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
	OutcomeVoid    Outcome = "void"
)

// Valid reports whether o is one of the known outcomes
func (o Outcome) Valid() bool {
	switch o {
	case OutcomePending, OutcomeWon, OutcomeLost, OutcomeVoid:
		return true
	}
	return false
}

// BetRecord is a user-entered bet keyed by fixture ID.
// Team names and logos are copied from the fixture at save time.
// Stake and Odds are kept exactly as typed.
type BetRecord struct {
	FixtureID    string    `json:"fixture_id"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	HomeTeamLogo string    `json:"home_team_logo,omitempty"`
	AwayTeamLogo string    `json:"away_team_logo,omitempty"`
	Selection    string    `json:"selection"`
	Stake        string    `json:"stake"`
	Odds         string    `json:"odds"`
	Outcome      Outcome   `json:"outcome"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LedgerStats aggregates every record in the ledger
type LedgerStats struct {
	TotalStaked   decimal.Decimal `json:"total_staked"`
	TotalReturned decimal.Decimal `json:"total_returned"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	ROI           decimal.Decimal `json:"roi"`      // Percent
	WinRate       decimal.Decimal `json:"win_rate"` // Percent
	Wins          int             `json:"wins"`
	Losses        int             `json:"losses"`
	Pending       int             `json:"pending"`
	TotalBets     int             `json:"total_bets"`
}

// RecordResult is the profit/loss of a single bet record
type RecordResult struct {
	Stake           decimal.Decimal `json:"stake"`
	Odds            decimal.Decimal `json:"odds"`
	PotentialReturn decimal.Decimal `json:"potential_return"`
	ProfitLoss      decimal.Decimal `json:"profit_loss"`
	ROI             decimal.Decimal `json:"roi"` // Percent
}

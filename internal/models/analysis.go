package models

import (
	"time"

	"github.com/google/uuid"
)

// Source is a citation backing an analysis
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// AnalysisResult is the betting analysis produced for one fixture selection.
// Probabilities are passed through as parsed and are not required to sum to 100.
type AnalysisResult struct {
	ID           uuid.UUID        `json:"id"`
	FixtureID    string           `json:"fixture_id"`
	Summary      string           `json:"summary"`
	HomeWinProb  int              `json:"home_win_prob"`
	DrawProb     int              `json:"draw_prob"`
	AwayWinProb  int              `json:"away_win_prob"`
	Prediction   string           `json:"prediction"`
	BestBet      string           `json:"best_bet"`
	Confidence   int              `json:"confidence"`
	CurrentScore string           `json:"current_score"`
	Sources      []Source         `json:"sources"`
	IsLive       bool             `json:"is_live"`
	Stats        *MatchStatistics `json:"stats,omitempty"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

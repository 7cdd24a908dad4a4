package models

import "time"

// FixtureStatus is the canonical lifecycle state of a fixture
type FixtureStatus string

const (
	StatusScheduled FixtureStatus = "scheduled"
	StatusLive      FixtureStatus = "live"
	StatusFinished  FixtureStatus = "finished"
)

// Fixture is a single scheduled, live or finished match after normalization.
// HomeScore and AwayScore are both set or both nil; they are nil while the
// fixture is scheduled. Minute is only set for live fixtures.
type Fixture struct {
	ID           string        `json:"id" validate:"required"`
	HomeTeam     string        `json:"home_team" validate:"required"`
	AwayTeam     string        `json:"away_team" validate:"required"`
	HomeTeamLogo string        `json:"home_team_logo,omitempty"`
	AwayTeamLogo string        `json:"away_team_logo,omitempty"`
	League       string        `json:"league"`
	Country      string        `json:"country,omitempty"`
	Time         string        `json:"time"`    // HH:MM in the display timezone
	Kickoff      time.Time     `json:"kickoff"` // Source instant
	Status       FixtureStatus `json:"status"`
	HomeScore    *int          `json:"home_score,omitempty"`
	AwayScore    *int          `json:"away_score,omitempty"`
	Minute       *string       `json:"minute,omitempty"`
	HomeXG       *float64      `json:"home_xg,omitempty"`
	AwayXG       *float64      `json:"away_xg,omitempty"`
}

// IsLive reports whether the fixture is in play
func (f Fixture) IsLive() bool {
	return f.Status == StatusLive
}

// HasScore reports whether both score fields are present
func (f Fixture) HasScore() bool {
	return f.HomeScore != nil && f.AwayScore != nil
}

// TeamStatistics holds per-team match counters.
// ExpectedGoals is nil when the provider did not report it.
type TeamStatistics struct {
	Possession     float64  `json:"possession"`
	ShotsOnTarget  float64  `json:"shots_on_target"`
	ShotsOffTarget float64  `json:"shots_off_target"`
	Corners        float64  `json:"corners"`
	Fouls          float64  `json:"fouls"`
	YellowCards    float64  `json:"yellow_cards"`
	RedCards       float64  `json:"red_cards"`
	ExpectedGoals  *float64 `json:"expected_goals,omitempty"`
}

// MatchStatistics pairs home and away statistics
type MatchStatistics struct {
	Home TeamStatistics `json:"home"`
	Away TeamStatistics `json:"away"`
}

// Package ranking scores fixtures by how likely they are to produce goals
// and selects the "top matches" shortlist.
package ranking

import (
	"sort"
	"strings"

	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
)

// DefaultTopN is the size of the top matches shortlist
const DefaultTopN = 15

// View names accepted by Filter besides an exact league name
const (
	ViewTop = "top"
	ViewAll = "all"
)

type leagueWeight struct {
	name   string
	weight int
}

// leagueWeights is ordered only for readability; every matching entry accrues.
var leagueWeights = []leagueWeight{
	{"bundesliga", 25},
	{"eredivisie", 25},
	{"serie a", 20},
	{"premier league", 20},
	{"champions league", 22},
	{"swiss", 20},
	{"belgium", 18},
}

var offensiveTeams = []string{
	"bayern", "leverkusen", "dortmund", "leipzig",
	"psv", "feyenoord", "ajax",
	"man city", "liverpool", "arsenal", "tottenham",
	"real madrid", "barcelona", "girona",
	"inter", "atalanta", "napoli", "milan",
	"psg", "monaco",
}

const (
	teamBonus       = 15
	liveXGThreshold = 1.5
	liveXGBonus     = 30
	liveGoalsBonus  = 10
)

// Scored is a fixture with its attractiveness score
type Scored struct {
	models.Fixture
	Score int `json:"score"`
}

// Score computes the attractiveness of a fixture from the static league and
// team tables plus live xG and goal signals. It is pure and deterministic.
func Score(f models.Fixture) int {
	score := 0
	league := strings.ToLower(f.League)
	home := strings.ToLower(f.HomeTeam)
	away := strings.ToLower(f.AwayTeam)

	for _, lw := range leagueWeights {
		if strings.Contains(league, lw.name) {
			score += lw.weight
		}
	}

	if isOffensive(home) {
		score += teamBonus
	}
	if isOffensive(away) {
		score += teamBonus
	}

	if f.Status == models.StatusLive {
		if deref(f.HomeXG)+deref(f.AwayXG) > liveXGThreshold {
			score += liveXGBonus
		}
		goals := 0
		if f.HomeScore != nil {
			goals += *f.HomeScore
		}
		if f.AwayScore != nil {
			goals += *f.AwayScore
		}
		if goals >= 1 {
			score += liveGoalsBonus
		}
	}

	return score
}

// Top scores every fixture and returns the n best, highest first.
// Equal scores keep their input order.
func Top(fixtures []models.Fixture, n int) []Scored {
	scored := make([]Scored, len(fixtures))
	for i, f := range fixtures {
		scored[i] = Scored{Fixture: f, Score: Score(f)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if n >= 0 && len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// Filter applies a list view: ViewTop ranks and trims to n, ViewAll (or an
// empty view) returns everything, any other value is an exact league name.
// Only the top view carries a score.
func Filter(fixtures []models.Fixture, view string, n int) []Scored {
	switch view {
	case ViewTop:
		return Top(fixtures, n)
	case ViewAll, "":
		return unscored(fixtures)
	}

	matching := make([]models.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if f.League == view {
			matching = append(matching, f)
		}
	}
	return unscored(matching)
}

// Leagues returns the sorted distinct league names
func Leagues(fixtures []models.Fixture) []string {
	seen := make(map[string]struct{}, len(fixtures))
	leagues := make([]string, 0)
	for _, f := range fixtures {
		if _, ok := seen[f.League]; ok {
			continue
		}
		seen[f.League] = struct{}{}
		leagues = append(leagues, f.League)
	}
	sort.Strings(leagues)
	return leagues
}

func unscored(fixtures []models.Fixture) []Scored {
	out := make([]Scored, len(fixtures))
	for i, f := range fixtures {
		out[i] = Scored{Fixture: f}
	}
	return out
}

func isOffensive(team string) bool {
	for _, t := range offensiveTeams {
		if strings.Contains(team, t) {
			return true
		}
	}
	return false
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

package sportmonks

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
	"github.com/cypherlabdev/fixture-analyst-service/pkg/numeric"
)

const (
	unknownLeague   = "Unknown"
	defaultHomeName = "Home Team"
	defaultAwayName = "Away Team"
	liveMinute      = "Live"
	unknownTime     = "TBD"

	locationHome = "home"
	locationAway = "away"

	descCurrent    = "CURRENT"
	descFirstHalf  = "1ST_HALF"
	descSecondHalf = "2ND_HALF"

	startingAtLayout = "2006-01-02 15:04:05"
)

// statusTable maps the provider's state vocabulary to canonical statuses.
// Anything not listed is scheduled.
var statusTable = map[string]models.FixtureStatus{
	"FT":     models.StatusFinished,
	"AET":    models.StatusFinished,
	"FT_PEN": models.StatusFinished,

	"LIVE":               models.StatusLive,
	"HT":                 models.StatusLive,
	"ET":                 models.StatusLive,
	"PEN_LIVE":           models.StatusLive,
	"BREAK":              models.StatusLive,
	"INPLAY_1ST_HALF":    models.StatusLive,
	"INPLAY_2ND_HALF":    models.StatusLive,
	"INPLAY_ET":          models.StatusLive,
	"INPLAY_ET_2ND_HALF": models.StatusLive,
	"INPLAY_PENALTIES":   models.StatusLive,
	"EXTRA_TIME_BREAK":   models.StatusLive,
}

// Statistic type names as reported by the provider
const (
	StatPossession     = "Ball Possession"
	StatShotsOnTarget  = "Shots on Target"
	StatShotsOffTarget = "Shots off Target"
	StatCorners        = "Corners"
	StatFouls          = "Fouls"
	StatYellowCards    = "Yellow Cards"
	StatRedCards       = "Red Cards"
	StatExpectedGoals  = "Expected Goals"
)

var expectedGoalsNames = []string{StatExpectedGoals, "xG"}

var europeanCountries = map[string]struct{}{
	"Italy": {}, "England": {}, "Spain": {}, "Germany": {}, "France": {},
	"Netherlands": {}, "Portugal": {}, "Belgium": {}, "Scotland": {},
	"Turkey": {}, "Austria": {}, "Switzerland": {}, "Greece": {},
	"Denmark": {}, "Sweden": {}, "Norway": {}, "Poland": {},
	"Czech Republic": {}, "Croatia": {}, "Romania": {}, "Serbia": {},
	"Ukraine": {}, "Hungary": {}, "Finland": {}, "Ireland": {},
	"Slovakia": {}, "Bulgaria": {}, "Slovenia": {}, "Iceland": {},
	"Wales": {}, "Northern Ireland": {}, "Cyprus": {},
}

var internationalCompetitions = []string{
	"UEFA Champions League", "UEFA Europa League", "UEFA Conference League",
	"UEFA Super Cup", "Euro Championship", "World Cup", "UEFA Nations League",
}

// FilterRegion keeps European domestic fixtures and international
// competitions. Live lists are returned unfiltered.
func FilterRegion(raws []RawFixture, live bool) []RawFixture {
	if live {
		return raws
	}

	out := make([]RawFixture, 0, len(raws))
	for _, raw := range raws {
		if raw.League == nil {
			continue
		}
		if raw.League.Country != nil {
			if _, ok := europeanCountries[raw.League.Country.Name]; ok {
				out = append(out, raw)
				continue
			}
		}
		for _, comp := range internationalCompetitions {
			if strings.Contains(raw.League.Name, comp) {
				out = append(out, raw)
				break
			}
		}
	}
	return out
}

// NormalizeFixtures maps raw fixtures and orders them by display time.
// The order compares HH:MM strings and is only meaningful for a single day
// in a single timezone; Kickoff keeps the exact instant.
func NormalizeFixtures(raws []RawFixture, loc *time.Location) []models.Fixture {
	fixtures := make([]models.Fixture, 0, len(raws))
	for _, raw := range raws {
		fixtures = append(fixtures, NormalizeFixture(raw, loc))
	}

	sort.SliceStable(fixtures, func(i, j int) bool {
		return fixtures[i].Time < fixtures[j].Time
	})
	return fixtures
}

// NormalizeFixture maps one raw fixture into the canonical model
func NormalizeFixture(raw RawFixture, loc *time.Location) models.Fixture {
	home, away := resolveTeams(raw.Participants)
	status := resolveStatus(raw.State)

	f := models.Fixture{
		ID:       raw.ID.String(),
		League:   unknownLeague,
		HomeTeam: defaultHomeName,
		AwayTeam: defaultAwayName,
		Status:   status,
	}

	if raw.League != nil {
		if raw.League.Name != "" {
			f.League = raw.League.Name
		}
		if raw.League.Country != nil {
			f.Country = raw.League.Country.Name
		}
	}
	if home != nil {
		if home.Name != "" {
			f.HomeTeam = home.Name
		}
		f.HomeTeamLogo = home.ImagePath
	}
	if away != nil {
		if away.Name != "" {
			f.AwayTeam = away.Name
		}
		f.AwayTeamLogo = away.ImagePath
	}

	f.Kickoff = resolveKickoff(raw)
	f.Time = formatTime(f.Kickoff, loc)

	if status != models.StatusScheduled {
		hs := resolveScore(raw.Scores, home, locationHome, 0)
		as := resolveScore(raw.Scores, away, locationAway, 1)
		f.HomeScore = &hs
		f.AwayScore = &as
	}
	if status == models.StatusLive {
		minute := liveMinute
		f.Minute = &minute
	}

	if len(raw.Statistics) > 0 && home != nil && away != nil {
		f.HomeXG = expectedGoals(raw.Statistics, home.ID)
		f.AwayXG = expectedGoals(raw.Statistics, away.ID)
	}

	return f
}

// NormalizeStatistics builds the home/away statistics pair. It returns nil
// when the payload carries no statistics.
func NormalizeStatistics(raw RawFixture) *models.MatchStatistics {
	if len(raw.Statistics) == 0 {
		return nil
	}

	home, away := resolveTeams(raw.Participants)
	var homeID, awayID FlexInt
	if home != nil {
		homeID = home.ID
	}
	if away != nil {
		awayID = away.ID
	}

	return &models.MatchStatistics{
		Home: teamStatistics(raw.Statistics, homeID),
		Away: teamStatistics(raw.Statistics, awayID),
	}
}

func teamStatistics(stats []RawStatistic, teamID FlexInt) models.TeamStatistics {
	value := func(name string) float64 {
		v, _ := statValue(stats, teamID, name)
		return v
	}

	return models.TeamStatistics{
		Possession:     value(StatPossession),
		ShotsOnTarget:  value(StatShotsOnTarget),
		ShotsOffTarget: value(StatShotsOffTarget),
		Corners:        value(StatCorners),
		Fouls:          value(StatFouls),
		YellowCards:    value(StatYellowCards),
		RedCards:       value(StatRedCards),
		ExpectedGoals:  expectedGoals(stats, teamID),
	}
}

// expectedGoals is nil when not reported, since 0 xG is a real measurement
func expectedGoals(stats []RawStatistic, teamID FlexInt) *float64 {
	v, ok := statValue(stats, teamID, expectedGoalsNames...)
	if !ok {
		return nil
	}
	return &v
}

// statValue finds a team's statistic by case-insensitive type name, then by
// exact string type, and reports false when neither matches or the value
// cannot be read.
func statValue(stats []RawStatistic, teamID FlexInt, names ...string) (float64, bool) {
	for _, s := range stats {
		if s.ParticipantID != teamID || s.Type.IsString {
			continue
		}
		for _, name := range names {
			if strings.EqualFold(s.Type.Name, name) {
				return rawNumber(s)
			}
		}
	}

	for _, s := range stats {
		if s.ParticipantID != teamID || !s.Type.IsString {
			continue
		}
		for _, name := range names {
			if s.Type.Label == name {
				return rawNumber(s)
			}
		}
	}

	return 0, false
}

func rawNumber(s RawStatistic) (float64, bool) {
	if s.Data != nil {
		if v, ok := coerceNumber(s.Data.Value); ok {
			return v, true
		}
	}
	return coerceNumber(s.Value)
}

// coerceNumber reads a JSON number or a string such as "55%"
func coerceNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return numeric.Leading(s)
	}
	return 0, false
}

// resolveTeams locates the home and away participants by location tag,
// falling back to the first and second entries.
func resolveTeams(participants []RawParticipant) (home, away *RawParticipant) {
	for i := range participants {
		switch participants[i].Meta.Location {
		case locationHome:
			if home == nil {
				home = &participants[i]
			}
		case locationAway:
			if away == nil {
				away = &participants[i]
			}
		}
	}

	if home == nil && len(participants) > 0 {
		home = &participants[0]
	}
	if away == nil && len(participants) > 1 {
		away = &participants[1]
	}
	return home, away
}

// resolveScore prefers the side's CURRENT entry, then any CURRENT or period
// entry for the team, then the positional entry, then 0.
func resolveScore(scores []RawScore, team *RawParticipant, side string, position int) int {
	for _, s := range scores {
		if s.Score.Participant == side && s.Description == descCurrent {
			return int(s.Score.Goals)
		}
	}

	if team != nil {
		for _, s := range scores {
			if s.ParticipantID != team.ID {
				continue
			}
			switch s.Description {
			case descCurrent, descSecondHalf, descFirstHalf:
				return int(s.Score.Goals)
			}
		}
	}

	if position < len(scores) {
		return int(scores[position].Score.Goals)
	}
	return 0
}

func resolveStatus(state *RawState) models.FixtureStatus {
	if state == nil {
		return models.StatusScheduled
	}
	for _, key := range []string{state.State, state.DeveloperName, state.ShortName} {
		if status, ok := statusTable[key]; ok {
			return status
		}
	}
	return models.StatusScheduled
}

func resolveKickoff(raw RawFixture) time.Time {
	if raw.StartingAtTimestamp > 0 {
		return time.Unix(int64(raw.StartingAtTimestamp), 0).UTC()
	}
	if raw.StartingAt == "" {
		return time.Time{}
	}
	if t, err := time.ParseInLocation(startingAtLayout, raw.StartingAt, time.UTC); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw.StartingAt); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func formatTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return unknownTime
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}

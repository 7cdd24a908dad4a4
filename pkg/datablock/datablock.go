// Package datablock extracts the structured fields an analysis model is asked
// to print at the end of its free-text reply:
//
//	$$DATA_BLOCK$$
//	SCORE: 1-0
//	PREDICTION: Home win
//	BEST_BET: Over 1.5
//	CONFIDENCE: 7
//	PROBS: 50|30|20
//	$$END_BLOCK$$
//
// Parsing never fails. Missing fields fall back to their defaults one by one
// and values are not range checked.
package datablock

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	OpenMarker  = "$$DATA_BLOCK$$"
	CloseMarker = "$$END_BLOCK$$"
)

// Fields holds the values parsed from a data block
type Fields struct {
	Score      string `json:"score"`
	Prediction string `json:"prediction"`
	BestBet    string `json:"best_bet"`
	Confidence int    `json:"confidence"`
	HomeProb   int    `json:"home_prob"`
	DrawProb   int    `json:"draw_prob"`
	AwayProb   int    `json:"away_prob"`
}

// DefaultFields returns the values used when a field is absent
func DefaultFields() Fields {
	return Fields{
		Score:      "-",
		Prediction: "N/A",
		BestBet:    "N/A",
		Confidence: 5,
		HomeProb:   33,
		DrawProb:   34,
		AwayProb:   33,
	}
}

var (
	blockRe      = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(OpenMarker) + `(.*?)` + regexp.QuoteMeta(CloseMarker))
	scoreRe      = regexp.MustCompile(`(?m)^[ \t]*SCORE:[ \t]*(.*)$`)
	predictionRe = regexp.MustCompile(`(?m)^[ \t]*PREDICTION:[ \t]*(.*)$`)
	bestBetRe    = regexp.MustCompile(`(?m)^[ \t]*BEST_BET:[ \t]*(.*)$`)
	confidenceRe = regexp.MustCompile(`(?m)^[ \t]*CONFIDENCE:[ \t]*(\d+)`)
	probsRe      = regexp.MustCompile(`(?m)^[ \t]*PROBS:[ \t]*(\d+)\|(\d+)\|(\d+)`)
)

// Parse removes the first data block from text and returns the trimmed
// remainder together with the parsed fields.
func Parse(text string) (string, Fields) {
	fields := DefaultFields()

	loc := blockRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return strings.TrimSpace(text), fields
	}

	block := text[loc[2]:loc[3]]
	clean := strings.TrimSpace(text[:loc[0]] + text[loc[1]:])

	if v, ok := firstString(scoreRe, block); ok {
		fields.Score = v
	}
	if v, ok := firstString(predictionRe, block); ok {
		fields.Prediction = v
	}
	if v, ok := firstString(bestBetRe, block); ok {
		fields.BestBet = v
	}

	if m := confidenceRe.FindStringSubmatch(block); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			fields.Confidence = n
		}
	}

	// The three probabilities are taken together or not at all
	if m := probsRe.FindStringSubmatch(block); m != nil {
		home, errH := strconv.Atoi(m[1])
		draw, errD := strconv.Atoi(m[2])
		away, errA := strconv.Atoi(m[3])
		if errH == nil && errD == nil && errA == nil {
			fields.HomeProb, fields.DrawProb, fields.AwayProb = home, draw, away
		}
	}

	return clean, fields
}

func firstString(re *regexp.Regexp, block string) (string, bool) {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

package gemini

import (
	"fmt"
	"strings"

	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
	"github.com/cypherlabdev/fixture-analyst-service/pkg/datablock"
)

// BuildPrompt composes the analysis request for a fixture. The reply must end
// with a data block in the format read by datablock.Parse.
func BuildPrompt(f models.Fixture, live bool, stats *models.MatchStatistics) string {
	var b strings.Builder

	phase := "PRE-MATCH"
	if live {
		phase = "LIVE (match in progress)"
	}

	b.WriteString("Act as a professional football betting analyst.\n")
	fmt.Fprintf(&b, "Analyze the match: %s vs %s (%s).\n", f.HomeTeam, f.AwayTeam, f.League)
	fmt.Fprintf(&b, "Analysis context: %s.\n", phase)

	if live && f.HasScore() {
		minute := "N/A"
		if f.Minute != nil && *f.Minute != "" {
			minute = *f.Minute
		}
		fmt.Fprintf(&b, "Current score: %d-%d (Minute: %s)\n", *f.HomeScore, *f.AwayScore, minute)
	}

	if stats != nil {
		b.WriteString("\nADVANCED MATCH STATISTICS:\n")
		fmt.Fprintf(&b, "- Possession: %s %s%% - %s %s%%\n", f.HomeTeam, num(stats.Home.Possession), f.AwayTeam, num(stats.Away.Possession))
		fmt.Fprintf(&b, "- Shots on target: %s %s - %s %s\n", f.HomeTeam, num(stats.Home.ShotsOnTarget), f.AwayTeam, num(stats.Away.ShotsOnTarget))
		fmt.Fprintf(&b, "- Corners: %s %s - %s %s\n", f.HomeTeam, num(stats.Home.Corners), f.AwayTeam, num(stats.Away.Corners))
		fmt.Fprintf(&b, "- Cards: %s yellow vs %s yellow\n", num(stats.Home.YellowCards), num(stats.Away.YellowCards))
		if stats.Home.ExpectedGoals != nil && stats.Away.ExpectedGoals != nil {
			fmt.Fprintf(&b, "- xG (Expected Goals): %s %s - %s %s\n",
				f.HomeTeam, num(*stats.Home.ExpectedGoals), f.AwayTeam, num(*stats.Away.ExpectedGoals))
		}
		b.WriteString("Weigh the xG carefully when present: high xG with no goals suggests an imminent goal, ")
		b.WriteString("low xG with goals suggests overperformance.\n")
	}

	b.WriteString("\nUse up-to-date sources to cover:\n")
	if live {
		b.WriteString("1. The exact live score, minute and any missing statistics.\n")
	} else {
		b.WriteString("1. Latest news, confirmed or probable line-ups, injuries.\n")
	}
	b.WriteString("2. Head to head and average goals over the last 5 matches (Over 1.5/2.5 frequency).\n")
	b.WriteString("3. Current market odds and significant movements on goals/over markets.\n")

	b.WriteString("\nWrite a structured Markdown report with:\n")
	if live {
		b.WriteString("- **Overview & Live Score**: current state from statistics and xG.\n")
	} else {
		b.WriteString("- **Overview & News**: current state from statistics and xG.\n")
	}
	b.WriteString("- **Tactics & Goals**: attacking potential (Over 1.5/2.5) and defensive solidity.\n")
	b.WriteString("- **Betting Tip**: the bet with the highest expected value.\n")

	b.WriteString("\nIMPORTANT: at the end of the text leave an empty line and print EXACTLY this block:\n\n")
	b.WriteString(datablock.OpenMarker + "\n")
	b.WriteString("SCORE: {live_score_or_dash_if_prematch}\n")
	b.WriteString("PREDICTION: {most_likely_exact_result}\n")
	b.WriteString("BEST_BET: {short_market_e.g._Over_1.5_or_Over_2.5_or_BTTS}\n")
	b.WriteString("CONFIDENCE: {integer_1_10}\n")
	b.WriteString("PROBS: {home_win_percent}|{draw_percent}|{away_win_percent}\n")
	b.WriteString(datablock.CloseMarker + "\n")

	return b.String()
}

func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

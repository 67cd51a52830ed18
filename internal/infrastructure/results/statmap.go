package results

import "strings"

// statKey maps a market name to the statistic that grades it. Matching is
// substring-based over the lowercased name, mirroring how market aliases
// appear across feeds ("Total Shots", "Shots On Target O/U").
//
// Handicap markets grade on score difference, player props on a single
// player's stat line; neither resolves from match totals, so both report
// no key and settle manually.
func statKey(market string) (string, bool) {
	m := strings.ToLower(market)

	switch {
	case strings.Contains(m, "player"):
		return "", false
	case strings.Contains(m, "handicap"):
		return "", false
	case strings.Contains(m, "shot") && strings.Contains(m, "target"):
		return "ontarget_scoring_att", true
	case strings.Contains(m, "shot"):
		return "total_scoring_att", true
	case strings.Contains(m, "corner"):
		return "won_corners", true
	case strings.Contains(m, "foul"):
		return "fouls", true
	case strings.Contains(m, "yellow"), strings.Contains(m, "card"):
		return "total_yellow_card", true
	case strings.Contains(m, "goal"):
		return "goals", true
	default:
		return "", false
	}
}

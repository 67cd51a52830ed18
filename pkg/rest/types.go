// Package rest holds the wire types of the ops JSON API.
package rest

import "time"

// Bet mirrors a tracked bet for API consumers.
type Bet struct {
	ID          string    `json:"id"`
	FixtureID   string    `json:"fixtureId"`
	Fixture     string    `json:"fixture"`
	League      string    `json:"league"`
	Kickoff     time.Time `json:"kickoff"`
	Market      string    `json:"market"`
	Selection   string    `json:"selection"`
	Bookmaker   string    `json:"bookmaker"`
	Odds        float64   `json:"odds"`
	FairOdds    float64   `json:"fairOdds"`
	EdgePercent float64   `json:"edgePercent"`
	Stake       float64   `json:"stake"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	VoidReason  string    `json:"voidReason,omitempty"`
	Result      string    `json:"result,omitempty"`
	ResultValue float64   `json:"resultValue,omitempty"`
	Profit      float64   `json:"profit,omitempty"`
}

// SettleRequest settles a played bet by hand, for markets the results
// collaborator cannot grade.
type SettleRequest struct {
	Result      string  `json:"result" validate:"required,oneof=won lost push"`
	ResultValue float64 `json:"resultValue"`
}

// DailyStats aggregates archived bets for one day.
type DailyStats struct {
	Date       string  `json:"date"`
	Total      int     `json:"total"`
	Played     int     `json:"played"`
	Skipped    int     `json:"skipped"`
	Expired    int     `json:"expired"`
	Voided     int     `json:"voided"`
	Won        int     `json:"won"`
	Lost       int     `json:"lost"`
	Pushed     int     `json:"pushed"`
	Staked     float64 `json:"staked"`
	Profit     float64 `json:"profit"`
	ROIPercent float64 `json:"roiPercent"`
}

// Error is the error envelope of the API.
type Error struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

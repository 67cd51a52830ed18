package entity

import (
	"time"

	"valuebet/internal/domain/value"
)

// MessageRef points at the alert message mirroring a tracked bet.
type MessageRef struct {
	ChatID    int64 `json:"chat_id"`
	MessageID int   `json:"message_id"`
}

func (r MessageRef) Zero() bool {
	return r.ChatID == 0 || r.MessageID == 0
}

// TrackedBet is the persisted lifecycle record of a dispatched opportunity.
// Mutated only by the tracker service.
type TrackedBet struct {
	ID          string          `json:"id"`
	FixtureID   string          `json:"fixture_id"`
	Fixture     string          `json:"fixture"`
	League      string          `json:"league"`
	Kickoff     time.Time       `json:"kickoff"`
	Market      string          `json:"market"`
	Selection   value.Selection `json:"selection"`
	Line        float64         `json:"line"`
	Bookmaker   string          `json:"bookmaker"`
	Odds        float64         `json:"odds"`
	FairOdds    float64         `json:"fair_odds"`
	EdgePercent float64         `json:"edge_percent"`
	Stake       float64         `json:"stake"`

	Status    value.BetStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	ActedAt   time.Time       `json:"acted_at,omitempty"`
	ActedBy   string          `json:"acted_by,omitempty"`
	Message   MessageRef      `json:"message"`

	VoidReason  string          `json:"void_reason,omitempty"`
	SettledAt   time.Time       `json:"settled_at,omitempty"`
	Result      value.BetResult `json:"result,omitempty"`
	ResultValue float64         `json:"result_value,omitempty"` // final statistic the bet was graded against
	Profit      float64         `json:"profit,omitempty"`
}

// DedupeKey identifies the tuple at most one tracked bet may exist for.
func (b TrackedBet) DedupeKey() string {
	return BetDedupeKey(b.FixtureID, b.Market, b.Selection, b.Bookmaker)
}

// Expired reports whether the fixture kicked off without a user action.
func (b TrackedBet) Expired(now time.Time) bool {
	return b.Status == value.StatusPending && !b.Kickoff.IsZero() && now.After(b.Kickoff)
}

// Settleable reports whether the bet is due for settlement once the fixture
// has been finished for the grace period.
func (b TrackedBet) Settleable(now time.Time, grace time.Duration) bool {
	return b.Status == value.StatusPlayed && !b.Kickoff.IsZero() && now.After(b.Kickoff.Add(grace))
}

// DailyStats aggregates archived bets for one day.
type DailyStats struct {
	Date    time.Time `json:"date" db:"day"`
	Total   int       `json:"total" db:"total"`
	Played  int       `json:"played" db:"played"`
	Skipped int       `json:"skipped" db:"skipped"`
	Expired int       `json:"expired" db:"expired"`
	Voided  int       `json:"voided" db:"voided"`
	Won     int       `json:"won" db:"won"`
	Lost    int       `json:"lost" db:"lost"`
	Pushed  int       `json:"pushed" db:"pushed"`
	Staked  float64   `json:"staked" db:"staked"`
	Profit  float64   `json:"profit" db:"profit"`
}

// ROI is profit over turnover, in percent.
func (s DailyStats) ROI() float64 {
	if s.Staked == 0 {
		return 0
	}

	return s.Profit / s.Staked * 100
}

package persistence

import (
	"time"

	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
)

// betSchema maps the settled_bets row.
type betSchema struct {
	ID          string     `db:"id"`
	FixtureID   string     `db:"fixture_id"`
	Fixture     string     `db:"fixture"`
	League      string     `db:"league"`
	Kickoff     time.Time  `db:"kickoff"`
	Market      string     `db:"market"`
	Selection   string     `db:"selection"`
	Line        float64    `db:"line"`
	Bookmaker   string     `db:"bookmaker"`
	Odds        float64    `db:"odds"`
	FairOdds    float64    `db:"fair_odds"`
	EdgePercent float64    `db:"edge_percent"`
	Stake       float64    `db:"stake"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ActedAt     *time.Time `db:"acted_at"`
	ActedBy     string     `db:"acted_by"`
	VoidReason  string     `db:"void_reason"`
	SettledAt   *time.Time `db:"settled_at"`
	Result      string     `db:"result"`
	ResultValue float64    `db:"result_value"`
	Profit      float64    `db:"profit"`
	ChatID      int64      `db:"chat_id"`
	MessageID   int        `db:"message_id"`
}

func fromBet(bet entity.TrackedBet) betSchema {
	return betSchema{
		ID:          bet.ID,
		FixtureID:   bet.FixtureID,
		Fixture:     bet.Fixture,
		League:      bet.League,
		Kickoff:     bet.Kickoff,
		Market:      bet.Market,
		Selection:   bet.Selection.String(),
		Line:        bet.Line,
		Bookmaker:   bet.Bookmaker,
		Odds:        bet.Odds,
		FairOdds:    bet.FairOdds,
		EdgePercent: bet.EdgePercent,
		Stake:       bet.Stake,
		Status:      bet.Status.String(),
		CreatedAt:   bet.CreatedAt,
		ActedAt:     nilIfZero(bet.ActedAt),
		ActedBy:     bet.ActedBy,
		VoidReason:  bet.VoidReason,
		SettledAt:   nilIfZero(bet.SettledAt),
		Result:      bet.Result.String(),
		ResultValue: bet.ResultValue,
		Profit:      bet.Profit,
		ChatID:      bet.Message.ChatID,
		MessageID:   bet.Message.MessageID,
	}
}

func (s betSchema) toDomain() entity.TrackedBet {
	return entity.TrackedBet{
		ID:          s.ID,
		FixtureID:   s.FixtureID,
		Fixture:     s.Fixture,
		League:      s.League,
		Kickoff:     s.Kickoff,
		Market:      s.Market,
		Selection:   value.Selection(s.Selection),
		Line:        s.Line,
		Bookmaker:   s.Bookmaker,
		Odds:        s.Odds,
		FairOdds:    s.FairOdds,
		EdgePercent: s.EdgePercent,
		Stake:       s.Stake,
		Status:      value.BetStatus(s.Status),
		CreatedAt:   s.CreatedAt,
		ActedAt:     orZero(s.ActedAt),
		ActedBy:     s.ActedBy,
		VoidReason:  s.VoidReason,
		SettledAt:   orZero(s.SettledAt),
		Result:      value.BetResult(s.Result),
		ResultValue: s.ResultValue,
		Profit:      s.Profit,
		Message: entity.MessageRef{
			ChatID:    s.ChatID,
			MessageID: s.MessageID,
		},
	}
}

func nilIfZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}

func orZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}

	return *t
}

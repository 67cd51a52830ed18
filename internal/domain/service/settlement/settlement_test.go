package settlement_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/service/settlement"
	"valuebet/internal/domain/value"
	"valuebet/pkg/errcodes"
)

func playedBet(selection value.Selection, line, odds, stake float64) entity.TrackedBet {
	return entity.TrackedBet{
		ID:        "bet1",
		Selection: selection,
		Line:      line,
		Odds:      odds,
		Stake:     stake,
		Status:    value.StatusPlayed,
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		bet        entity.TrackedBet
		actual     float64
		wantResult value.BetResult
		wantProfit float64
	}{
		{
			name:       "over clears the line",
			bet:        playedBet("Over 9.5", 9.5, 2.10, 10),
			actual:     11,
			wantResult: value.ResultWon,
			wantProfit: 11.0,
		},
		{
			name:       "over falls short",
			bet:        playedBet("Over 9.5", 9.5, 2.10, 10),
			actual:     8,
			wantResult: value.ResultLost,
			wantProfit: -10.0,
		},
		{
			name:       "under stays below",
			bet:        playedBet("Under 2.5", 2.5, 1.85, 10),
			actual:     1,
			wantResult: value.ResultWon,
			wantProfit: 8.5,
		},
		{
			name:       "under overrun",
			bet:        playedBet("Under 2.5", 2.5, 1.85, 10),
			actual:     3,
			wantResult: value.ResultLost,
			wantProfit: -10.0,
		},
		{
			name:       "whole line push",
			bet:        playedBet("Over 10", 10, 1.90, 10),
			actual:     10,
			wantResult: value.ResultPush,
			wantProfit: 0,
		},
		{
			name:       "profit rounded to cents",
			bet:        playedBet("Over 9.5", 9.5, 2.07, 7.5),
			actual:     12,
			wantResult: value.ResultWon,
			wantProfit: 8.03, // 7.5 * 1.07 = 8.025
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rq := require.New(t)

			outcome, err := settlement.Evaluate(tc.bet, tc.actual)
			rq.NoError(err)
			rq.Equal(tc.wantResult, outcome.Result)
			rq.InDelta(tc.wantProfit, outcome.Profit, 1e-9)
			rq.InDelta(tc.actual, outcome.Actual, 1e-9)
		})
	}
}

func TestEvaluateUnresolvable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		selection value.Selection
	}{
		{name: "moneyline", selection: "Arsenal"},
		{name: "handicap leg", selection: "Arsenal -1.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rq := require.New(t)

			bet := playedBet(tc.selection, 0, 2.0, 10)

			_, err := settlement.Evaluate(bet, 2)
			rq.Error(err)
			rq.True(domain.HasCode(err, errcodes.Unresolvable))
		})
	}
}

func TestProfit(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	rq.InDelta(10.5, settlement.Profit(value.ResultWon, 7.5, 2.40), 1e-9)
	rq.InDelta(-7.5, settlement.Profit(value.ResultLost, 7.5, 2.40), 1e-9)
	rq.Zero(settlement.Profit(value.ResultPush, 7.5, 2.40))
}

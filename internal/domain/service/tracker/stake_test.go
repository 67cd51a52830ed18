package tracker_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"valuebet/internal/domain/service/tracker"
)

func TestStake(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		odds     float64
		baseUnit float64
		want     float64
	}{
		{name: "short odds full unit", odds: 1.55, baseUnit: 100, want: 100},
		{name: "band edge inclusive", odds: 2.00, baseUnit: 100, want: 100},
		{name: "just above first band", odds: 2.01, baseUnit: 100, want: 75},
		{name: "mid band", odds: 2.75, baseUnit: 100, want: 75},
		{name: "half unit band", odds: 3.20, baseUnit: 100, want: 50},
		{name: "quarter unit band", odds: 5.50, baseUnit: 100, want: 25},
		{name: "longshot", odds: 9.00, baseUnit: 100, want: 10},
		{name: "rounds to cents", odds: 2.50, baseUnit: 33.33, want: 25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)
			rq.InDelta(tc.want, tracker.Stake(tc.odds, tc.baseUnit), 1e-9)
		})
	}
}

package oddsmath_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"valuebet/pkg/oddsmath"
)

func TestImpliedProbability(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		odds    float64
		want    float64
		wantErr bool
	}{
		{name: "even money", odds: 2.0, want: 0.5},
		{name: "short favorite", odds: 1.25, want: 0.8},
		{name: "longshot", odds: 5.0, want: 0.2},
		{name: "no payout", odds: 1.0, wantErr: true},
		{name: "negative", odds: -1.5, wantErr: true},
		{name: "zero", odds: 0, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rq := require.New(t)

			got, err := oddsmath.ImpliedProbability(tc.odds)
			if tc.wantErr {
				rq.ErrorIs(err, oddsmath.ErrInvalidOdds)
				return
			}

			rq.NoError(err)
			rq.InDelta(tc.want, got, 1e-9)
		})
	}
}

func TestDevigMultiplicative(t *testing.T) {
	t.Parallel()

	t.Run("two way unity invariant", func(t *testing.T) {
		t.Parallel()
		rq := require.New(t)

		fair, err := oddsmath.DevigMultiplicative([]float64{2.10, 1.95})
		rq.NoError(err)
		rq.Len(fair, 2)

		rq.InDelta(2.076923, fair[0], 1e-6)
		rq.InDelta(1.928571, fair[1], 1e-6)
		rq.InDelta(1.0, 1/fair[0]+1/fair[1], 1e-9)
	})

	t.Run("three way unity invariant", func(t *testing.T) {
		t.Parallel()
		rq := require.New(t)

		fair, err := oddsmath.DevigMultiplicative([]float64{2.50, 3.30, 3.10})
		rq.NoError(err)
		rq.Len(fair, 3)

		var total float64
		for _, f := range fair {
			rq.Greater(f, 1.0)
			total += 1 / f
		}

		rq.InDelta(1.0, total, 1e-9)
	})

	t.Run("vig free book unchanged", func(t *testing.T) {
		t.Parallel()
		rq := require.New(t)

		fair, err := oddsmath.DevigMultiplicative([]float64{2.0, 2.0})
		rq.NoError(err)
		rq.InDelta(2.0, fair[0], 1e-9)
		rq.InDelta(2.0, fair[1], 1e-9)
	})

	t.Run("single outcome rejected", func(t *testing.T) {
		t.Parallel()
		rq := require.New(t)

		_, err := oddsmath.DevigMultiplicative([]float64{1.90})
		rq.Error(err)
	})

	t.Run("invalid member rejected", func(t *testing.T) {
		t.Parallel()
		rq := require.New(t)

		_, err := oddsmath.DevigMultiplicative([]float64{2.10, 0.95})
		rq.ErrorIs(err, oddsmath.ErrInvalidOdds)
	})
}

func TestEdge(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	// Identical prices carry no edge.
	rq.InDelta(0.0, oddsmath.Edge(2.0, 2.0), 1e-9)

	// Monotonic increasing in the quoted price.
	rq.Greater(oddsmath.Edge(2.10, 2.0), oddsmath.Edge(2.05, 2.0))

	// Monotonic decreasing in the fair price.
	rq.Greater(oddsmath.Edge(2.10, 1.95), oddsmath.Edge(2.10, 2.05))

	// Quoted below fair is negative.
	rq.Negative(oddsmath.Edge(1.90, 2.0))

	rq.InDelta(5.0, oddsmath.Edge(2.10, 2.0), 1e-9)
}

func TestVig(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	vig, err := oddsmath.Vig([]float64{1.90, 1.90})
	rq.NoError(err)
	rq.InDelta(5.263158, vig, 1e-6)

	vig, err = oddsmath.Vig([]float64{2.0, 2.0})
	rq.NoError(err)
	rq.InDelta(0.0, vig, 1e-9)

	_, err = oddsmath.Vig(nil)
	rq.Error(err)
}

func TestBestPriceAndConsensus(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	odds := []float64{2.10, 2.05, 2.00}
	rq.InDelta(2.10, oddsmath.BestPrice(odds), 1e-9)
	rq.InDelta(2.05, oddsmath.Consensus(odds), 1e-9)
	rq.Zero(oddsmath.Consensus(nil))
}

func TestAmericanConversions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		american float64
		decimal  float64
	}{
		{name: "plus 150", american: 150, decimal: 2.50},
		{name: "minus 110", american: -110, decimal: 1.909091},
		{name: "even", american: 100, decimal: 2.0},
		{name: "heavy favorite", american: -400, decimal: 1.25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rq := require.New(t)

			rq.InDelta(tc.decimal, oddsmath.AmericanToDecimal(tc.american), 1e-6)
			rq.Equal(int(tc.american), oddsmath.DecimalToAmerican(tc.decimal))
		})
	}
}

// Package oddsmath holds the pure arithmetic shared by the fair-value
// estimator and the detector: odds format conversion, implied probability,
// multiplicative devigging and edge calculation.
package oddsmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOdds marks a quote priced at or below 1.0, which carries no
// payout and breaks the implied-probability conversion.
var ErrInvalidOdds = errors.New("decimal odds must be greater than 1.0")

// ImpliedProbability converts decimal odds to the probability the price
// implies: p = 1/odds.
func ImpliedProbability(odds float64) (float64, error) {
	if odds <= 1.0 {
		return 0, fmt.Errorf("%w: got %.3f", ErrInvalidOdds, odds)
	}

	return 1.0 / odds, nil
}

// OddsFromProbability converts a probability back to decimal odds.
func OddsFromProbability(probability float64) (float64, error) {
	if probability <= 0 || probability >= 1 {
		return 0, fmt.Errorf("probability must be in (0, 1), got %.4f", probability)
	}

	return 1.0 / probability, nil
}

// Vig returns the bookmaker margin baked into a full outcome set, as a
// percentage. Fair books quote close to 0; typical soft books 4-8.
func Vig(odds []float64) (float64, error) {
	if len(odds) == 0 {
		return 0, errors.New("empty odds set")
	}

	var total float64

	for _, o := range odds {
		p, err := ImpliedProbability(o)
		if err != nil {
			return 0, err
		}

		total += p
	}

	return (total - 1.0) * 100, nil
}

// DevigMultiplicative removes the margin from a full, mutually exclusive
// outcome set by normalizing implied probabilities to sum to one. The
// returned fair odds satisfy sum(1/fair) == 1 within floating tolerance.
func DevigMultiplicative(odds []float64) ([]float64, error) {
	if len(odds) < 2 {
		return nil, errors.New("devig needs at least two outcomes")
	}

	probs := make([]float64, len(odds))

	var total float64

	for i, o := range odds {
		p, err := ImpliedProbability(o)
		if err != nil {
			return nil, err
		}

		probs[i] = p
		total += p
	}

	fair := make([]float64, len(odds))

	for i, p := range probs {
		f, err := OddsFromProbability(p / total)
		if err != nil {
			return nil, fmt.Errorf("normalize outcome %d: %w", i, err)
		}

		fair[i] = f
	}

	return fair, nil
}

// Edge is the percentage by which a quoted price beats the fair price:
// (quoted/fair - 1) * 100. Positive means the book pays above fair value.
func Edge(quoted, fair float64) float64 {
	if fair <= 0 {
		return 0
	}

	return (quoted/fair - 1.0) * 100
}

// BestPrice returns the highest decimal odds across books for one selection.
func BestPrice(odds []float64) float64 {
	var best float64

	for _, o := range odds {
		if o > best {
			best = o
		}
	}

	return best
}

// Consensus returns the arithmetic mean of decimal odds across books.
func Consensus(odds []float64) float64 {
	if len(odds) == 0 {
		return 0
	}

	var sum float64

	for _, o := range odds {
		sum += o
	}

	return sum / float64(len(odds))
}

// AmericanToDecimal converts American odds (+150, -110) to decimal.
func AmericanToDecimal(american float64) float64 {
	if american >= 0 {
		return 1.0 + american/100.0
	}

	return 1.0 + 100.0/math.Abs(american)
}

// DecimalToAmerican converts decimal odds to the nearest American odds.
func DecimalToAmerican(decimal float64) int {
	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0))
	}

	return int(math.Round(-100.0 / (decimal - 1.0)))
}

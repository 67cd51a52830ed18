// Package fairvalue estimates the devigged price of a market from the raw
// quotes of independent bookmakers.
package fairvalue

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
	"valuebet/pkg/errcodes"
	"valuebet/pkg/oddsmath"
)

// Method selects the representative price per selection before devigging.
type Method string

const (
	// MethodBestPrice uses the single highest quoted odds per selection.
	MethodBestPrice Method = "best_price"
	// MethodConsensus uses the arithmetic mean across books per selection.
	MethodConsensus Method = "consensus"
)

func ParseMethod(raw string) (Method, error) {
	switch Method(raw) {
	case MethodBestPrice, MethodConsensus:
		return Method(raw), nil
	default:
		return "", fmt.Errorf("unknown fair-value method %q", raw)
	}
}

const defaultMinSources = 4

// Estimator computes fair odds per selection using multiplicative devigging.
// Pure and deterministic; the method is fixed per deployment because it
// changes the fair line.
type Estimator struct {
	method     Method
	minSources int
}

func NewEstimator(method Method) *Estimator {
	return &Estimator{
		method:     method,
		minSources: defaultMinSources,
	}
}

// WithMinSources sets how many independent books each selection needs
// before a fair value is produced. Fails closed below the floor.
func (e *Estimator) WithMinSources(n int) *Estimator {
	if n > 0 {
		e.minSources = n
	}

	return e
}

// Estimate devigs one market key. Quotes priced at or below 1.0 are dropped
// per book rather than failing the whole computation; a selection left with
// fewer than minSources books fails the key closed with InsufficientData.
func (e *Estimator) Estimate(key entity.MarketKey, sides map[value.Selection][]entity.Quote) (entity.FairValue, error) {
	if len(sides) < 2 {
		return entity.FairValue{}, domain.NewError(errcodes.InsufficientData,
			fmt.Sprintf("market %s has %d side(s), need a closed outcome set", key, len(sides)))
	}

	selections := lo.Keys(sides)
	sort.Slice(selections, func(i, j int) bool { return selections[i] < selections[j] })

	representative := make([]float64, 0, len(selections))
	samples := make(map[value.Selection]int, len(selections))

	for _, selection := range selections {
		prices := validPrices(sides[selection])
		if len(prices) < e.minSources {
			return entity.FairValue{}, domain.NewError(errcodes.InsufficientData,
				fmt.Sprintf("market %s selection %q has %d book(s), need %d", key, selection, len(prices), e.minSources))
		}

		samples[selection] = len(prices)
		representative = append(representative, e.representative(prices))
	}

	fair, err := oddsmath.DevigMultiplicative(representative)
	if err != nil {
		return entity.FairValue{}, domain.WrapError(err, errcodes.InvalidOdds, "devig market "+key.String())
	}

	odds := make(map[value.Selection]float64, len(selections))
	for i, selection := range selections {
		odds[selection] = fair[i]
	}

	return entity.FairValue{Key: key, Odds: odds, Samples: samples}, nil
}

func (e *Estimator) representative(prices []float64) float64 {
	if e.method == MethodConsensus {
		return oddsmath.Consensus(prices)
	}

	return oddsmath.BestPrice(prices)
}

func validPrices(quotes []entity.Quote) []float64 {
	prices := make([]float64, 0, len(quotes))

	for _, q := range quotes {
		if q.DecimalOdds > 1.0 {
			prices = append(prices, q.DecimalOdds)
		}
	}

	return prices
}

// Package settlement grades played bets against the fixture's final
// statistic.
package settlement

import (
	"fmt"
	"math"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
	"valuebet/pkg/errcodes"
)

// Outcome is a graded bet: the terminal result, the statistic it was graded
// against, and the realized profit in stake units.
type Outcome struct {
	Result value.BetResult
	Actual float64
	Profit float64
}

// Evaluate grades a played bet against the actual final statistic. Lands on
// the line exactly is a push. Selections without an over/under direction
// cannot be graded from a single statistic and return Unresolvable; such
// bets stay played for manual settlement.
func Evaluate(bet entity.TrackedBet, actual float64) (Outcome, error) {
	direction := bet.Selection.Direction()
	if direction == value.DirectionNone {
		return Outcome{}, domain.NewError(errcodes.Unresolvable,
			fmt.Sprintf("selection %q has no over/under direction", bet.Selection))
	}

	line := bet.Line
	if parsed, ok := bet.Selection.Line(); ok {
		line = parsed
	}

	result := grade(direction, line, actual)

	return Outcome{
		Result: result,
		Actual: actual,
		Profit: Profit(result, bet.Stake, bet.Odds),
	}, nil
}

func grade(direction value.Direction, line, actual float64) value.BetResult {
	if actual == line {
		return value.ResultPush
	}

	won := (direction == value.DirectionOver && actual > line) ||
		(direction == value.DirectionUnder && actual < line)
	if won {
		return value.ResultWon
	}

	return value.ResultLost
}

// Profit computes the realized profit of a graded bet, rounded to cents.
func Profit(result value.BetResult, stake, odds float64) float64 {
	switch result {
	case value.ResultWon:
		return roundCents(stake * (odds - 1))
	case value.ResultLost:
		return -stake
	default:
		return 0
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

package value

import (
	"fmt"
)

// BetResult is the graded outcome of a played bet.
type BetResult string

const (
	ResultWon  BetResult = "won"
	ResultLost BetResult = "lost"
	ResultPush BetResult = "push"
)

// Status maps the result to its terminal lifecycle state.
func (r BetResult) Status() BetStatus {
	switch r {
	case ResultWon:
		return StatusWon
	case ResultLost:
		return StatusLost
	case ResultPush:
		return StatusPush
	default:
		return ""
	}
}

func (r BetResult) String() string {
	return string(r)
}

func ParseBetResult(raw string) (BetResult, error) {
	switch BetResult(raw) {
	case ResultWon, ResultLost, ResultPush:
		return BetResult(raw), nil
	default:
		return "", fmt.Errorf("unknown bet result %q", raw)
	}
}

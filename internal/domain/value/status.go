package value

import (
	"fmt"
)

// BetStatus is the lifecycle state of a tracked bet.
//
// pending -> played | skipped | expired | void
// played  -> won | lost | push
//
// Every state except pending and played is terminal.
type BetStatus string

const (
	StatusPending BetStatus = "pending"
	StatusPlayed  BetStatus = "played"
	StatusSkipped BetStatus = "skipped"
	StatusExpired BetStatus = "expired"
	StatusVoid    BetStatus = "void"
	StatusWon     BetStatus = "won"
	StatusLost    BetStatus = "lost"
	StatusPush    BetStatus = "push"
)

var statusTransitions = map[BetStatus][]BetStatus{
	StatusPending: {StatusPlayed, StatusSkipped, StatusExpired, StatusVoid},
	StatusPlayed:  {StatusWon, StatusLost, StatusPush},
}

// Terminal reports whether no further transition is allowed from s.
func (s BetStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next.
func (s BetStatus) CanTransitionTo(next BetStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

func (s BetStatus) String() string {
	return string(s)
}

func ParseBetStatus(raw string) (BetStatus, error) {
	switch BetStatus(raw) {
	case StatusPending, StatusPlayed, StatusSkipped, StatusExpired, StatusVoid, StatusWon, StatusLost, StatusPush:
		return BetStatus(raw), nil
	default:
		return "", fmt.Errorf("unknown bet status %q", raw)
	}
}

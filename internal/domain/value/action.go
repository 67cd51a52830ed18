package value

import (
	"fmt"
)

// UserAction is the decision a user takes on a pending alert.
type UserAction string

const (
	ActionPlayed  UserAction = "played"
	ActionSkipped UserAction = "skipped"
)

// Status maps the action to the lifecycle state it moves the bet into.
func (a UserAction) Status() BetStatus {
	switch a {
	case ActionPlayed:
		return StatusPlayed
	case ActionSkipped:
		return StatusSkipped
	default:
		return ""
	}
}

func (a UserAction) String() string {
	return string(a)
}

func ParseUserAction(raw string) (UserAction, error) {
	switch UserAction(raw) {
	case ActionPlayed, ActionSkipped:
		return UserAction(raw), nil
	default:
		return "", fmt.Errorf("unknown user action %q", raw)
	}
}

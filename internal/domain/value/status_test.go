package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"valuebet/internal/domain/value"
)

func TestBetStatusTransitions(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	// Pending fans out to every non-settled state.
	for _, next := range []value.BetStatus{value.StatusPlayed, value.StatusSkipped, value.StatusExpired, value.StatusVoid} {
		rq.True(value.StatusPending.CanTransitionTo(next), "pending -> %s", next)
	}

	rq.False(value.StatusPending.CanTransitionTo(value.StatusWon))
	rq.False(value.StatusPending.CanTransitionTo(value.StatusPending))

	// Only played can settle.
	for _, next := range []value.BetStatus{value.StatusWon, value.StatusLost, value.StatusPush} {
		rq.True(value.StatusPlayed.CanTransitionTo(next), "played -> %s", next)
	}

	rq.False(value.StatusPlayed.CanTransitionTo(value.StatusExpired))

	// Terminal states allow nothing.
	for _, terminal := range []value.BetStatus{value.StatusSkipped, value.StatusExpired, value.StatusVoid, value.StatusWon, value.StatusLost, value.StatusPush} {
		rq.True(terminal.Terminal(), "%s is terminal", terminal)
		rq.False(terminal.CanTransitionTo(value.StatusPending))
		rq.False(terminal.CanTransitionTo(value.StatusPlayed))
	}

	rq.False(value.StatusPending.Terminal())
	rq.False(value.StatusPlayed.Terminal())
}

func TestParseBetStatus(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	status, err := value.ParseBetStatus("pending")
	rq.NoError(err)
	rq.Equal(value.StatusPending, status)

	_, err = value.ParseBetStatus("banana")
	rq.Error(err)
}

func TestUserAction(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	action, err := value.ParseUserAction("played")
	rq.NoError(err)
	rq.Equal(value.StatusPlayed, action.Status())

	action, err = value.ParseUserAction("skipped")
	rq.NoError(err)
	rq.Equal(value.StatusSkipped, action.Status())

	_, err = value.ParseUserAction("settle")
	rq.Error(err)
}

func TestBetResult(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	result, err := value.ParseBetResult("push")
	rq.NoError(err)
	rq.Equal(value.StatusPush, result.Status())

	_, err = value.ParseBetResult("draw")
	rq.Error(err)
}

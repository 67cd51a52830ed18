package contextx

import (
	"context"
	"fmt"
)

// Actor names who triggered a lifecycle transition: a Telegram operator,
// the ops API, or the engine itself.
type Actor string

type contextKeyActor struct{}

func (a Actor) String() string {
	return string(a)
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, contextKeyActor{}, actor)
}

func ActorFromContext(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(contextKeyActor{}).(Actor)
	if !ok {
		return "", fmt.Errorf("actor: %w", ErrNoValue)
	}

	return actor, nil
}

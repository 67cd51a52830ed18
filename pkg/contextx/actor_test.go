package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"valuebet/pkg/contextx"
)

func TestActor(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var testActorEmpty contextx.Actor

	testActorNotEmpty := contextx.Actor("telegram:42")

	actor, err := contextx.ActorFromContext(ctx)
	rq.Equal(testActorEmpty, actor)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "actor: no value in context")

	ctx = contextx.WithActor(ctx, testActorNotEmpty)

	actor, err = contextx.ActorFromContext(ctx)
	rq.Equal(testActorNotEmpty, actor)
	rq.NoError(err)
}

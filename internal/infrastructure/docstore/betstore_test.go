package docstore_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
	"valuebet/internal/infrastructure/docstore"
	"valuebet/pkg/errcodes"
)

type storeRequest struct {
	method string
	path   string
	query  string
	body   string
}

func newBetStore(t *testing.T, handler http.HandlerFunc) *docstore.BetStore {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return docstore.NewBetStore(docstore.NewClient(srv.URL, "secret", srv.Client()))
}

func TestBetStoreSave(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	var got storeRequest

	store := newBetStore(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = storeRequest{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(body)}

		w.Write([]byte(`{}`)) //nolint:errcheck
	})

	bet := entity.TrackedBet{ID: "b1", Fixture: "Arsenal vs Chelsea", Status: value.StatusPending}

	rq.NoError(store.Save(context.Background(), bet))

	rq.Equal(http.MethodPut, got.method)
	rq.Equal("/active_bets/b1.json", got.path)
	rq.Equal("auth=secret", got.query)
	rq.Contains(got.body, `"id":"b1"`)
	rq.Contains(got.body, `"status":"pending"`)
}

func TestBetStoreGet(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	store := newBetStore(t, func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/active_bets/b1.json", r.URL.Path)

		w.Write([]byte(`{"id": "b1", "status": "played", "stake": 75}`)) //nolint:errcheck
	})

	bet, err := store.Get(context.Background(), "b1")
	rq.NoError(err)
	rq.Equal("b1", bet.ID)
	rq.Equal(value.StatusPlayed, bet.Status)
	rq.InDelta(75.0, bet.Stake, 1e-9)
}

// The store answers 200 with a literal null body for absent nodes.
func TestBetStoreGetMissing(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	store := newBetStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`null`)) //nolint:errcheck
	})

	_, err := store.Get(context.Background(), "gone")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.BetNotFound))
}

func TestBetStoreList(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	store := newBetStore(t, func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/active_bets.json", r.URL.Path)

		body := `{
			"b2": {"id": "b2", "created_at": "2025-03-14T12:05:00Z"},
			"b1": {"id": "b1", "created_at": "2025-03-14T12:00:00Z"}
		}`
		w.Write([]byte(body)) //nolint:errcheck
	})

	bets, err := store.List(context.Background())
	rq.NoError(err)
	rq.Len(bets, 2)

	// oldest first
	rq.Equal("b1", bets[0].ID)
	rq.Equal("b2", bets[1].ID)
	rq.Equal(time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC), bets[0].CreatedAt)
}

func TestBetStoreListEmpty(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	store := newBetStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`null`)) //nolint:errcheck
	})

	bets, err := store.List(context.Background())
	rq.NoError(err)
	rq.Empty(bets)
}

func TestBetStoreDelete(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	var got storeRequest

	store := newBetStore(t, func(w http.ResponseWriter, r *http.Request) {
		got = storeRequest{method: r.Method, path: r.URL.Path}

		w.Write([]byte(`null`)) //nolint:errcheck
	})

	rq.NoError(store.Delete(context.Background(), "b1"))
	rq.Equal(http.MethodDelete, got.method)
	rq.Equal("/active_bets/b1.json", got.path)
}

func TestBetStoreUpstreamError(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	store := newBetStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := store.Save(context.Background(), entity.TrackedBet{ID: "b1"})
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.TransportError))
}

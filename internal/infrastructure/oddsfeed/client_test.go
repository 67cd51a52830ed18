package oddsfeed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
	"valuebet/internal/infrastructure/oddsfeed"
	"valuebet/pkg/errcodes"
)

const oddsBody = `[
  {
    "id": "f100",
    "sport_key": "soccer_epl",
    "sport_title": "EPL",
    "commence_time": "2025-03-14T15:00:00Z",
    "home_team": "Arsenal",
    "away_team": "Chelsea",
    "bookmakers": [
      {
        "key": "betsson",
        "title": "Betsson",
        "last_update": "2025-03-14T11:58:00Z",
        "markets": [
          {
            "key": "totals_corners",
            "last_update": "2025-03-14T11:59:00Z",
            "outcomes": [
              {"name": "Over", "price": 2.30, "point": 9.5},
              {"name": "Under", "price": 1.62, "point": 9.5}
            ]
          },
          {
            "key": "spreads",
            "outcomes": [
              {"name": "Arsenal", "price": 1.95, "point": -1.5},
              {"name": "Chelsea", "price": -110, "point": 1.5}
            ]
          },
          {
            "key": "h2h",
            "outcomes": [
              {"name": "Arsenal", "price": 2.10, "point": 0}
            ]
          }
        ]
      }
    ]
  }
]`

func newFeedClient(t *testing.T, handler http.HandlerFunc) *oddsfeed.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return oddsfeed.NewClient(oddsfeed.Config{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		Regions:    "eu",
		Markets:    []string{"totals", "totals_corners"},
		Bookmakers: []string{"pinnacle", "betsson"},
	}, srv.Client())
}

func TestFetchOdds(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	client := newFeedClient(t, func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/v4/sports/soccer_epl/odds", r.URL.Path)

		query := r.URL.Query()
		rq.Equal("test-key", query.Get("apiKey"))
		rq.Equal("eu", query.Get("regions"))
		rq.Equal("totals,totals_corners", query.Get("markets"))
		rq.Equal("decimal", query.Get("oddsFormat"))
		rq.Equal("pinnacle,betsson", query.Get("bookmakers"))

		w.Header().Set("X-Requests-Remaining", "499")
		w.Write([]byte(oddsBody)) //nolint:errcheck
	})

	fixtures, err := client.FetchOdds(context.Background(), "soccer_epl")
	rq.NoError(err)
	rq.Len(fixtures, 1)

	fixture := fixtures[0].Fixture
	rq.Equal(entity.Fixture{
		ID:       "f100",
		Sport:    "soccer_epl",
		League:   "EPL",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
		Kickoff:  time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC),
	}, fixture)

	quotes := fixtures[0].Quotes
	rq.Len(quotes, 5)

	bookUpdate := time.Date(2025, 3, 14, 11, 58, 0, 0, time.UTC)
	marketUpdate := time.Date(2025, 3, 14, 11, 59, 0, 0, time.UTC)

	over := quotes[0]
	rq.Equal("betsson", over.Source)
	rq.Equal("Total Corners", over.Market)
	rq.Equal(value.Selection("Over 9.5"), over.Selection)
	rq.InDelta(9.5, over.Line, 1e-9)
	rq.InDelta(2.30, over.DecimalOdds, 1e-9)
	rq.Equal(marketUpdate, over.ObservedAt)

	rq.Equal(value.Selection("Under 9.5"), quotes[1].Selection)

	// handicap legs keep their signed point in the selection text but share
	// the home-perspective line; the market had no last_update, so the
	// bookmaker's timestamp is used
	home := quotes[2]
	rq.Equal(value.Selection("Arsenal -1.5"), home.Selection)
	rq.InDelta(-1.5, home.Line, 1e-9)
	rq.Equal(bookUpdate, home.ObservedAt)

	away := quotes[3]
	rq.Equal(value.Selection("Chelsea +1.5"), away.Selection)
	rq.InDelta(-1.5, away.Line, 1e-9)
	rq.InDelta(1.9090909, away.DecimalOdds, 1e-6) // -110 American

	moneyline := quotes[4]
	rq.Equal(value.Selection("Arsenal"), moneyline.Selection)
	rq.InDelta(0, moneyline.Line, 1e-9)
	rq.InDelta(2.10, moneyline.DecimalOdds, 1e-9)
}

func TestFetchOddsUpstreamError(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	client := newFeedClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.FetchOdds(context.Background(), "soccer_epl")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.TransportError))
	rq.Contains(err.Error(), "401")
}

func TestFetchOddsBadPayload(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	client := newFeedClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not":"an array"}`)) //nolint:errcheck
	})

	_, err := client.FetchOdds(context.Background(), "soccer_epl")
	rq.Error(err)
}

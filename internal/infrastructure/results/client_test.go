package results_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"valuebet/internal/domain"
	"valuebet/internal/infrastructure/results"
	"valuebet/pkg/errcodes"
)

const resultBody = `{
  "data": [
    {
      "id": "f100",
      "stats": {
        "home": [
          {"period": "1h", "stats": {"won_corners": 3, "goals": 1}},
          {"period": "all", "stats": {"won_corners": 7, "goals": 2, "fouls": 11}}
        ],
        "away": [
          {"period": "all", "stats": {"won_corners": 4, "goals": 1}}
        ]
      }
    }
  ]
}`

func newResultsClient(t *testing.T, handler http.HandlerFunc) *results.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return results.NewClient(srv.URL, srv.Client())
}

func TestFinalStatistic(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	client := newResultsClient(t, func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/fixtures/results", r.URL.Path)
		rq.Equal("f100", r.URL.Query().Get("fixture_id"))

		w.Write([]byte(resultBody)) //nolint:errcheck
	})

	testCases := []struct {
		market string
		want   float64
	}{
		{market: "Total Corners", want: 11}, // 7 home + 4 away, full match only
		{market: "Total Goals", want: 3},
		{market: "Total Fouls", want: 11}, // away side has no fouls stat
	}

	for _, tc := range testCases {
		t.Run(tc.market, func(t *testing.T) {
			actual, err := client.FinalStatistic(context.Background(), "f100", tc.market)
			rq.NoError(err)
			rq.InDelta(tc.want, actual, 1e-9)
		})
	}
}

func TestFinalStatisticUngradeableMarkets(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	// ungradeable markets are rejected before any request goes out
	client := newResultsClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	for _, market := range []string{"Asian Handicap", "Player Shots", "Match Winner"} {
		_, err := client.FinalStatistic(context.Background(), "f100", market)
		rq.Error(err, market)
		rq.True(domain.HasCode(err, errcodes.Unresolvable), market)
	}
}

func TestFinalStatisticNotPublishedYet(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	client := newResultsClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": []}`)) //nolint:errcheck
	})

	_, err := client.FinalStatistic(context.Background(), "f100", "Total Corners")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.NotFound))
}

func TestFinalStatisticMissingStatistic(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	client := newResultsClient(t, func(w http.ResponseWriter, _ *http.Request) {
		body := `{"data": [{"id": "f100", "stats": {"home": [{"period": "all", "stats": {"goals": 2}}], "away": [{"period": "all", "stats": {"goals": 1}}]}}]}`
		w.Write([]byte(body)) //nolint:errcheck
	})

	_, err := client.FinalStatistic(context.Background(), "f100", "Total Corners")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.Unresolvable))
}

func TestFinalStatisticUpstreamError(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	client := newResultsClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FinalStatistic(context.Background(), "f100", "Total Corners")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.TransportError))
}

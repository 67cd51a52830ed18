// Package results resolves final fixture statistics for settlement.
package results

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"

	"valuebet/internal/domain"
	"valuebet/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// FinalStatistic returns the full-match value of the statistic grading the
// given market: home plus away totals. Markets with no grading statistic
// return Unresolvable; fixtures without a published result yet return
// NotFound, which callers treat as "try next cycle".
func (c *Client) FinalStatistic(ctx context.Context, fixtureID, market string) (float64, error) {
	key, ok := statKey(market)
	if !ok {
		return 0, domain.NewError(errcodes.Unresolvable,
			fmt.Sprintf("market %q has no grading statistic", market))
	}

	home, away, err := c.fetchTotals(ctx, fixtureID)
	if err != nil {
		return 0, err
	}

	homeValue, homeOK := home[key]
	awayValue, awayOK := away[key]

	if !homeOK && !awayOK {
		return 0, domain.NewError(errcodes.Unresolvable,
			fmt.Sprintf("fixture %s result has no %q statistic", fixtureID, key))
	}

	return homeValue + awayValue, nil
}

func (c *Client) fetchTotals(ctx context.Context, fixtureID string) (map[string]float64, map[string]float64, error) {
	query := url.Values{}
	query.Set("fixture_id", fixtureID)

	endpoint := fmt.Sprintf("%s/fixtures/results?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, domain.WrapError(err, errcodes.TransportError, "fetch results for "+fixtureID)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, domain.NewError(errcodes.TransportError,
			fmt.Sprintf("results api answered %d for %s", resp.StatusCode, fixtureID))
	}

	var response resultsResponseDTO
	if err = json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, nil, fmt.Errorf("json.Decode: %w", err)
	}

	if len(response.Data) == 0 {
		return nil, nil, domain.NewError(errcodes.NotFound, "no result for fixture "+fixtureID)
	}

	home, away := response.Data[0].Stats.fullMatchTotals()
	if home == nil && away == nil {
		return nil, nil, domain.NewError(errcodes.NotFound, "no full-match stats for fixture "+fixtureID)
	}

	return home, away, nil
}

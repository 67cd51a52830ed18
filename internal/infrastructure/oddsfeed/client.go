// Package oddsfeed polls the upstream odds API (The Odds API v4 wire shape)
// and normalizes per-bookmaker outcome prices into domain quotes.
package oddsfeed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/pkg/contextx"
	"valuebet/pkg/errcodes"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const quotaHeader = "X-Requests-Remaining"

type Config struct {
	BaseURL string
	APIKey  string
	Regions string
	Markets []string

	// Bookmakers limits the feed to the books the engine actually uses:
	// the sharp set feeding the fair line plus the bettable set. Empty
	// means every book in the region.
	Bookmakers []string
}

type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config, httpClient *http.Client) *Client {
	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// FixtureOdds is one fixture with every quote the feed returned for it.
type FixtureOdds struct {
	Fixture entity.Fixture
	Quotes  []entity.Quote
}

// FetchOdds polls one sport and returns its fixtures with normalized quotes.
func (c *Client) FetchOdds(ctx context.Context, sportKey string) ([]FixtureOdds, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.oddsURL(sportKey), nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.TransportError, "fetch odds for "+sportKey)
	}
	defer resp.Body.Close()

	if remaining := resp.Header.Get(quotaHeader); remaining != "" {
		logger(ctx).Info(
			"odds feed quota",
			slog.String("sport", sportKey),
			slog.String("remaining", remaining),
		)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewError(errcodes.TransportError,
			fmt.Sprintf("odds feed answered %d for %s", resp.StatusCode, sportKey))
	}

	var events []eventDTO
	if err = json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	fixtures := make([]FixtureOdds, 0, len(events))
	for _, event := range events {
		fixtures = append(fixtures, normalizeEvent(event, sportKey))
	}

	return fixtures, nil
}

func (c *Client) oddsURL(sportKey string) string {
	query := url.Values{}
	query.Set("apiKey", c.config.APIKey)
	query.Set("regions", c.config.Regions)
	query.Set("markets", strings.Join(c.config.Markets, ","))
	query.Set("oddsFormat", "decimal")
	query.Set("dateFormat", "iso")
	if len(c.config.Bookmakers) > 0 {
		query.Set("bookmakers", strings.Join(c.config.Bookmakers, ","))
	}

	return fmt.Sprintf("%s/v4/sports/%s/odds?%s", c.config.BaseURL, sportKey, query.Encode())
}

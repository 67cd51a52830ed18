package config

import "time"

// OddsFeed is the odds polling API (The Odds API v4 wire shape).
type OddsFeed struct {
	BaseURL string `env:"ODDS_BASE_URL" envDefault:"https://api.the-odds-api.com"`
	APIKey  string `env:"ODDS_API_KEY,notEmpty" json:"-"`
	Regions string `env:"ODDS_REGIONS" envDefault:"eu"`

	// Sports are feed sport keys, one poll request per key.
	Sports []string `env:"ODDS_SPORTS" envDefault:"soccer_epl,soccer_spain_la_liga,soccer_germany_bundesliga,soccer_italy_serie_a,soccer_france_ligue_one,soccer_netherlands_eredivisie,soccer_portugal_primeira_liga,soccer_uefa_champs_league,soccer_uefa_europa_league,soccer_usa_mls" validate:"min=1"`

	// Markets are feed market keys requested per sport.
	Markets []string `env:"ODDS_MARKETS" envDefault:"alternate_totals_corners,alternate_spreads_corners,alternate_spreads,totals" validate:"min=1"`

	Timeout        time.Duration `env:"ODDS_TIMEOUT" envDefault:"15s"`
	LogFieldMaxLen int           `env:"ODDS_LOG_FIELD_MAX_LEN" envDefault:"2048"`
}

package config

import "time"

// Results is the fixture-statistics API used for settlement.
type Results struct {
	BaseURL string        `env:"RESULTS_BASE_URL,notEmpty"`
	APIKey  string        `env:"RESULTS_API_KEY" json:"-"`
	Timeout time.Duration `env:"RESULTS_TIMEOUT" envDefault:"15s"`
}

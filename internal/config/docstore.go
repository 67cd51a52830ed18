package config

import "time"

// DocStore is the remote JSON document store holding active bets
// (Firebase RTDB-compatible paths).
type DocStore struct {
	BaseURL string        `env:"DOCSTORE_BASE_URL,notEmpty"`
	Auth    string        `env:"DOCSTORE_AUTH" json:"-"`
	Timeout time.Duration `env:"DOCSTORE_TIMEOUT" envDefault:"10s"`
}

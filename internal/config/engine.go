package config

import "time"

// Engine holds the detection and lifecycle knobs. Edge bounds are percent
// over fair value; the upper bound rejects quotes so far off they are
// likely stale.
type Engine struct {
	MinEdgePercent float64 `env:"ENGINE_MIN_EDGE" envDefault:"5" validate:"gt=0"`
	MaxEdgePercent float64 `env:"ENGINE_MAX_EDGE" envDefault:"25" validate:"gtfield=MinEdgePercent"`
	MinOdds        float64 `env:"ENGINE_MIN_ODDS" envDefault:"1.50" validate:"gt=1"`
	MaxOdds        float64 `env:"ENGINE_MAX_ODDS" envDefault:"3.0" validate:"gtfield=MinOdds"`

	// MinSources is how many independent books a selection needs before a
	// fair value is computed.
	MinSources int `env:"ENGINE_MIN_SOURCES" envDefault:"4" validate:"gte=2"`

	// MaxPerBook caps dispatched opportunities per bettable book per scan.
	MaxPerBook int `env:"ENGINE_MAX_PER_BOOK" envDefault:"3" validate:"gte=1"`

	FreshnessWindow time.Duration `env:"ENGINE_FRESHNESS_WINDOW" envDefault:"5m"`

	// FairMethod picks the representative price per selection:
	// best_price or consensus.
	FairMethod string `env:"ENGINE_FAIR_METHOD" envDefault:"best_price" validate:"oneof=best_price consensus"`

	// BettableBooks are dispatch targets; SharpBooks only feed the fair
	// line and never receive bets.
	BettableBooks []string `env:"ENGINE_BETTABLE_BOOKS" envDefault:"betsson,leovegas,unibet,betano" validate:"min=1"`
	SharpBooks    []string `env:"ENGINE_SHARP_BOOKS" envDefault:"pinnacle,888sport,betway,bwin,williamhill,coolbet"`

	// BaseUnit is the stake of a full risk-table unit, in account currency.
	BaseUnit float64 `env:"ENGINE_BASE_UNIT" envDefault:"100" validate:"gt=0"`

	// VoidMinEdgePercent voids a pending bet when the key's current edge
	// drops below it (or below half the original edge).
	VoidMinEdgePercent float64 `env:"ENGINE_VOID_MIN_EDGE" envDefault:"3"`

	// RecentAlertTTL suppresses re-alerting a dedupe key that recently went
	// terminal.
	RecentAlertTTL time.Duration `env:"ENGINE_RECENT_ALERT_TTL" envDefault:"24h"`
}

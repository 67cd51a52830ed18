package config

import "time"

// Worker schedules the four periodic cycles.
type Worker struct {
	ScanInterval   time.Duration `env:"WORKER_SCAN_INTERVAL" envDefault:"5m"`
	DrainInterval  time.Duration `env:"WORKER_DRAIN_INTERVAL" envDefault:"2m"`
	SweepInterval  time.Duration `env:"WORKER_SWEEP_INTERVAL" envDefault:"1m"`
	SettleInterval time.Duration `env:"WORKER_SETTLE_INTERVAL" envDefault:"30m"`

	// DrainBatchSize is how many queued opportunities one drain releases.
	DrainBatchSize int `env:"WORKER_DRAIN_BATCH_SIZE" envDefault:"2" validate:"gte=1"`

	// KickoffLookahead bounds how far ahead of kickoff fixtures are scanned.
	KickoffLookahead time.Duration `env:"WORKER_KICKOFF_LOOKAHEAD" envDefault:"6h"`

	// SettleGrace is how long after kickoff a played bet waits before the
	// first settlement attempt.
	SettleGrace time.Duration `env:"WORKER_SETTLE_GRACE" envDefault:"2h"`

	// ScanConcurrency bounds the per-sport fan-out of the poll cycle.
	ScanConcurrency int `env:"WORKER_SCAN_CONCURRENCY" envDefault:"4" validate:"gte=1"`
}

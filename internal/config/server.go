package config

import "time"

// Server groups the three listen surfaces: ops API, probes, metrics.
type Server struct {
	ListenAddress        string        `env:"SERVER_LISTEN_ADDRESS" envDefault:":8080"`
	ProbeListenAddress   string        `env:"PROBE_LISTEN_ADDRESS" envDefault:":8091"`
	MetricsListenAddress string        `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ShutdownTimeout      time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadHeaderTimeout    time.Duration `env:"SERVER_READ_HEADER_TIMEOUT" envDefault:"5s"`
}

package config

// Server addresses are only used in loop mode; empty disables the server.
type Server struct {
	ProbeAddr   string `env:"PROBE_ADDR"`
	MetricsAddr string `env:"METRICS_ADDR"`
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() defaults and Load(ctx) for layered resolution.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath optionally points at an external dataset YAML file.
	// Empty means the embedded dataset is used.
	DatasetPath string `koanf:"dataset_path"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		Addr:        ":9090",
		DatasetPath: "",
	}
}

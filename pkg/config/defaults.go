package config

import (
	"time"

	"github.com/ccollicutt/logkit/pkg/keygen"
)

// Default values for configuration.
const (
	DefaultLogLevel       = "warn"
	DefaultOutput         = OutputJSON
	DefaultKeyLength      = keygen.DefaultLength
	DefaultKeyCount       = 1
	DefaultWebhookTimeout = 10 * time.Second
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Convert: ConvertConfig{
			Output: DefaultOutput,
		},
		Keygen: KeygenConfig{
			Length: DefaultKeyLength,
			Count:  DefaultKeyCount,
		},
	}
}

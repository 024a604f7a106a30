package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills in defaults.
func Validate(cfg *Config) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	if err := validateConvert(&cfg.Convert); err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	if err := ValidateKeygen(&cfg.Keygen); err != nil {
		return fmt.Errorf("keygen: %w", err)
	}

	return nil
}

func validateConvert(cc *ConvertConfig) error {
	if cc.Output == "" {
		cc.Output = DefaultOutput
	}
	if err := ValidateOutput(cc.Output); err != nil {
		return err
	}

	// Webhooks are optional, but validate if present
	for i := range cc.Webhooks {
		if err := validateWebhook(&cc.Webhooks[i]); err != nil {
			name := cc.Webhooks[i].Name
			if name == "" {
				name = cc.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

// ValidateOutput checks that f names a supported output format.
func ValidateOutput(f OutputFormat) error {
	switch f {
	case OutputJSON, OutputYAML, OutputNDJSON:
		return nil
	default:
		return fmt.Errorf("invalid output %q (must be json, yaml, or ndjson)", f)
	}
}

// ValidateKeygen checks key generation settings.
func ValidateKeygen(kc *KeygenConfig) error {
	if kc.Length < 0 {
		return fmt.Errorf("length must be >= 0, got %d", kc.Length)
	}
	if kc.Count < 1 {
		return fmt.Errorf("count must be >= 1, got %d", kc.Count)
	}
	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	// Validate URL format
	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	switch wh.Payload {
	case "", string(OutputJSON), string(OutputNDJSON):
	default:
		return fmt.Errorf("invalid payload %q (must be json or ndjson)", wh.Payload)
	}

	if wh.BatchSize < 0 {
		return fmt.Errorf("batch_size must be >= 0, got %d", wh.BatchSize)
	}

	// Default timeout
	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

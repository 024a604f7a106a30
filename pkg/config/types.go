// Package config provides configuration loading and validation for logkit.
package config

import (
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// LogLevel is a zerolog level name (debug, info, warn, error, disabled).
	LogLevel string        `yaml:"log_level,omitempty"`
	Convert  ConvertConfig `yaml:"convert"`
	Keygen   KeygenConfig  `yaml:"keygen"`
}

// OutputFormat selects how converted records are rendered.
type OutputFormat string

const (
	OutputJSON   OutputFormat = "json"
	OutputYAML   OutputFormat = "yaml"
	OutputNDJSON OutputFormat = "ndjson"
)

// ConvertConfig configures log2json.
type ConvertConfig struct {
	// Output is the output format (json, yaml, ndjson).
	Output OutputFormat `yaml:"output,omitempty"`

	// Filter is an optional jq expression; only matching records are kept.
	Filter string `yaml:"filter,omitempty"`

	// Summary prints per-line outcome counts to stderr after the output.
	Summary bool `yaml:"summary,omitempty"`

	// Webhooks receive the converted array.
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// KeygenConfig configures keygen.
type KeygenConfig struct {
	// Length is the number of characters per key.
	Length int `yaml:"length"`

	// Count is the number of keys to print.
	Count int `yaml:"count"`
}

// WebhookConfig defines an endpoint that receives the converted records.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Payload is the body encoding (json or ndjson). When empty it follows
	// the output format: ndjson output sends ndjson, anything else json.
	Payload string `yaml:"payload,omitempty"`

	// BatchSize caps the records per request; 0 sends everything at once.
	BatchSize int `yaml:"batch_size,omitempty"`
}

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
log_level: debug
convert:
  output: yaml
  filter: '.level == "error"'
  summary: true
  webhooks:
    - name: collector
      url: https://example.com/hook
      token: secret
      timeout: 5s
      payload: ndjson
      batch_size: 500
keygen:
  length: 48
  count: 3
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Convert.Output != OutputYAML {
		t.Errorf("Output = %q, want yaml", cfg.Convert.Output)
	}
	if cfg.Convert.Filter != `.level == "error"` {
		t.Errorf("Filter = %q", cfg.Convert.Filter)
	}
	if !cfg.Convert.Summary {
		t.Error("Summary = false, want true")
	}
	if len(cfg.Convert.Webhooks) != 1 {
		t.Fatalf("Webhooks = %d, want 1", len(cfg.Convert.Webhooks))
	}
	if cfg.Convert.Webhooks[0].Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Convert.Webhooks[0].Timeout)
	}
	if cfg.Convert.Webhooks[0].Payload != "ndjson" || cfg.Convert.Webhooks[0].BatchSize != 500 {
		t.Errorf("Payload, BatchSize = %q, %d, want ndjson, 500",
			cfg.Convert.Webhooks[0].Payload, cfg.Convert.Webhooks[0].BatchSize)
	}
	if cfg.Keygen.Length != 48 || cfg.Keygen.Count != 3 {
		t.Errorf("Keygen = %+v, want length 48 count 3", cfg.Keygen)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "keygen:\n  count: 2\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Keygen.Length != DefaultKeyLength {
		t.Errorf("Length = %d, want default %d", cfg.Keygen.Length, DefaultKeyLength)
	}
	if cfg.Keygen.Count != 2 {
		t.Errorf("Count = %d, want 2", cfg.Keygen.Count)
	}
	if cfg.Convert.Output != DefaultOutput {
		t.Errorf("Output = %q, want default %q", cfg.Convert.Output, DefaultOutput)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want default %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoad_ZeroLengthAllowed(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "keygen:\n  length: 0\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Keygen.Length != 0 {
		t.Errorf("Length = %d, want 0", cfg.Keygen.Length)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `invalid: yaml: content: [`
	path := writeTempFile(t, "invalid.yaml", content)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"invalid log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty log level defaults", func(c *Config) { c.LogLevel = "" }, false},
		{"invalid output", func(c *Config) { c.Convert.Output = "xml" }, true},
		{"empty output defaults", func(c *Config) { c.Convert.Output = "" }, false},
		{"negative length", func(c *Config) { c.Keygen.Length = -1 }, true},
		{"zero count", func(c *Config) { c.Keygen.Count = 0 }, true},
		{"webhook missing url", func(c *Config) {
			c.Convert.Webhooks = []WebhookConfig{{Name: "x"}}
		}, true},
		{"webhook bad scheme", func(c *Config) {
			c.Convert.Webhooks = []WebhookConfig{{URL: "ftp://example.com"}}
		}, true},
		{"webhook no host", func(c *Config) {
			c.Convert.Webhooks = []WebhookConfig{{URL: "https://"}}
		}, true},
		{"webhook bad payload", func(c *Config) {
			c.Convert.Webhooks = []WebhookConfig{{URL: "https://example.com", Payload: "yaml"}}
		}, true},
		{"webhook negative batch size", func(c *Config) {
			c.Convert.Webhooks = []WebhookConfig{{URL: "https://example.com", BatchSize: -1}}
		}, true},
		{"webhook ndjson batches", func(c *Config) {
			c.Convert.Webhooks = []WebhookConfig{{URL: "https://example.com", Payload: "ndjson", BatchSize: 100}}
		}, false},
		{"webhook valid", func(c *Config) {
			c.Convert.Webhooks = []WebhookConfig{{URL: "http://localhost:8080/hook"}}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_DefaultWebhookTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Convert.Webhooks = []WebhookConfig{{URL: "https://example.com/hook"}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Convert.Webhooks[0].Timeout != DefaultWebhookTimeout {
		t.Errorf("Timeout = %v, want default %v", cfg.Convert.Webhooks[0].Timeout, DefaultWebhookTimeout)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}
	if cfg.Keygen.Length != 32 {
		t.Errorf("DefaultConfig() key length = %d, want 32", cfg.Keygen.Length)
	}
	if cfg.Keygen.Count != 1 {
		t.Errorf("DefaultConfig() key count = %d, want 1", cfg.Keygen.Count)
	}
}

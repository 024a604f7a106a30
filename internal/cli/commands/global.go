package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logkit/internal/logging"
	"github.com/ccollicutt/logkit/pkg/config"
)

// ErrUsage marks errors caused by a wrong command line.
var ErrUsage = errors.New("usage error")

// UsageError carries the usage line printed for a wrong command line.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "Usage: " + e.Usage
}

// Is reports whether target is ErrUsage.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// GlobalOptions holds flags shared by every tool.
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
}

// Bind registers the shared flags on cmd.
func (g *GlobalOptions) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&g.ConfigPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&g.LogLevel, "log-level", config.DefaultLogLevel, "Log level (trace|debug|info|warn|error|disabled)")
}

// setup loads the configuration file, if one was named, and configures
// logging on the command's stderr. Command-line flags win over the file.
func (g *GlobalOptions) setup(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if g.ConfigPath != "" {
		loaded, err := config.Load(ctx, g.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = g.LogLevel
	}
	if err := logging.Setup(cfg.LogLevel, cmd.ErrOrStderr()); err != nil {
		return nil, err
	}

	return cfg, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

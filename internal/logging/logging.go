// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at w with the given minimum level.
// Output is human readable and uncoloured since it shares stderr with
// diagnostics that other tools may parse.
func Setup(level string, w io.Writer) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)

	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}

	log.Logger = zerolog.New(consoleWriter).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return nil
}

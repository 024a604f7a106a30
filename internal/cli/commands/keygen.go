package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/logkit/pkg/config"
	"github.com/ccollicutt/logkit/pkg/keygen"
)

// KeygenOptions holds command-line options for keygen.
type KeygenOptions struct {
	GlobalOptions

	Length int
	Count  int
}

// NewKeygenCommand creates the keygen command.
func NewKeygenCommand() *cobra.Command {
	opts := &KeygenOptions{}

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Print a random alphanumeric key",
		Long: `Print a random key drawn uniformly from A-Z, a-z and 0-9 using the
operating system's secure random source.

Exit codes:
  0 - Key printed
  2 - Configuration or random source error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeygen(cmd, opts)
		},
	}

	opts.GlobalOptions.Bind(cmd)

	cmd.Flags().IntVarP(&opts.Length, "length", "l", config.DefaultKeyLength, "Characters per key")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", config.DefaultKeyCount, "Number of keys to print")

	return cmd
}

func runKeygen(cmd *cobra.Command, opts *KeygenOptions) error {
	ctx := commandContext(cmd)

	cfg, err := opts.setup(ctx, cmd)
	if err != nil {
		return err
	}

	kc := cfg.Keygen
	if cmd.Flags().Changed("length") {
		kc.Length = opts.Length
	}
	if cmd.Flags().Changed("count") {
		kc.Count = opts.Count
	}
	if kc.Count < 1 {
		return fmt.Errorf("count must be >= 1, got %d", kc.Count)
	}

	gen, err := keygen.New(keygen.Options{Length: kc.Length})
	if err != nil {
		return err
	}

	log.Debug().Int("length", kc.Length).Int("count", kc.Count).Msg("generating keys")

	out := cmd.OutOrStdout()
	for i := 0; i < kc.Count; i++ {
		key, err := gen.Generate()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, key); err != nil {
			return fmt.Errorf("writing key: %w", err)
		}
	}

	return nil
}

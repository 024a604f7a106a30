// Package cli provides the command-line entry points for log2json and keygen.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logkit/internal/cli/commands"
)

// ExecuteLog2JSON runs log2json with the process arguments and returns the exit code.
func ExecuteLog2JSON() int {
	return run(NewLog2JSONCommand(), os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteKeygen runs keygen with the process arguments and returns the exit code.
func ExecuteKeygen() int {
	return run(NewKeygenCommand(), os.Args[1:], os.Stdout, os.Stderr)
}

// NewLog2JSONCommand creates the log2json root command.
func NewLog2JSONCommand() *cobra.Command {
	return newRoot(commands.NewConvertCommand())
}

// NewKeygenCommand creates the keygen root command.
func NewKeygenCommand() *cobra.Command {
	return newRoot(commands.NewKeygenCommand())
}

func newRoot(cmd *cobra.Command) *cobra.Command {
	cmd.Version = commands.Version
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

// run executes root and maps its error to an exit code:
// 0 success, 1 usage error, 2 configuration or runtime error.
func run(root *cobra.Command, args []string, stdout, stderr io.Writer) int {
	// Cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}

	var usageErr *commands.UsageError
	if errors.As(err, &usageErr) {
		_, _ = fmt.Fprintln(stdout, usageErr.Error())
		return 1
	}

	// Print error to stderr (SilenceErrors prevents Cobra from doing this)
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return 2
}

// keygen prints a random 32-character alphanumeric key.
package main

import (
	"os"

	"github.com/ccollicutt/logkit/internal/cli"
)

func main() {
	os.Exit(cli.ExecuteKeygen())
}

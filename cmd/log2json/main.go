// log2json converts a newline-delimited JSON log file into one pretty-printed
// JSON array on standard output.
package main

import (
	"os"

	"github.com/ccollicutt/logkit/internal/cli"
)

func main() {
	os.Exit(cli.ExecuteLog2JSON())
}

// morpho is a suffix-first morphological analysis engine.
// Single binary, zero config — embedded seed data, optional bbolt-backed
// lexicons, JSON output.
package main

import (
	"os"

	"github.com/corey/morpho/cmd/morpho/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

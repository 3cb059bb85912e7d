// Package main provides the cmpfill command.
package main

import (
	"os"

	"github.com/leapstack-labs/cmpfill/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the lola-report CLI.
package main

import (
	"os"

	"github.com/lolaverein/lola-accounting/cmd/lola-report/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

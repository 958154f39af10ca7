// Package main provides the entry point for the compcheck CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/compcheck/cmd/compcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for melicalc.
package main

import (
	"os"

	"melicalc/cmd/melicalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

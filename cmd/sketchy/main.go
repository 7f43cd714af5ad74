// Package main provides the entry point for the sketchy server.
package main

import (
	"os"

	"github.com/sketchy-app/sketchy/cmd/sketchy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

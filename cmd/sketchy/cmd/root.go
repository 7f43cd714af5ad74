// Package cmd provides the CLI commands for the sketchy server.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sketchy-app/sketchy/config"
)

// Version is the build version, overridden with -ldflags at release time.
var Version = "dev"

// NewRootCmd creates the root command for the sketchy CLI.
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sketchy",
		Short: "Sketchy - a social site for sharing travel sketches",
		Long: `Sketchy serves the sketch gallery: the home page search, user profiles
with their sketches, followers and follows, and sketch pages.

Run 'sketchy serve' to start the HTTP server.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config file (default: built-in defaults)")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newSeedCmd(&configPath))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// loadSettings reads the config file and applies the database flag override.
func loadSettings(configPath, dbPath string) (config.Settings, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return config.Settings{}, err
	}
	if dbPath != "" {
		settings.Database.Path = dbPath
	}
	return settings, nil
}

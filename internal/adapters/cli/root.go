package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	garageName string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "garage",
		Short: "Parking garage allocation engine",
		Long: `garage assigns parking spots to motorcycles, cars and buses and keeps
the garage document, its ID pools and its next-spot cache consistent.

Every command works directly against the configured database. The serve
command exposes the same operations over HTTP.

Examples:
  garage import --file garage.json
  garage park --type 1
  garage exit --vehicle 0 --level 0 --row 0 --spot 1
  garage status
  garage export --file backup.json
  garage serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/parking-garage)")
	rootCmd.PersistentFlags().StringVar(&garageName, "garage", "",
		"Garage name (overrides garage.name)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewParkCommand())
	rootCmd.AddCommand(NewExitCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/parking-garage/internal/application/parking/commands"
	"github.com/andrescamacho/parking-garage/internal/application/parking/queries"
)

// NewImportCommand creates the import command
func NewImportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create or replace a garage from a document",
		Long: `Validate a garage document and store it under the name it carries,
replacing any garage of that name. Counters in the document are ignored and
rebuilt from the spots. Use - to read from stdin.

Examples:
  garage import --file garage.json
  cat garage.json | garage import --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := readDocument(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			app, err := bootstrap(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.context(cmd.Context()), &commands.ImportGarageCommand{Document: document})
			if err != nil {
				return err
			}

			imported := resp.(*commands.ImportGarageResponse)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported garage %s (capacity %d, occupancy %d)\n",
				imported.Name, imported.MaxCapacity, imported.Occupancy)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Garage document to import, or - for stdin (required)")
	cmd.MarkFlagRequired("file")

	return cmd
}

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the canonical garage document",
		Long: `Write the stored garage as a canonical document, to stdout or a file.

Examples:
  garage export
  garage export --file backup.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.context(cmd.Context()), &queries.ExportGarageQuery{
				GarageName: app.cfg.Garage.Name,
			})
			if err != nil {
				return err
			}

			document := resp.(*queries.ExportGarageResponse).Document
			if file == "" || file == "-" {
				_, err = cmd.OutOrStdout().Write(document)
				return err
			}
			if err := os.WriteFile(file, document, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", file, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported garage %s to %s\n", app.cfg.Garage.Name, file)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Output file (default: stdout)")

	return cmd
}

func readDocument(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin)
	}
	document, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return document, nil
}

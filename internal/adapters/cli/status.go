package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/parking-garage/internal/application/parking/dtos"
	"github.com/andrescamacho/parking-garage/internal/application/parking/queries"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show garage occupancy and availability",
		Long: `Show capacity, occupancy, per-type counts and the next location each
vehicle type would be parked in.

Examples:
  garage status
  garage status --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.context(cmd.Context()), &queries.GetStatusQuery{
				GarageName: app.cfg.Garage.Name,
			})
			if err != nil {
				return err
			}

			status := resp.(*queries.GetStatusResponse).Status
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(status)
			}
			printStatus(cmd.OutOrStdout(), status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the status view as JSON")

	return cmd
}

func printStatus(out io.Writer, status *dtos.StatusDTO) {
	fmt.Fprintf(out, "Garage %s\n", status.Name)
	fmt.Fprintln(out, strings.Repeat("=", len(status.Name)+7))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Capacity:\t%d\n", status.MaxCapacity)
	fmt.Fprintf(w, "Occupancy:\t%d\n", status.Occupancy)
	fmt.Fprintf(w, "Motorcycles:\t%d\n", status.Motorcycles)
	fmt.Fprintf(w, "Cars:\t%d\n", status.Cars)
	fmt.Fprintf(w, "Buses:\t%d\n", status.Buses)
	fmt.Fprintf(w, "Available:\t%t\n", status.Available)
	fmt.Fprintf(w, "Accepting:\t%s\n", joinOrNone(status.AvailableSpotTypes))
	fmt.Fprintf(w, "Free spots:\t%d\n", status.AvailableSpotsTotal)
	w.Flush()

	fmt.Fprintln(out, "\nNext spots:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tLEVEL\tROW\tSPOT")
	printNext(w, "MOTORCYCLE", status.NextMotoSpot)
	printNext(w, "CAR", status.NextCarSpot)
	printNext(w, "BUS", status.NextBusSpot)
	w.Flush()
}

func printNext(w io.Writer, label string, next *dtos.NextSpotDTO) {
	if next == nil {
		fmt.Fprintf(w, "%s\t-\t-\tfull\n", label)
		return
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", label, next.Level, next.Row, next.SpotID)
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/parking-garage/internal/application/parking/commands"
)

// NewParkCommand creates the park command
func NewParkCommand() *cobra.Command {
	var vehicleType int

	cmd := &cobra.Command{
		Use:   "park",
		Short: "Park a vehicle",
		Long: `Park a vehicle in the next available location for its type.

Vehicle types: 0 = MOTORCYCLE, 1 = CAR, 2 = BUS.
A bus takes five adjacent LARGE spots in one row; its spot ID is printed
as a range such as 5-9.

Examples:
  garage park --type 1
  garage park --type 2 --garage downtown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("type") {
				return fmt.Errorf("--type is required")
			}

			app, err := bootstrap(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.context(cmd.Context()), &commands.ParkVehicleCommand{
				GarageName:  app.cfg.Garage.Name,
				VehicleType: &vehicleType,
			})
			if err != nil {
				return err
			}

			parked := resp.(*commands.ParkVehicleResponse)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Parked %s as vehicle %s\n", parked.VehicleType, parked.VehicleID)
			fmt.Fprintf(out, "  Level:     %s\n", parked.Level)
			fmt.Fprintf(out, "  Row:       %s\n", parked.Row)
			fmt.Fprintf(out, "  Spot:      %s\n", parked.SpotID)
			fmt.Fprintf(out, "  Spot type: %s\n", parked.SpotType)
			return nil
		},
	}

	cmd.Flags().IntVar(&vehicleType, "type", 0, "Vehicle type (0=MOTORCYCLE, 1=CAR, 2=BUS)")

	return cmd
}

// NewExitCommand creates the exit command
func NewExitCommand() *cobra.Command {
	var (
		vehicleID string
		levelID   string
		rowID     string
		spotID    string
	)

	cmd := &cobra.Command{
		Use:   "exit",
		Short: "Release a parked vehicle",
		Long: `Release a parked vehicle from the location it was assigned.

The location must match what park returned, including the full spot range
for a bus.

Example:
  garage exit --vehicle 3 --level 0 --row 1 --spot 5-9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			_, err = app.mediator.Send(app.context(cmd.Context()), &commands.ExitVehicleCommand{
				GarageName: app.cfg.Garage.Name,
				VehicleID:  vehicleID,
				LevelID:    levelID,
				RowID:      rowID,
				SpotID:     spotID,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Vehicle %s left level %s, row %s, spot %s\n", vehicleID, levelID, rowID, spotID)
			return nil
		},
	}

	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "Vehicle ID returned by park (required)")
	cmd.Flags().StringVar(&levelID, "level", "", "Level ID (required)")
	cmd.Flags().StringVar(&rowID, "row", "", "Row ID (required)")
	cmd.Flags().StringVar(&spotID, "spot", "", "Spot ID or range (required)")
	cmd.MarkFlagRequired("vehicle")
	cmd.MarkFlagRequired("level")
	cmd.MarkFlagRequired("row")
	cmd.MarkFlagRequired("spot")

	return cmd
}

package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/parking-garage/internal/adapters/persistence"
	"github.com/andrescamacho/parking-garage/internal/application/mediator"
	"github.com/andrescamacho/parking-garage/internal/application/parking/commands"
	"github.com/andrescamacho/parking-garage/internal/application/parking/dtos"
	"github.com/andrescamacho/parking-garage/internal/application/parking/queries"
	"github.com/andrescamacho/parking-garage/internal/application/setup"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
	"github.com/andrescamacho/parking-garage/test/helpers"
)

type parkingContext struct {
	garageName string
	repo       garage.DocumentRepository
	mediator   mediator.Mediator

	parked  *commands.ParkVehicleResponse
	parkErr error
	exitErr error
}

func (pc *parkingContext) reset() {
	pc.garageName = ""
	pc.repo = helpers.NewMockDocumentRepository()
	pc.mediator = nil
	pc.parked = nil
	pc.parkErr = nil
	pc.exitErr = nil
}

func (pc *parkingContext) ensureMediator() error {
	if pc.mediator != nil {
		return nil
	}
	m, err := setup.NewHandlerRegistry(pc.repo, 3, nil).CreateConfiguredMediator()
	if err != nil {
		return err
	}
	pc.mediator = m
	return nil
}

// Given steps

func (pc *parkingContext) garagesAreStoredInTheDatabase() error {
	if pc.mediator != nil {
		return fmt.Errorf("the store must be chosen before the first garage is created")
	}
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	pc.repo = persistence.NewGormGarageRepository(helpers.SharedTestDB)
	return nil
}

func (pc *parkingContext) aGarageWithRows(name string, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("expected a header row and at least one row")
	}
	columns := tableColumns(table.Rows[0])
	for _, col := range []string{"level", "row", "spots"} {
		if _, ok := columns[col]; !ok {
			return fmt.Errorf("missing column %q", col)
		}
	}

	builder := helpers.NewGarageBuilder(name)
	currentLevel := ""
	for _, row := range table.Rows[1:] {
		levelID := row.Cells[columns["level"]].Value
		rowID := row.Cells[columns["row"]].Value
		types, ok := helpers.ParseSpotTypeNames(strings.Split(row.Cells[columns["spots"]].Value, ",")...)
		if !ok {
			return fmt.Errorf("unknown spot type in %q", row.Cells[columns["spots"]].Value)
		}
		if levelID != currentLevel {
			builder.Level(levelID)
			currentLevel = levelID
		}
		builder.Row(rowID, types...)
	}

	document, err := builder.Document()
	if err != nil {
		return err
	}
	if err := pc.ensureMediator(); err != nil {
		return err
	}
	if _, err := pc.mediator.Send(context.Background(), &commands.ImportGarageCommand{Document: document}); err != nil {
		return err
	}
	pc.garageName = name
	return nil
}

// When steps

func (pc *parkingContext) iParkA(vehicleName string) error {
	vehicleType, ok := vehicleTypeByName(vehicleName)
	if !ok {
		return fmt.Errorf("unknown vehicle type %q", vehicleName)
	}
	return pc.iParkAVehicleOfType(int(vehicleType))
}

func (pc *parkingContext) iParkAVehicleOfType(code int) error {
	if err := pc.ensureMediator(); err != nil {
		return err
	}
	resp, err := pc.mediator.Send(context.Background(), &commands.ParkVehicleCommand{
		GarageName:  pc.garageName,
		VehicleType: &code,
	})
	pc.parkErr = err
	pc.parked = nil
	if err == nil {
		pc.parked = resp.(*commands.ParkVehicleResponse)
	}
	return nil
}

func (pc *parkingContext) iExitVehicleFrom(vehicleID, levelID, rowID, spotID string) error {
	if err := pc.ensureMediator(); err != nil {
		return err
	}
	_, pc.exitErr = pc.mediator.Send(context.Background(), &commands.ExitVehicleCommand{
		GarageName: pc.garageName,
		VehicleID:  vehicleID,
		LevelID:    levelID,
		RowID:      rowID,
		SpotID:     spotID,
	})
	return nil
}

// Then steps

func (pc *parkingContext) theVehicleShouldBeParkedAt(levelID, rowID, spotID string) error {
	if pc.parkErr != nil {
		return fmt.Errorf("park failed: %w", pc.parkErr)
	}
	if pc.parked.Level != levelID || pc.parked.Row != rowID || pc.parked.SpotID != spotID {
		return fmt.Errorf("expected level %s row %s spot %s, got level %s row %s spot %s",
			levelID, rowID, spotID, pc.parked.Level, pc.parked.Row, pc.parked.SpotID)
	}
	return nil
}

func (pc *parkingContext) theAssignedVehicleIDShouldBe(vehicleID string) error {
	if pc.parkErr != nil {
		return fmt.Errorf("park failed: %w", pc.parkErr)
	}
	if pc.parked.VehicleID != vehicleID {
		return fmt.Errorf("expected vehicle ID %s, got %s", vehicleID, pc.parked.VehicleID)
	}
	return nil
}

func (pc *parkingContext) parkingShouldFailWithCode(code string) error {
	return expectCode(pc.parkErr, code)
}

func (pc *parkingContext) theExitShouldSucceed() error {
	if pc.exitErr != nil {
		return fmt.Errorf("expected exit to succeed, got %w", pc.exitErr)
	}
	return nil
}

func (pc *parkingContext) theExitShouldFailWithCode(code string) error {
	return expectCode(pc.exitErr, code)
}

func (pc *parkingContext) theGarageOccupancyShouldBe(expected int) error {
	status, err := pc.status()
	if err != nil {
		return err
	}
	if status.Occupancy != expected {
		return fmt.Errorf("expected occupancy %d, got %d", expected, status.Occupancy)
	}
	return nil
}

func (pc *parkingContext) theGarageShouldNotBeAvailable() error {
	status, err := pc.status()
	if err != nil {
		return err
	}
	if status.Available {
		return fmt.Errorf("expected the garage to be unavailable, accepting %v", status.AvailableSpotTypes)
	}
	return nil
}

func (pc *parkingContext) theNextSpotShouldBe(vehicleName, spotID string) error {
	next, err := pc.nextSpot(vehicleName)
	if err != nil {
		return err
	}
	if next == nil {
		return fmt.Errorf("expected next %s spot %s, got none", vehicleName, spotID)
	}
	if next.SpotID != spotID {
		return fmt.Errorf("expected next %s spot %s, got %s", vehicleName, spotID, next.SpotID)
	}
	return nil
}

func (pc *parkingContext) theNextSpotShouldBeNone(vehicleName string) error {
	next, err := pc.nextSpot(vehicleName)
	if err != nil {
		return err
	}
	if next != nil {
		return fmt.Errorf("expected no next %s spot, got %s", vehicleName, next.SpotID)
	}
	return nil
}

func (pc *parkingContext) reimportingKeepsOccupancy(expected int) error {
	ctx := context.Background()
	resp, err := pc.mediator.Send(ctx, &queries.ExportGarageQuery{GarageName: pc.garageName})
	if err != nil {
		return err
	}
	document := resp.(*queries.ExportGarageResponse).Document

	imported, err := pc.mediator.Send(ctx, &commands.ImportGarageCommand{Document: document})
	if err != nil {
		return err
	}
	if occupancy := imported.(*commands.ImportGarageResponse).Occupancy; occupancy != expected {
		return fmt.Errorf("expected occupancy %d after re-import, got %d", expected, occupancy)
	}
	return nil
}

func (pc *parkingContext) theStoredGarageVersionShouldBe(expected int64) error {
	stored, err := pc.repo.Load(context.Background(), pc.garageName)
	if err != nil {
		return err
	}
	if stored.Version != expected {
		return fmt.Errorf("expected stored version %d, got %d", expected, stored.Version)
	}
	return nil
}

func (pc *parkingContext) status() (*dtos.StatusDTO, error) {
	resp, err := pc.mediator.Send(context.Background(), &queries.GetStatusQuery{GarageName: pc.garageName})
	if err != nil {
		return nil, err
	}
	return resp.(*queries.GetStatusResponse).Status, nil
}

func (pc *parkingContext) nextSpot(vehicleName string) (*dtos.NextSpotDTO, error) {
	status, err := pc.status()
	if err != nil {
		return nil, err
	}
	switch vehicleName {
	case "MOTORCYCLE":
		return status.NextMotoSpot, nil
	case "CAR":
		return status.NextCarSpot, nil
	case "BUS":
		return status.NextBusSpot, nil
	default:
		return nil, fmt.Errorf("unknown vehicle type %q", vehicleName)
	}
}

func expectCode(err error, code string) error {
	if err == nil {
		return fmt.Errorf("expected failure with code %q, got success", code)
	}
	var gerr *garage.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("expected a garage error with code %q, got %v", code, err)
	}
	if gerr.Code != code {
		return fmt.Errorf("expected code %q, got %q (%s)", code, gerr.Code, gerr.Cause)
	}
	return nil
}

func tableColumns(header *messages.PickleTableRow) map[string]int {
	columns := make(map[string]int, len(header.Cells))
	for i, cell := range header.Cells {
		columns[strings.TrimSpace(cell.Value)] = i
	}
	return columns
}

func vehicleTypeByName(name string) (garage.VehicleType, bool) {
	for _, vt := range garage.AllVehicleTypes() {
		if vt.Name() == name {
			return vt, true
		}
	}
	return 0, false
}

// InitializeParkingScenario registers the park, exit and status steps
func InitializeParkingScenario(ctx *godog.ScenarioContext) {
	pc := &parkingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^garages are stored in the database$`, pc.garagesAreStoredInTheDatabase)
	ctx.Step(`^a garage "([^"]*)" with rows:$`, pc.aGarageWithRows)

	// When steps
	ctx.Step(`^I park a (MOTORCYCLE|CAR|BUS)$`, pc.iParkA)
	ctx.Step(`^I park a vehicle of type (-?\d+)$`, pc.iParkAVehicleOfType)
	ctx.Step(`^I exit vehicle "([^"]*)" from level "([^"]*)" row "([^"]*)" spot "([^"]*)"$`, pc.iExitVehicleFrom)

	// Then steps
	ctx.Step(`^the vehicle should be parked at level "([^"]*)" row "([^"]*)" spot "([^"]*)"$`, pc.theVehicleShouldBeParkedAt)
	ctx.Step(`^the assigned vehicle ID should be "([^"]*)"$`, pc.theAssignedVehicleIDShouldBe)
	ctx.Step(`^parking should fail with code "([^"]*)"$`, pc.parkingShouldFailWithCode)
	ctx.Step(`^the exit should succeed$`, pc.theExitShouldSucceed)
	ctx.Step(`^the exit should fail with code "([^"]*)"$`, pc.theExitShouldFailWithCode)
	ctx.Step(`^the garage occupancy should be (\d+)$`, pc.theGarageOccupancyShouldBe)
	ctx.Step(`^the garage should not be available$`, pc.theGarageShouldNotBeAvailable)
	ctx.Step(`^the next (MOTORCYCLE|CAR|BUS) spot should be "([^"]*)"$`, pc.theNextSpotShouldBe)
	ctx.Step(`^the next (MOTORCYCLE|CAR|BUS) spot should be none$`, pc.theNextSpotShouldBeNone)
	ctx.Step(`^the stored garage version should be (\d+)$`, pc.theStoredGarageVersionShouldBe)
	ctx.Step(`^re-importing the exported document keeps occupancy (\d+)$`, pc.reimportingKeepsOccupancy)
}

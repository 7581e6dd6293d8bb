package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

type spotRangeContext struct {
	spotIDs []string
	err     error
}

func (sc *spotRangeContext) reset() {
	sc.spotIDs = nil
	sc.err = nil
}

func (sc *spotRangeContext) iDecoupleSpotID(spotID string) error {
	sc.spotIDs, sc.err = garage.DecoupleSpotID(spotID)
	return nil
}

func (sc *spotRangeContext) theSpotIDsShouldBe(expected string) error {
	if sc.err != nil {
		return fmt.Errorf("decoupling failed: %w", sc.err)
	}
	if got := strings.Join(sc.spotIDs, ","); got != expected {
		return fmt.Errorf("expected spot IDs %s, got %s", expected, got)
	}
	return nil
}

// InitializeSpotRangeScenario registers the spot ID range steps
func InitializeSpotRangeScenario(ctx *godog.ScenarioContext) {
	sc := &spotRangeContext{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	ctx.Step(`^I decouple spot ID "([^"]*)"$`, sc.iDecoupleSpotID)
	ctx.Step(`^the spot IDs should be "([^"]*)"$`, sc.theSpotIDsShouldBe)
}

package httpapi

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrescamacho/parking-garage/internal/application/mediator"
	"github.com/andrescamacho/parking-garage/internal/application/parking/commands"
	"github.com/andrescamacho/parking-garage/internal/application/parking/queries"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

const maxBodyBytes = 1 << 20

// ParkingHandler serves the park, exit and status endpoints of one garage
type ParkingHandler struct {
	mediator   mediator.Mediator
	garageName string
}

// NewParkingHandler creates a new ParkingHandler
func NewParkingHandler(m mediator.Mediator, garageName string) *ParkingHandler {
	return &ParkingHandler{mediator: m, garageName: garageName}
}

// Park handles PUT /parking
func (h *ParkingHandler) Park(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	doc, err := validateBody(body, parkFields)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	vehicleType := int(doc.Get("vehicle_type").Int())
	resp, err := h.mediator.Send(c.Request.Context(), &commands.ParkVehicleCommand{
		GarageName:  h.garageName,
		VehicleType: &vehicleType,
	})
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Exit handles DELETE /parking
func (h *ParkingHandler) Exit(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	doc, err := validateBody(body, exitFields)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	_, err = h.mediator.Send(c.Request.Context(), &commands.ExitVehicleCommand{
		GarageName: h.garageName,
		VehicleID:  doc.Get("vehicle_id").String(),
		LevelID:    doc.Get("level").String(),
		RowID:      doc.Get("row").String(),
		SpotID:     doc.Get("spot_id").String(),
	})
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Status handles GET /status
func (h *ParkingHandler) Status(c *gin.Context) {
	resp, err := h.mediator.Send(c.Request.Context(), &queries.GetStatusQuery{GarageName: h.garageName})
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, resp.(*queries.GetStatusResponse).Status)
}

func readBody(c *gin.Context) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return nil, garage.NewValidationError("body", "request body could not be read")
	}
	return body, nil
}

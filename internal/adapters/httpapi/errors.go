package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// ErrorBody is the JSON body of every failed request
type ErrorBody struct {
	Code    string `json:"code"`
	Cause   string `json:"cause"`
	Message string `json:"message"`
}

// StatusFor maps an application error to its HTTP status code
func StatusFor(err error) int {
	var gerr *garage.Error
	switch {
	case errors.As(err, &gerr):
		switch gerr.Kind {
		case garage.KindValidation, garage.KindInvalidVehicleType,
			garage.KindCapacityExhausted, garage.KindLocationMismatch:
			return http.StatusBadRequest
		case garage.KindReferenceNotFound:
			if gerr.Code == garage.CodeInvalidVehicleID {
				return http.StatusNotFound
			}
			return http.StatusBadRequest
		default:
			return http.StatusInternalServerError
		}
	case errors.Is(err, garage.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, garage.ErrGarageNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// BodyFor builds the error body. Internal failures do not leak their cause.
func BodyFor(err error) ErrorBody {
	var gerr *garage.Error
	switch {
	case errors.As(err, &gerr) && StatusFor(err) != http.StatusInternalServerError:
		return ErrorBody{Code: gerr.Code, Cause: gerr.Cause, Message: gerr.Message}
	case errors.Is(err, garage.ErrVersionConflict):
		return ErrorBody{
			Code:    "Conflict",
			Cause:   "garage was modified concurrently",
			Message: "Please try again",
		}
	case errors.Is(err, garage.ErrGarageNotFound):
		return ErrorBody{
			Code:    "Garage Not Found",
			Cause:   err.Error(),
			Message: "Please check the garage configuration",
		}
	default:
		return ErrorBody{
			Code:    "Internal Server Error",
			Cause:   "Internal Server Error",
			Message: "Please try again later",
		}
	}
}

// ErrorResponse aborts the request with the mapped status and body
func ErrorResponse(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		loggerFor(c).WithError(err).Error("request failed")
	}
	c.AbortWithStatusJSON(status, BodyFor(err))
}

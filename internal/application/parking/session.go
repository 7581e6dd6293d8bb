// Package parking holds the pieces shared by the parking commands and
// queries: request validation and turning a stored document into a ready
// allocator.
package parking

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/parking-garage/internal/adapters/snapshot"
	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

// OpenAllocator decodes a garage document and rebuilds all derived state
// from it. Whatever counters the document may carry are ignored.
func OpenAllocator(document []byte) (*garage.Allocator, error) {
	g, err := snapshot.Decode(document)
	if err != nil {
		return nil, err
	}
	return garage.NewAllocator(g), nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Report fields by their wire names, e.g. "vehicle_type"
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

// ValidateRequest checks a command or query against its struct tags and
// reports the first failing field as a garage validation error
func ValidateRequest(request interface{}) error {
	err := requestValidator().Struct(request)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return garage.NewValidationError("request", err.Error())
	}
	first := validationErrs[0]
	return garage.NewValidationError(first.Field(), describe(first))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must not be empty"
	default:
		return fe.Field() + " failed " + fe.Tag() + " validation"
	}
}

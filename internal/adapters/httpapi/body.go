package httpapi

import (
	"math"

	"github.com/tidwall/gjson"

	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

type fieldKind int

const (
	integerField fieldKind = iota
	stringField
)

type requiredField struct {
	name string
	kind fieldKind
}

var (
	parkFields = []requiredField{{"vehicle_type", integerField}}
	exitFields = []requiredField{
		{"vehicle_id", stringField},
		{"spot_id", stringField},
		{"row", stringField},
		{"level", stringField},
	}
)

// validateBody checks that the body is a JSON object carrying every
// required field with the right JSON type, reporting the first failure
func validateBody(body []byte, fields []requiredField) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, garage.NewValidationError("body", "request body is not valid JSON")
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return gjson.Result{}, garage.NewValidationError("body", "request body must be a JSON object")
	}

	for _, field := range fields {
		value := doc.Get(field.name)
		if !value.Exists() || value.Type == gjson.Null {
			return gjson.Result{}, garage.NewValidationError(field.name, field.name+" is required")
		}
		switch field.kind {
		case integerField:
			if value.Type != gjson.Number || value.Num != math.Trunc(value.Num) {
				return gjson.Result{}, garage.NewValidationError(field.name, field.name+" must be an integer")
			}
		case stringField:
			if value.Type != gjson.String {
				return gjson.Result{}, garage.NewValidationError(field.name, field.name+" must be a string")
			}
		}
	}
	return doc, nil
}

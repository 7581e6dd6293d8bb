// Package snapshot converts garage documents to and from the capacity model.
//
// Documents are JSON objects keyed by level, row and spot ID. Key order is
// significant: levels and rows are searched in document order, so decoding
// walks the raw bytes with gjson instead of unmarshalling into maps.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/andrescamacho/parking-garage/internal/domain/garage"
)

const (
	fieldName        = "name"
	fieldLevels      = "levels"
	fieldRows        = "rows"
	fieldSpots       = "spots"
	fieldSpotType    = "spot_type"
	fieldVehicle     = "vehicle"
	fieldVehicleID   = "vehicle_id"
	fieldVehicleType = "vehicle_type"
)

// Decode parses a garage document into a validated capacity model. Derived
// fields that may be present in the document are ignored.
func Decode(data []byte) (*garage.Garage, error) {
	if !gjson.ValidBytes(data) {
		return nil, garage.NewInvalidSnapshotError("document is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, garage.NewInvalidSnapshotError("document must be a JSON object")
	}

	name := root.Get(fieldName)
	if name.Type != gjson.String {
		return nil, garage.NewInvalidSnapshotError("%q must be a string", fieldName)
	}
	levels := root.Get(fieldLevels)
	if !levels.IsObject() {
		return nil, garage.NewInvalidSnapshotError("%q must be an object", fieldLevels)
	}

	g := garage.NewGarage(name.String())
	var err error
	levels.ForEach(func(key, value gjson.Result) bool {
		err = decodeLevel(g, key.String(), value)
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func decodeLevel(g *garage.Garage, levelID string, value gjson.Result) error {
	rows := value.Get(fieldRows)
	if !value.IsObject() || !rows.IsObject() {
		return garage.NewInvalidSnapshotError("level %q must hold a %q object", levelID, fieldRows)
	}
	level, err := g.AddLevel(levelID)
	if err != nil {
		return err
	}

	rows.ForEach(func(key, value gjson.Result) bool {
		err = decodeRow(level, key.String(), value)
		return err == nil
	})
	return err
}

func decodeRow(level *garage.Level, rowID string, value gjson.Result) error {
	spots := value.Get(fieldSpots)
	if !value.IsObject() || !spots.IsObject() {
		return garage.NewInvalidSnapshotError("row %q on level %q must hold a %q object", rowID, level.ID, fieldSpots)
	}
	row, err := level.AddRow(rowID)
	if err != nil {
		return err
	}

	spots.ForEach(func(key, value gjson.Result) bool {
		err = decodeSpot(row, key.String(), value)
		return err == nil
	})
	return err
}

func decodeSpot(row *garage.Row, spotID string, value gjson.Result) error {
	if !value.IsObject() {
		return garage.NewInvalidSnapshotError("spot %q must be an object", spotID)
	}

	code, err := integerField(value, fieldSpotType)
	if err != nil {
		return garage.NewInvalidSnapshotError("spot %q: %v", spotID, err)
	}
	spotType, err := garage.ParseSpotType(code)
	if err != nil {
		return garage.NewInvalidSnapshotError("spot %q: %v", spotID, err)
	}

	vehicle, err := decodeVehicle(value.Get(fieldVehicle))
	if err != nil {
		return garage.NewInvalidSnapshotError("spot %q: %v", spotID, err)
	}

	_, err = row.AddSpot(spotID, spotType, vehicle)
	return err
}

// decodeVehicle returns nil for the empty-occupant marker {}
func decodeVehicle(value gjson.Result) (*garage.Vehicle, error) {
	if !value.IsObject() {
		return nil, fmt.Errorf("%q must be an object", fieldVehicle)
	}
	if len(value.Map()) == 0 {
		return nil, nil
	}

	id := value.Get(fieldVehicleID)
	if id.Type != gjson.String {
		return nil, fmt.Errorf("%q must be a string", fieldVehicleID)
	}
	code, err := integerField(value, fieldVehicleType)
	if err != nil {
		return nil, err
	}
	vehicleType, err := garage.ParseVehicleType(code)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle type: %d", code)
	}
	return &garage.Vehicle{ID: id.String(), Type: vehicleType}, nil
}

func integerField(obj gjson.Result, field string) (int, error) {
	value := obj.Get(field)
	if value.Type != gjson.Number || float64(value.Int()) != value.Num {
		return 0, fmt.Errorf("%q must be an integer", field)
	}
	return int(value.Int()), nil
}

// Encode renders the capacity model as an indented garage document. Levels,
// rows and spots keep their model order and no derived field is written.
func Encode(g *garage.Garage) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"name":`)
	writeString(&buf, g.Name)
	buf.WriteString(`,"levels":{`)
	for i, level := range g.Levels() {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(&buf, level.ID)
		buf.WriteString(`:{"rows":{`)
		for j, row := range level.Rows() {
			if j > 0 {
				buf.WriteByte(',')
			}
			writeString(&buf, row.ID)
			buf.WriteString(`:{"spots":{`)
			for k, spot := range row.Spots() {
				if k > 0 {
					buf.WriteByte(',')
				}
				encodeSpot(&buf, spot)
			}
			buf.WriteString(`}}`)
		}
		buf.WriteString(`}}`)
	}
	buf.WriteString(`}}`)

	out := buf.Bytes()
	if !gjson.ValidBytes(out) {
		return nil, garage.NewInvalidSnapshotError("encoded document is not valid JSON")
	}
	return pretty.PrettyOptions(out, &pretty.Options{Width: 80, Indent: "  "}), nil
}

func encodeSpot(buf *bytes.Buffer, spot *garage.Spot) {
	writeString(buf, spot.ID)
	buf.WriteString(`:{"spot_type":`)
	buf.WriteString(strconv.Itoa(spot.Type.Code()))
	buf.WriteString(`,"vehicle":`)
	if spot.Vehicle == nil {
		buf.WriteString(`{}`)
	} else {
		buf.WriteString(`{"vehicle_id":`)
		writeString(buf, spot.Vehicle.ID)
		buf.WriteString(`,"vehicle_type":`)
		buf.WriteString(strconv.Itoa(spot.Vehicle.Type.Code()))
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
}

func writeString(buf *bytes.Buffer, s string) {
	quoted, _ := json.Marshal(s)
	buf.Write(quoted)
}

package garage

import (
	"strconv"
	"strings"
)

const maxSpotRange = 1024

// Location is a transient view of one level, one row and an ordered list of
// spots in that row. It is the unit of a single park or exit operation.
// The zero value means "no location available".
type Location struct {
	Level *Level
	Row   *Row
	Spots []*Spot
}

// IsEmpty reports whether the location has no spots bound
func (l Location) IsEmpty() bool {
	return len(l.Spots) == 0
}

// SpotIDs returns the IDs of the bound spots in order
func (l Location) SpotIDs() []string {
	ids := make([]string, len(l.Spots))
	for i, spot := range l.Spots {
		ids[i] = spot.ID
	}
	return ids
}

// SpotID returns the external identifier of the location's spots
func (l Location) SpotID() string {
	return FormatSpotID(l.Spots)
}

// SpotType returns the type of the first bound spot
func (l Location) SpotType() SpotType {
	if l.IsEmpty() {
		return 0
	}
	return l.Spots[0].Type
}

// Occupant returns the vehicle in the location's first spot, or nil
func (l Location) Occupant() *Vehicle {
	if l.IsEmpty() {
		return nil
	}
	return l.Spots[0].Vehicle
}

// FormatSpotID encodes spots as "first-last" when they form a contiguous
// ascending run, a comma separated list when they do not, and the bare ID
// for a single spot.
func FormatSpotID(spots []*Spot) string {
	switch len(spots) {
	case 0:
		return ""
	case 1:
		return spots[0].ID
	}

	contiguous := true
	for i := 1; i < len(spots); i++ {
		if spots[i].Number != spots[i-1].Number+1 {
			contiguous = false
			break
		}
	}
	if contiguous {
		return spots[0].ID + "-" + spots[len(spots)-1].ID
	}

	ids := make([]string, len(spots))
	for i, spot := range spots {
		ids[i] = spot.ID
	}
	return strings.Join(ids, ",")
}

// DecoupleSpotID expands an external spot identifier into explicit IDs.
// "7-11" expands to 7 through 11, "3,5" to both IDs and "3" to itself.
func DecoupleSpotID(spotID string) ([]string, error) {
	spotID = strings.TrimSpace(spotID)
	if spotID == "" {
		return nil, NewValidationError("spot_id", "spot_id must not be empty")
	}

	if strings.Contains(spotID, ",") {
		parts := strings.Split(spotID, ",")
		ids := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if _, err := ParseID(part); err != nil {
				return nil, NewValidationError("spot_id", "spot_id list entry "+strconv.Quote(part)+" is "+err.Error())
			}
			ids = append(ids, part)
		}
		return ids, nil
	}

	if !strings.Contains(spotID, "-") {
		return []string{spotID}, nil
	}

	bounds := strings.Split(spotID, "-")
	if len(bounds) != 2 {
		return nil, NewValidationError("spot_id", "spot_id range must be first-last")
	}
	first, err := ParseID(bounds[0])
	if err != nil {
		return nil, NewValidationError("spot_id", "spot_id range start is "+err.Error())
	}
	last, err := ParseID(bounds[1])
	if err != nil {
		return nil, NewValidationError("spot_id", "spot_id range end is "+err.Error())
	}
	if last < first {
		return nil, NewValidationError("spot_id", "spot_id range end precedes its start")
	}
	if last-first >= maxSpotRange {
		return nil, NewValidationError("spot_id", "spot_id range is too wide")
	}

	ids := make([]string, 0, last-first+1)
	for n := first; n <= last; n++ {
		ids = append(ids, strconv.Itoa(n))
	}
	return ids, nil
}

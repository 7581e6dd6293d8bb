package garage

// FindLocation runs the greedy search for the first row that holds enough
// empty spots compatible with the vehicle type. Levels, rows and spots are
// visited in their fixed order, and matches are accumulated per row only,
// so a multi-spot vehicle never straddles two rows. An empty Location is
// returned when no row qualifies.
func (g *Garage) FindLocation(vehicleType VehicleType) Location {
	required := vehicleType.RequiredSpots()
	if required == 0 {
		return Location{}
	}

	for _, level := range g.levels {
		for _, row := range level.rows {
			found := make([]*Spot, 0, required)
			for _, spot := range row.spots {
				if !spot.IsEmpty() || !spot.Type.Accepts(vehicleType) {
					continue
				}
				found = append(found, spot)
				if len(found) == required {
					return Location{Level: level, Row: row, Spots: found}
				}
			}
		}
	}
	return Location{}
}

// ResolveLocation binds an external level/row/spot reference to the
// capacity model. Spot IDs in the range that do not exist in the row are
// skipped; at least one must resolve.
func (g *Garage) ResolveLocation(levelID, rowID, spotID string) (Location, error) {
	spotIDs, err := DecoupleSpotID(spotID)
	if err != nil {
		return Location{}, err
	}

	level, ok := g.Level(levelID)
	if !ok {
		return Location{}, NewInvalidLevelIDError(levelID)
	}
	row, ok := level.Row(rowID)
	if !ok {
		return Location{}, NewInvalidRowIDError(levelID, rowID)
	}

	spots := make([]*Spot, 0, len(spotIDs))
	for _, id := range spotIDs {
		if spot, ok := row.Spot(id); ok {
			spots = append(spots, spot)
		}
	}
	if len(spots) == 0 {
		return Location{}, NewInvalidSpotIDError(spotID)
	}
	return Location{Level: level, Row: row, Spots: spots}, nil
}

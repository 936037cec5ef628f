package view

import (
	"er-finder/internal/domain/entity"
	"er-finder/internal/geo"
)

// Nearest returns the hospital with minimum distance to the reference
// location, or nil for an empty directory. Exact distance ties resolve to
// the first hospital in input order, so the result is deterministic.
func Nearest(directory []entity.Hospital, reference entity.Location) *entity.Hospital {
	var best *entity.Hospital
	var bestDistance float64

	for i := range directory {
		distance := geo.Distance(
			reference.Latitude, reference.Longitude,
			directory[i].Latitude, directory[i].Longitude,
		)
		if best == nil || distance < bestDistance {
			best = &directory[i]
			bestDistance = distance
		}
	}

	if best == nil {
		return nil
	}
	h := *best
	return &h
}

package view

import (
	"er-finder/internal/domain/entity"
	"er-finder/internal/geo"
)

// Apply derives the displayed subset of the directory for the given filter
// configuration. Pure with respect to its inputs: the output is a subset of
// directory in the same relative order.
//
// The ICU and radius filters combine conjunctively. The radius stage needs
// a reference location; when none is set the stage is skipped rather than
// treated as an error, the caller is responsible for acquiring one first.
func Apply(directory []entity.Hospital, cfg entity.FilterConfig, radiusMeters float64) []entity.Hospital {
	filtered := directory

	if cfg.ICUOnly {
		kept := make([]entity.Hospital, 0, len(filtered))
		for _, h := range filtered {
			if h.HasICU() {
				kept = append(kept, h)
			}
		}
		filtered = kept
	}

	if cfg.RadiusEnabled && cfg.Reference != nil {
		ref := *cfg.Reference
		kept := make([]entity.Hospital, 0, len(filtered))
		for _, h := range filtered {
			distance := geo.Distance(ref.Latitude, ref.Longitude, h.Latitude, h.Longitude)
			if distance <= radiusMeters {
				kept = append(kept, h)
			}
		}
		filtered = kept
	}

	return filtered
}

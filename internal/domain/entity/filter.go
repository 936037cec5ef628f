package entity

// Location is a reference coordinate, GPS-derived or manually picked.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FilterConfig holds the user's current filter toggles. Reference is the
// origin for distance-based filtering; nil while no location is known.
type FilterConfig struct {
	ICUOnly       bool
	RadiusEnabled bool
	Reference     *Location
}

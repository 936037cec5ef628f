package dto

// Request DTOs

type LocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	// Source distinguishes a device GPS fix from a manual map pick.
	Source string `json:"source" validate:"omitempty,oneof=gps manual"`
}

// Response DTOs

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CameraResponse struct {
	Center LocationResponse `json:"center"`
	Zoom   float64          `json:"zoom"`
}

type FilterStateResponse struct {
	ICUOnly       bool `json:"icu_only"`
	RadiusEnabled bool `json:"radius_enabled"`
}

type SessionStateResponse struct {
	Mode       string              `json:"mode"`
	Camera     CameraResponse      `json:"camera"`
	Filters    FilterStateResponse `json:"filters"`
	Reference  *LocationResponse   `json:"reference,omitempty"`
	Markers    []HospitalResponse  `json:"markers"`
	SelectedID string              `json:"selected_id,omitempty"`
}

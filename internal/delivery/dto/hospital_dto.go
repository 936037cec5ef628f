package dto

import "time"

// Request DTOs

type PhotoPayload struct {
	URL     string `json:"url" validate:"required,url"`
	Caption string `json:"caption"`
}

// SaveHospitalRequest carries the whole record; updates replace the stored
// record wholesale.
type SaveHospitalRequest struct {
	Name          string         `json:"name" validate:"required"`
	Address       string         `json:"address"`
	Latitude      float64        `json:"latitude" validate:"latitude"`
	Longitude     float64        `json:"longitude" validate:"longitude"`
	Phone         string         `json:"phone"`
	Type          string         `json:"type"`
	BedsTotal     int            `json:"beds_total" validate:"gte=0"`
	BedsAvailable int            `json:"beds_available" validate:"gte=0"`
	ICUAvailable  int            `json:"icu_available" validate:"gte=0"`
	ERQueue       int            `json:"er_queue" validate:"gte=0"`
	City          string         `json:"city"`
	Province      string         `json:"province"`
	Photos        []PhotoPayload `json:"photos" validate:"dive"`
}

// Response DTOs

type HospitalResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	Phone         string          `json:"phone"`
	Type          string          `json:"type"`
	BedsTotal     int             `json:"beds_total"`
	BedsAvailable int             `json:"beds_available"`
	ICUAvailable  int             `json:"icu_available"`
	HasICU        bool            `json:"has_icu"`
	ERQueue       int             `json:"er_queue"`
	City          string          `json:"city"`
	Province      string          `json:"province"`
	Photos        []PhotoPayload  `json:"photos,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type HospitalListResponse struct {
	Hospitals []HospitalResponse `json:"hospitals"`
	Total     int                `json:"total"`
}

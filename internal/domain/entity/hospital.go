package entity

import "time"

// Photo is a single entry of a hospital's photo gallery.
type Photo struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Hospital represents an emergency-room hospital record in the directory.
type Hospital struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Address       string    `gorm:"type:text;not null;default:''" json:"address"`
	Latitude      float64   `gorm:"not null;default:0" json:"latitude"`
	Longitude     float64   `gorm:"not null;default:0" json:"longitude"`
	Phone         string    `gorm:"type:varchar(32);not null;default:''" json:"phone"`
	Type          string    `gorm:"type:varchar(64);not null;default:''" json:"type"`
	BedsTotal     int       `gorm:"not null;default:0" json:"beds_total"`
	BedsAvailable int       `gorm:"not null;default:0" json:"beds_available"`
	ICUAvailable  int       `gorm:"not null;default:0" json:"icu_available"`
	ERQueue       int       `gorm:"not null;default:0" json:"er_queue"`
	City          string    `gorm:"type:varchar(128);not null;default:''" json:"city"`
	Province      string    `gorm:"type:varchar(128);not null;default:''" json:"province"`
	Photos        []Photo   `gorm:"type:jsonb;serializer:json" json:"photos"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Hospital) TableName() string {
	return "hospitals"
}

// HasICU reports whether the hospital currently has ICU capacity.
func (h *Hospital) HasICU() bool {
	return h.ICUAvailable > 0
}

package entity

import "strings"

// RegistrationStatus represents the status of an ER registration
type RegistrationStatus string

const (
	RegistrationStatusWaiting   RegistrationStatus = "waiting"
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusCompleted RegistrationStatus = "completed"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

// bookingCodeLength is the number of trailing key characters shown to the
// user as a human-readable booking code.
const bookingCodeLength = 6

// Registration represents an ER booking submitted from a device.
// HospitalID is a plain reference into the directory and is deliberately
// not validated against it.
type Registration struct {
	ID           string             `gorm:"type:uuid;primaryKey" json:"id"`
	DeviceUserID string             `gorm:"type:uuid;not null;index" json:"device_user_id"`
	HospitalID   string             `gorm:"type:uuid;not null" json:"hospital_id"`
	PatientName  string             `gorm:"type:varchar(255);not null" json:"patient_name"`
	NationalID   string             `gorm:"type:char(16);not null" json:"national_id"`
	Phone        string             `gorm:"type:varchar(32);not null" json:"phone"`
	Gender       string             `gorm:"type:varchar(16);not null" json:"gender"`
	Status       RegistrationStatus `gorm:"type:registration_status;not null;default:'waiting';index" json:"status"`
	Note         string             `gorm:"type:text;not null" json:"note"`
	CreatedAt    int64              `gorm:"autoCreateTime:milli" json:"created_at"`
}

func (Registration) TableName() string {
	return "registrations"
}

// BookingCode returns the short code shown to the user: the last six
// characters of the registration key, upper-cased.
func (r *Registration) BookingCode() string {
	id := r.ID
	if len(id) > bookingCodeLength {
		id = id[len(id)-bookingCodeLength:]
	}
	return strings.ToUpper(id)
}

// IsWaiting checks if the registration has not been processed yet
func (r *Registration) IsWaiting() bool {
	return r.Status == RegistrationStatusWaiting
}

// IsTerminal checks if the registration reached a final status
func (r *Registration) IsTerminal() bool {
	return r.Status == RegistrationStatusCompleted || r.Status == RegistrationStatusCancelled
}

// CanTransitionTo reports whether the dashboard actor may move the
// registration from its current status to next.
// waiting -> confirmed | cancelled, confirmed -> completed | cancelled;
// completed and cancelled are terminal.
func (r *Registration) CanTransitionTo(next RegistrationStatus) bool {
	switch r.Status {
	case RegistrationStatusWaiting:
		return next == RegistrationStatusConfirmed || next == RegistrationStatusCancelled
	case RegistrationStatusConfirmed:
		return next == RegistrationStatusCompleted || next == RegistrationStatusCancelled
	default:
		return false
	}
}

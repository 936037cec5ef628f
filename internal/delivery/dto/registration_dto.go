package dto

// Request DTOs

// CreateRegistrationRequest is the ER booking form. Field order matters:
// validation reports the first violation, top to bottom.
type CreateRegistrationRequest struct {
	HospitalID  string `json:"hospital_id" validate:"required"`
	PatientName string `json:"patient_name" validate:"required"`
	NationalID  string `json:"national_id" validate:"required,len=16"`
	Phone       string `json:"phone" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=male female"`
	Note        string `json:"note" validate:"required"`
}

type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
}

// Response DTOs

type RegistrationResponse struct {
	ID          string `json:"id"`
	BookingCode string `json:"booking_code"`
	HospitalID  string `json:"hospital_id"`
	PatientName string `json:"patient_name"`
	NationalID  string `json:"national_id"`
	Phone       string `json:"phone"`
	Gender      string `json:"gender"`
	Status      string `json:"status"`
	Note        string `json:"note"`
	CreatedAt   int64  `json:"created_at"`
}

// BookingStatusResponse is one row of the booking status screen: the
// registration plus the resolved hospital display name.
type BookingStatusResponse struct {
	RegistrationResponse
	HospitalName string `json:"hospital_name"`
}

type BookingStatusListResponse struct {
	Bookings []BookingStatusResponse `json:"bookings"`
	Total    int                     `json:"total"`
}

package converter

import (
	"er-finder/internal/delivery/dto"
	"er-finder/internal/domain/entity"
)

// RegistrationToResponse converts a Registration entity to RegistrationResponse DTO
func RegistrationToResponse(registration *entity.Registration) *dto.RegistrationResponse {
	if registration == nil {
		return nil
	}

	return &dto.RegistrationResponse{
		ID:          registration.ID,
		BookingCode: registration.BookingCode(),
		HospitalID:  registration.HospitalID,
		PatientName: registration.PatientName,
		NationalID:  registration.NationalID,
		Phone:       registration.Phone,
		Gender:      registration.Gender,
		Status:      string(registration.Status),
		Note:        registration.Note,
		CreatedAt:   registration.CreatedAt,
	}
}

// RegistrationToBookingStatus pairs a registration with its resolved
// hospital display name.
func RegistrationToBookingStatus(registration *entity.Registration, hospitalName string) dto.BookingStatusResponse {
	return dto.BookingStatusResponse{
		RegistrationResponse: *RegistrationToResponse(registration),
		HospitalName:         hospitalName,
	}
}

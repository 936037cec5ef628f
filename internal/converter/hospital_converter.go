package converter

import (
	"er-finder/internal/delivery/dto"
	"er-finder/internal/domain/entity"
)

// HospitalToResponse converts a Hospital entity to HospitalResponse DTO
func HospitalToResponse(hospital *entity.Hospital) *dto.HospitalResponse {
	if hospital == nil {
		return nil
	}

	var photos []dto.PhotoPayload
	for _, p := range hospital.Photos {
		photos = append(photos, dto.PhotoPayload{URL: p.URL, Caption: p.Caption})
	}

	return &dto.HospitalResponse{
		ID:            hospital.ID,
		Name:          hospital.Name,
		Address:       hospital.Address,
		Latitude:      hospital.Latitude,
		Longitude:     hospital.Longitude,
		Phone:         hospital.Phone,
		Type:          hospital.Type,
		BedsTotal:     hospital.BedsTotal,
		BedsAvailable: hospital.BedsAvailable,
		ICUAvailable:  hospital.ICUAvailable,
		HasICU:        hospital.HasICU(),
		ERQueue:       hospital.ERQueue,
		City:          hospital.City,
		Province:      hospital.Province,
		Photos:        photos,
		CreatedAt:     hospital.CreatedAt,
		UpdatedAt:     hospital.UpdatedAt,
	}
}

// HospitalsToResponses converts a slice of Hospital entities to slice of HospitalResponse DTOs
func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, len(hospitals))
	for i, hospital := range hospitals {
		resp := HospitalToResponse(&hospital)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

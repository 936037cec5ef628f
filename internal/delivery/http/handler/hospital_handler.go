package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"er-finder/internal/delivery/dto"
	"er-finder/internal/domain/entity"
	"er-finder/internal/usecase"
	"er-finder/pkg/response"
	"er-finder/pkg/validator"

	"github.com/gorilla/mux"
)

type HospitalHandler struct {
	hospitalUsecase usecase.HospitalUsecase
	validator       *validator.CustomValidator
}

func NewHospitalHandler(hospitalUsecase usecase.HospitalUsecase, validator *validator.CustomValidator) *HospitalHandler {
	return &HospitalHandler{
		hospitalUsecase: hospitalUsecase,
		validator:       validator,
	}
}

// ListHospitals serves the filtered directory. Query params mirror the
// filter toggles: icu_only, radius, and the reference lat/lon.
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	cfg, err := filterConfigFromQuery(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid filter parameters", nil)
		return
	}

	hospitals, err := h.hospitalUsecase.List(r.Context(), cfg)
	if err != nil {
		response.InternalServerError(w, "Failed to list hospitals")
		return
	}

	response.Success(w, http.StatusOK, "Hospitals retrieved successfully", hospitals)
}

func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	hospital, err := h.hospitalUsecase.Get(r.Context(), vars["id"])
	if err != nil {
		switch err {
		case usecase.ErrHospitalNotFound:
			response.NotFound(w, "Hospital not found")
		default:
			response.InternalServerError(w, "Failed to get hospital")
		}
		return
	}

	response.Success(w, http.StatusOK, "Hospital retrieved successfully", hospital)
}

func (h *HospitalHandler) NearestHospital(w http.ResponseWriter, r *http.Request) {
	reference, ok := locationFromQuery(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "lat and lon query parameters are required", nil)
		return
	}

	hospital, err := h.hospitalUsecase.Nearest(r.Context(), reference)
	if err != nil {
		switch err {
		case usecase.ErrNoHospitals:
			response.NotFound(w, "No hospitals available")
		default:
			response.InternalServerError(w, "Failed to resolve nearest hospital")
		}
		return
	}

	response.Success(w, http.StatusOK, "Nearest hospital resolved", hospital)
}

func (h *HospitalHandler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hospital, err := h.hospitalUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create hospital")
		return
	}

	response.Success(w, http.StatusCreated, "Hospital created successfully", hospital)
}

func (h *HospitalHandler) UpdateHospital(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.SaveHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hospital, err := h.hospitalUsecase.Update(r.Context(), vars["id"], &req)
	if err != nil {
		switch err {
		case usecase.ErrHospitalNotFound:
			response.NotFound(w, "Hospital not found")
		default:
			response.InternalServerError(w, "Failed to update hospital")
		}
		return
	}

	response.Success(w, http.StatusOK, "Hospital updated successfully", hospital)
}

func (h *HospitalHandler) DeleteHospital(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.hospitalUsecase.Delete(r.Context(), vars["id"]); err != nil {
		switch err {
		case usecase.ErrHospitalNotFound:
			response.NotFound(w, "Hospital not found")
		default:
			response.InternalServerError(w, "Failed to delete hospital")
		}
		return
	}

	response.Success(w, http.StatusOK, "Hospital deleted successfully", nil)
}

func filterConfigFromQuery(r *http.Request) (entity.FilterConfig, error) {
	query := r.URL.Query()

	cfg := entity.FilterConfig{
		ICUOnly:       query.Get("icu_only") == "true",
		RadiusEnabled: query.Get("radius") == "true",
	}

	if loc, ok := locationFromQuery(r); ok {
		cfg.Reference = &loc
	} else if query.Get("lat") != "" || query.Get("lon") != "" {
		return cfg, strconv.ErrSyntax
	}

	return cfg, nil
}

func locationFromQuery(r *http.Request) (entity.Location, bool) {
	query := r.URL.Query()

	lat, latErr := strconv.ParseFloat(query.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(query.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		return entity.Location{}, false
	}
	return entity.Location{Latitude: lat, Longitude: lon}, true
}

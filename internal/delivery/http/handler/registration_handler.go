package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"er-finder/internal/delivery/dto"
	"er-finder/internal/delivery/http/middleware"
	"er-finder/internal/domain/entity"
	"er-finder/internal/usecase"
	"er-finder/pkg/response"
	"er-finder/pkg/validator"

	"github.com/gorilla/mux"
)

// LedgerSource is the subscription end of the registration feed, used by
// the live booking-status watch.
type LedgerSource interface {
	Subscribe() (<-chan []entity.Registration, func())
}

type RegistrationHandler struct {
	registrationUsecase usecase.RegistrationUsecase
	statusUsecase       usecase.BookingStatusUsecase
	ledgerSource        LedgerSource
	validator           *validator.CustomValidator
}

func NewRegistrationHandler(
	registrationUsecase usecase.RegistrationUsecase,
	statusUsecase usecase.BookingStatusUsecase,
	ledgerSource LedgerSource,
	validator *validator.CustomValidator,
) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUsecase: registrationUsecase,
		statusUsecase:       statusUsecase,
		ledgerSource:        ledgerSource,
		validator:           validator,
	}
}

func (h *RegistrationHandler) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := middleware.GetDeviceIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusBadRequest, "Device not identified", nil)
		return
	}

	var req dto.CreateRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	registration, err := h.registrationUsecase.Submit(r.Context(), deviceID, &req)
	if err != nil {
		var validationErr *usecase.ValidationError
		if errors.As(err, &validationErr) {
			response.ValidationError(w, map[string]string{validationErr.Field: validationErr.Message})
			return
		}
		// The form stays with the client for a manual retry.
		response.InternalServerError(w, "Failed to submit registration")
		return
	}

	response.Success(w, http.StatusCreated, "Registration submitted successfully", registration)
}

func (h *RegistrationHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := middleware.GetDeviceIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusBadRequest, "Device not identified", nil)
		return
	}

	bookings, err := h.statusUsecase.MyBookings(r.Context(), deviceID)
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// WatchMyBookings streams the device's booking list as server-sent events:
// one event for the current state, then one per ledger change.
func (h *RegistrationHandler) WatchMyBookings(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := middleware.GetDeviceIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusBadRequest, "Device not identified", nil)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.Error(w, http.StatusNotImplemented, "Streaming unsupported", nil)
		return
	}

	snapshots, cancel := h.ledgerSource.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snapshot, open := <-snapshots:
			if !open {
				return
			}
			bookings := h.statusUsecase.Project(r.Context(), deviceID, snapshot)
			payload, err := json.Marshal(bookings)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func (h *RegistrationHandler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.registrationUsecase.Cancel(r.Context(), vars["id"]); err != nil {
		switch err {
		case usecase.ErrRegistrationNotFound:
			response.NotFound(w, "Registration not found")
		default:
			response.InternalServerError(w, "Failed to cancel registration")
		}
		return
	}

	response.Success(w, http.StatusOK, "Registration cancelled successfully", nil)
}

// UpdateRegistrationStatus is the dashboard-actor transition endpoint.
func (h *RegistrationHandler) UpdateRegistrationStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.UpdateRegistrationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err := h.registrationUsecase.UpdateStatus(r.Context(), vars["id"], entity.RegistrationStatus(req.Status))
	if err != nil {
		switch err {
		case usecase.ErrRegistrationNotFound:
			response.NotFound(w, "Registration not found")
		case usecase.ErrInvalidStatusTransition:
			response.Error(w, http.StatusConflict, "Status transition not allowed", nil)
		default:
			response.InternalServerError(w, "Failed to update registration status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Registration status updated successfully", nil)
}

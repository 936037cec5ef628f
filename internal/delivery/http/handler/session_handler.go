package handler

import (
	"encoding/json"
	"net/http"

	"er-finder/internal/converter"
	"er-finder/internal/delivery/dto"
	"er-finder/internal/delivery/http/middleware"
	"er-finder/internal/domain/entity"
	"er-finder/internal/view"
	"er-finder/pkg/response"
	"er-finder/pkg/validator"

	"github.com/gorilla/mux"
)

// SessionHandler exposes the per-device map view: filter toggles, location
// updates and the Normal/NearestOnly state machine.
type SessionHandler struct {
	sessions  *view.SessionManager
	validator *validator.CustomValidator
}

func NewSessionHandler(sessions *view.SessionManager, validator *validator.CustomValidator) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		validator: validator,
	}
}

func (h *SessionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	handle, ok := h.handle(w, r)
	if !ok {
		return
	}
	h.respondState(w, handle)
}

func (h *SessionHandler) ToggleICU(w http.ResponseWriter, r *http.Request) {
	handle, ok := h.handle(w, r)
	if !ok {
		return
	}
	handle.Session.ToggleICU()
	h.respondState(w, handle)
}

func (h *SessionHandler) ToggleRadius(w http.ResponseWriter, r *http.Request) {
	handle, ok := h.handle(w, r)
	if !ok {
		return
	}
	handle.Session.ToggleRadius(r.Context())
	h.respondState(w, handle)
}

// SetLocation records a device GPS fix or a manual map pick as the session's
// reference location.
func (h *SessionHandler) SetLocation(w http.ResponseWriter, r *http.Request) {
	handle, ok := h.handle(w, r)
	if !ok {
		return
	}

	var req dto.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	loc := entity.Location{Latitude: req.Latitude, Longitude: req.Longitude}
	handle.Location.Update(loc)
	handle.Session.SetLocation(loc)
	h.respondState(w, handle)
}

func (h *SessionHandler) FindNearest(w http.ResponseWriter, r *http.Request) {
	handle, ok := h.handle(w, r)
	if !ok {
		return
	}

	nearest, err := handle.Session.FindNearest(r.Context())
	if err != nil {
		switch err {
		case view.ErrLocationUnavailable:
			response.Error(w, http.StatusConflict, "Location not available yet, report one first", nil)
		case view.ErrDirectoryEmpty:
			response.NotFound(w, "No hospitals available")
		default:
			response.InternalServerError(w, "Failed to resolve nearest hospital")
		}
		return
	}

	response.Success(w, http.StatusOK, "Nearest hospital resolved", converter.HospitalToResponse(nearest))
}

func (h *SessionHandler) ShowAll(w http.ResponseWriter, r *http.Request) {
	handle, ok := h.handle(w, r)
	if !ok {
		return
	}
	handle.Session.ShowAll()
	h.respondState(w, handle)
}

// SelectMarker dispatches a marker selection and answers with the selected
// hospital's detail. Stale selections for markers no longer displayed are
// rejected.
func (h *SessionHandler) SelectMarker(w http.ResponseWriter, r *http.Request) {
	handle, ok := h.handle(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]

	// Board.Select already dispatches into the session via the render
	// callback; the response is resolved from the displayed list.
	if !handle.Board.Select(id) {
		response.NotFound(w, "Marker not displayed")
		return
	}

	var selected *entity.Hospital
	for _, marker := range handle.Board.Markers() {
		if marker.ID == id {
			hospital := marker
			selected = &hospital
			break
		}
	}
	if selected == nil {
		response.NotFound(w, "Hospital not found")
		return
	}

	response.Success(w, http.StatusOK, "Hospital selected", converter.HospitalToResponse(selected))
}

func (h *SessionHandler) handle(w http.ResponseWriter, r *http.Request) (*view.Handle, bool) {
	deviceID, ok := middleware.GetDeviceIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusBadRequest, "Device not identified", nil)
		return nil, false
	}
	return h.sessions.Get(deviceID), true
}

func (h *SessionHandler) respondState(w http.ResponseWriter, handle *view.Handle) {
	response.Success(w, http.StatusOK, "Session state", sessionStateToResponse(handle.Session.State()))
}

func sessionStateToResponse(state view.State) *dto.SessionStateResponse {
	resp := &dto.SessionStateResponse{
		Mode: string(state.Mode),
		Camera: dto.CameraResponse{
			Center: dto.LocationResponse{
				Latitude:  state.Camera.Center.Latitude,
				Longitude: state.Camera.Center.Longitude,
			},
			Zoom: state.Camera.Zoom,
		},
		Filters: dto.FilterStateResponse{
			ICUOnly:       state.ICUOnly,
			RadiusEnabled: state.RadiusEnabled,
		},
		Markers:    converter.HospitalsToResponses(state.Hospitals),
		SelectedID: state.SelectedID,
	}

	if state.Reference != nil {
		resp.Reference = &dto.LocationResponse{
			Latitude:  state.Reference.Latitude,
			Longitude: state.Reference.Longitude,
		}
	}

	return resp
}

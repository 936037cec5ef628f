package http

import (
	"net/http"

	"er-finder/internal/delivery/http/handler"
	"er-finder/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	hospitalHandler     *handler.HospitalHandler
	registrationHandler *handler.RegistrationHandler
	sessionHandler      *handler.SessionHandler
	deviceMiddleware    *middleware.DeviceMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	hospitalHandler *handler.HospitalHandler,
	registrationHandler *handler.RegistrationHandler,
	sessionHandler *handler.SessionHandler,
	deviceMiddleware *middleware.DeviceMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		hospitalHandler:     hospitalHandler,
		registrationHandler: registrationHandler,
		sessionHandler:      sessionHandler,
		deviceMiddleware:    deviceMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Hospital discovery (public)
	api.HandleFunc("/hospitals", r.hospitalHandler.ListHospitals).Methods(http.MethodGet)
	api.HandleFunc("/hospitals/nearest", r.hospitalHandler.NearestHospital).Methods(http.MethodGet)
	api.HandleFunc("/hospitals/{id}", r.hospitalHandler.GetHospital).Methods(http.MethodGet)

	// Registration routes (device-scoped)
	registrations := api.PathPrefix("/registrations").Subrouter()
	registrations.Use(r.deviceMiddleware.Identify)
	registrations.HandleFunc("", r.registrationHandler.CreateRegistration).Methods(http.MethodPost)
	registrations.HandleFunc("", r.registrationHandler.GetMyBookings).Methods(http.MethodGet)
	registrations.HandleFunc("/watch", r.registrationHandler.WatchMyBookings).Methods(http.MethodGet)
	registrations.HandleFunc("/{id}/cancel", r.registrationHandler.CancelRegistration).Methods(http.MethodPost)

	// Map session routes (device-scoped)
	session := api.PathPrefix("/session").Subrouter()
	session.Use(r.deviceMiddleware.Identify)
	session.HandleFunc("", r.sessionHandler.GetState).Methods(http.MethodGet)
	session.HandleFunc("/filters/icu", r.sessionHandler.ToggleICU).Methods(http.MethodPost)
	session.HandleFunc("/filters/radius", r.sessionHandler.ToggleRadius).Methods(http.MethodPost)
	session.HandleFunc("/location", r.sessionHandler.SetLocation).Methods(http.MethodPost)
	session.HandleFunc("/nearest", r.sessionHandler.FindNearest).Methods(http.MethodPost)
	session.HandleFunc("/show-all", r.sessionHandler.ShowAll).Methods(http.MethodPost)
	session.HandleFunc("/markers/{id}/select", r.sessionHandler.SelectMarker).Methods(http.MethodPost)

	// Dashboard routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/hospitals", r.hospitalHandler.CreateHospital).Methods(http.MethodPost)
	admin.HandleFunc("/hospitals/{id}", r.hospitalHandler.UpdateHospital).Methods(http.MethodPut)
	admin.HandleFunc("/hospitals/{id}", r.hospitalHandler.DeleteHospital).Methods(http.MethodDelete)
	admin.HandleFunc("/registrations/{id}/status", r.registrationHandler.UpdateRegistrationStatus).Methods(http.MethodPut)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

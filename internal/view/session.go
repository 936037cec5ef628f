package view

import (
	"context"
	"errors"
	"sync"

	"er-finder/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

var (
	ErrLocationUnavailable = errors.New("reference location unavailable")
	ErrDirectoryEmpty      = errors.New("no hospitals known yet")
)

// Mode is the session's view state.
type Mode string

const (
	// ModeNormal shows every hospital that passes the active filters.
	ModeNormal Mode = "normal"
	// ModeNearestOnly shows the single nearest hospital; the derived
	// filters are temporarily suppressed.
	ModeNearestOnly Mode = "nearest_only"
)

// Camera is the map viewport the session wants shown.
type Camera struct {
	Center entity.Location `json:"center"`
	Zoom   float64         `json:"zoom"`
}

const (
	nearestZoom = 14.5
	pickedZoom  = 12.5
)

// MarkerLayer is the opaque rendering surface. The session hands it the
// hospitals to display and a callback for selection events keyed by
// hospital identity. onSelect fires on a later user event, never from
// inside Render itself.
type MarkerLayer interface {
	Render(hospitals []entity.Hospital, onSelect func(hospitalID string))
}

// LocationProvider yields the device's last known location, which may be
// absent.
type LocationProvider interface {
	LastKnownLocation(ctx context.Context) (*entity.Location, error)
}

// Session is one device's live map view: the hospital cache fed by the
// directory subscription, the filter toggles, and the Normal/NearestOnly
// state machine. All entry points serialize on one mutex, matching the
// callback-driven single-thread model of the original flow: snapshots and
// user actions never interleave.
type Session struct {
	log          *logrus.Logger
	markers      MarkerLayer
	locations    LocationProvider
	radiusMeters float64
	home         Camera

	mu         sync.Mutex
	directory  []entity.Hospital
	cfg        entity.FilterConfig
	mode       Mode
	camera     Camera
	rendered   []entity.Hospital
	selectedID string
}

func NewSession(markers MarkerLayer, locations LocationProvider, radiusMeters float64, home Camera, log *logrus.Logger) *Session {
	return &Session{
		log:          log,
		markers:      markers,
		locations:    locations,
		radiusMeters: radiusMeters,
		home:         home,
		mode:         ModeNormal,
		camera:       home,
	}
}

// ApplySnapshot replaces the session's directory mirror with a fresh full
// snapshot and re-derives the displayed set.
func (s *Session) ApplySnapshot(hospitals []entity.Hospital) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.directory = hospitals
	s.refreshLocked()
}

// ToggleICU flips the ICU-only filter and returns the new state.
func (s *Session) ToggleICU() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.ICUOnly = !s.cfg.ICUOnly
	s.refreshLocked()
	return s.cfg.ICUOnly
}

// ToggleRadius flips the radius filter and returns the new state. Enabling
// it without a known reference location triggers an acquisition attempt;
// if that fails the filter stays enabled but the radius stage is a no-op
// until a location arrives.
func (s *Session) ToggleRadius(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.RadiusEnabled = !s.cfg.RadiusEnabled
	if s.cfg.RadiusEnabled && s.cfg.Reference == nil {
		if loc, err := s.locations.LastKnownLocation(ctx); err != nil {
			s.log.Warnf("Location acquisition failed: %+v", err)
		} else if loc != nil {
			s.cfg.Reference = loc
		}
	}

	s.refreshLocked()
	return s.cfg.RadiusEnabled
}

// SetLocation records a manually picked reference location (a map click in
// the original flow) and re-applies the filters.
func (s *Session) SetLocation(loc entity.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Reference = &loc
	s.camera = Camera{Center: loc, Zoom: pickedZoom}
	s.refreshLocked()
}

// FindNearest resolves the minimum-distance hospital and switches the view
// to NearestOnly, centering the camera on the result. Without a known
// reference location it first asks the provider for one.
func (s *Session) FindNearest(ctx context.Context) (*entity.Hospital, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.Reference == nil {
		loc, err := s.locations.LastKnownLocation(ctx)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, ErrLocationUnavailable
		}
		s.cfg.Reference = loc
	}

	nearest := Nearest(s.directory, *s.cfg.Reference)
	if nearest == nil {
		return nil, ErrDirectoryEmpty
	}

	s.mode = ModeNearestOnly
	s.camera = Camera{
		Center: entity.Location{Latitude: nearest.Latitude, Longitude: nearest.Longitude},
		Zoom:   nearestZoom,
	}
	s.refreshLocked()

	h := *nearest
	return &h, nil
}

// ShowAll leaves NearestOnly, clears both filter toggles and restores the
// default camera. The known reference location is kept.
func (s *Session) ShowAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = ModeNormal
	s.cfg.ICUOnly = false
	s.cfg.RadiusEnabled = false
	s.camera = s.home
	s.refreshLocked()
}

// Select resolves a marker selection back to its hospital. Selections for
// ids no longer present in the directory are ignored; the marker layer may
// deliver them late, after the list they were rendered from is gone.
func (s *Session) Select(hospitalID string) *entity.Hospital {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.directory {
		if s.directory[i].ID == hospitalID {
			s.selectedID = hospitalID
			h := s.directory[i]
			return &h
		}
	}
	s.log.Debugf("Ignoring selection of unknown hospital %s", hospitalID)
	return nil
}

// State is a read-only snapshot of the session's view.
type State struct {
	Mode          Mode
	Camera        Camera
	ICUOnly       bool
	RadiusEnabled bool
	Reference     *entity.Location
	Hospitals     []entity.Hospital
	SelectedID    string
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	hospitals := make([]entity.Hospital, len(s.rendered))
	copy(hospitals, s.rendered)

	var ref *entity.Location
	if s.cfg.Reference != nil {
		loc := *s.cfg.Reference
		ref = &loc
	}

	return State{
		Mode:          s.mode,
		Camera:        s.camera,
		ICUOnly:       s.cfg.ICUOnly,
		RadiusEnabled: s.cfg.RadiusEnabled,
		Reference:     ref,
		Hospitals:     hospitals,
		SelectedID:    s.selectedID,
	}
}

// refreshLocked re-derives the displayed set and renders it.
func (s *Session) refreshLocked() {
	var display []entity.Hospital

	if s.mode == ModeNearestOnly && s.cfg.Reference != nil {
		if nearest := Nearest(s.directory, *s.cfg.Reference); nearest != nil {
			display = []entity.Hospital{*nearest}
		}
	} else {
		display = Apply(s.directory, s.cfg, s.radiusMeters)
	}

	s.rendered = display
	s.markers.Render(display, func(hospitalID string) {
		s.Select(hospitalID)
	})
}

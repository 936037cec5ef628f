package view_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"er-finder/internal/domain/entity"
	"er-finder/internal/view"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var testHome = view.Camera{
	Center: entity.Location{Latitude: -7.7956, Longitude: 110.3695},
	Zoom:   11.5,
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestSession(t *testing.T) (*view.Session, *view.MarkerBoard, *view.LocationStore) {
	t.Helper()
	board := view.NewMarkerBoard()
	locations := view.NewLocationStore()
	session := view.NewSession(board, locations, testRadiusMeters, testHome, testLogger())
	return session, board, locations
}

// failingLocations always errors, standing in for a provider whose fix
// acquisition failed.
type failingLocations struct{}

func (failingLocations) LastKnownLocation(ctx context.Context) (*entity.Location, error) {
	return nil, errors.New("gps unavailable")
}

func TestSession_InitialState(t *testing.T) {
	session, _, _ := newTestSession(t)

	state := session.State()

	require.Equal(t, view.ModeNormal, state.Mode)
	require.Equal(t, testHome, state.Camera)
	require.False(t, state.ICUOnly)
	require.False(t, state.RadiusEnabled)
	require.Nil(t, state.Reference)
	require.Empty(t, state.Hospitals)
}

func TestSession_SnapshotRendersAll(t *testing.T) {
	session, board, _ := newTestSession(t)

	session.ApplySnapshot(filterFixture())

	require.Equal(t, []string{"h1", "h2", "h3"}, ids(board.Markers()))
	require.Equal(t, []string{"h1", "h2", "h3"}, ids(session.State().Hospitals))
}

func TestSession_ToggleICU(t *testing.T) {
	session, board, _ := newTestSession(t)
	session.ApplySnapshot(filterFixture())

	require.True(t, session.ToggleICU())
	require.Equal(t, []string{"h1", "h3"}, ids(board.Markers()))

	require.False(t, session.ToggleICU())
	require.Equal(t, []string{"h1", "h2", "h3"}, ids(board.Markers()))
}

func TestSession_ToggleRadiusWithoutLocationShowsAll(t *testing.T) {
	session, board, _ := newTestSession(t)
	session.ApplySnapshot(filterFixture())

	enabled := session.ToggleRadius(context.Background())

	// The filter is on but has no reference to measure from, so the
	// radius stage does not constrain the list yet.
	require.True(t, enabled)
	state := session.State()
	require.True(t, state.RadiusEnabled)
	require.Nil(t, state.Reference)
	require.Equal(t, []string{"h1", "h2", "h3"}, ids(board.Markers()))
}

func TestSession_ToggleRadiusAcquiresLocation(t *testing.T) {
	session, board, locations := newTestSession(t)
	session.ApplySnapshot(filterFixture())
	locations.Update(entity.Location{Latitude: 0, Longitude: 0})

	require.True(t, session.ToggleRadius(context.Background()))

	require.Equal(t, []string{"h1", "h2"}, ids(board.Markers()))
	require.NotNil(t, session.State().Reference)
}

func TestSession_ToggleRadiusSurvivesAcquisitionFailure(t *testing.T) {
	board := view.NewMarkerBoard()
	session := view.NewSession(board, failingLocations{}, testRadiusMeters, testHome, testLogger())
	session.ApplySnapshot(filterFixture())

	require.True(t, session.ToggleRadius(context.Background()))

	state := session.State()
	require.True(t, state.RadiusEnabled)
	require.Nil(t, state.Reference)
	require.Equal(t, []string{"h1", "h2", "h3"}, ids(board.Markers()))
}

func TestSession_SetLocationMovesCameraAndFilters(t *testing.T) {
	session, board, _ := newTestSession(t)
	session.ApplySnapshot(filterFixture())
	session.ToggleRadius(context.Background())

	picked := entity.Location{Latitude: 0, Longitude: 0}
	session.SetLocation(picked)

	state := session.State()
	require.Equal(t, picked, state.Camera.Center)
	require.Equal(t, 12.5, state.Camera.Zoom)
	require.Equal(t, &picked, state.Reference)
	require.Equal(t, []string{"h1", "h2"}, ids(board.Markers()))
}

func TestSession_FindNearestWithoutLocation(t *testing.T) {
	session, _, _ := newTestSession(t)
	session.ApplySnapshot(filterFixture())

	_, err := session.FindNearest(context.Background())

	require.ErrorIs(t, err, view.ErrLocationUnavailable)
	require.Equal(t, view.ModeNormal, session.State().Mode)
}

func TestSession_FindNearestEmptyDirectory(t *testing.T) {
	session, _, locations := newTestSession(t)
	locations.Update(entity.Location{Latitude: 0, Longitude: 0})

	_, err := session.FindNearest(context.Background())

	require.ErrorIs(t, err, view.ErrDirectoryEmpty)
}

func TestSession_FindNearestSwitchesMode(t *testing.T) {
	session, board, locations := newTestSession(t)
	session.ApplySnapshot(filterFixture())
	locations.Update(entity.Location{Latitude: 0, Longitude: 0})

	nearest, err := session.FindNearest(context.Background())

	require.NoError(t, err)
	require.Equal(t, "h1", nearest.ID)

	state := session.State()
	require.Equal(t, view.ModeNearestOnly, state.Mode)
	require.Equal(t, []string{"h1"}, ids(board.Markers()))
	require.Equal(t, nearest.Latitude, state.Camera.Center.Latitude)
	require.Equal(t, nearest.Longitude, state.Camera.Center.Longitude)
	require.Equal(t, 14.5, state.Camera.Zoom)
}

func TestSession_NearestOnlySuppressesFilters(t *testing.T) {
	session, board, locations := newTestSession(t)
	locations.Update(entity.Location{Latitude: 0, Longitude: 0})

	// The nearest hospital has no ICU; with the ICU filter active it
	// must still be shown once the view is in nearest-only mode.
	session.ApplySnapshot([]entity.Hospital{
		{ID: "no-icu", ICUAvailable: 0, Latitude: 0, Longitude: 0.01},
		{ID: "icu", ICUAvailable: 3, Latitude: 0, Longitude: 0.02},
	})
	session.ToggleICU()
	require.Equal(t, []string{"icu"}, ids(board.Markers()))

	nearest, err := session.FindNearest(context.Background())

	require.NoError(t, err)
	require.Equal(t, "no-icu", nearest.ID)
	require.Equal(t, []string{"no-icu"}, ids(board.Markers()))
}

func TestSession_SnapshotInNearestOnlyRederives(t *testing.T) {
	session, board, locations := newTestSession(t)
	locations.Update(entity.Location{Latitude: 0, Longitude: 0})
	session.ApplySnapshot(filterFixture())

	_, err := session.FindNearest(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"h1"}, ids(board.Markers()))

	// A newly opened hospital closer to the reference takes over the
	// nearest-only slot on the next snapshot.
	updated := append([]entity.Hospital{
		{ID: "h0", Latitude: 0, Longitude: 0.001},
	}, filterFixture()...)
	session.ApplySnapshot(updated)

	require.Equal(t, []string{"h0"}, ids(board.Markers()))
	require.Equal(t, view.ModeNearestOnly, session.State().Mode)
}

func TestSession_ShowAllResetsViewKeepsReference(t *testing.T) {
	session, board, locations := newTestSession(t)
	session.ApplySnapshot(filterFixture())
	locations.Update(entity.Location{Latitude: 0, Longitude: 0})

	session.ToggleICU()
	_, err := session.FindNearest(context.Background())
	require.NoError(t, err)

	session.ShowAll()

	state := session.State()
	require.Equal(t, view.ModeNormal, state.Mode)
	require.False(t, state.ICUOnly)
	require.False(t, state.RadiusEnabled)
	require.Equal(t, testHome, state.Camera)
	require.NotNil(t, state.Reference)
	require.Equal(t, []string{"h1", "h2", "h3"}, ids(board.Markers()))
}

func TestSession_SelectKnownHospital(t *testing.T) {
	session, _, _ := newTestSession(t)
	session.ApplySnapshot(filterFixture())

	got := session.Select("h2")

	require.NotNil(t, got)
	require.Equal(t, "h2", got.ID)
	require.Equal(t, "h2", session.State().SelectedID)
}

func TestSession_SelectUnknownHospitalIgnored(t *testing.T) {
	session, _, _ := newTestSession(t)
	session.ApplySnapshot(filterFixture())

	require.Nil(t, session.Select("gone"))
	require.Empty(t, session.State().SelectedID)
}

func TestSession_MarkerSelectionReachesSession(t *testing.T) {
	session, board, _ := newTestSession(t)
	session.ApplySnapshot(filterFixture())

	require.True(t, board.Select("h3"))
	require.Equal(t, "h3", session.State().SelectedID)
}

func TestSession_StaleMarkerSelectionDropped(t *testing.T) {
	session, board, _ := newTestSession(t)
	session.ApplySnapshot(filterFixture())

	// h3 disappears from the directory; a selection rendered against the
	// old list must not dispatch.
	session.ApplySnapshot(filterFixture()[:2])

	require.False(t, board.Select("h3"))
	require.Empty(t, session.State().SelectedID)
}

package view_test

import (
	"testing"

	"er-finder/internal/domain/entity"
	"er-finder/internal/view"

	"github.com/stretchr/testify/require"
)

const testRadiusMeters = 5000

// Coordinates around a reference at the origin: one degree of longitude on
// the equator is roughly 111 km, so 0.01 degrees is well inside the radius
// and 0.1 degrees well outside.
func filterFixture() []entity.Hospital {
	return []entity.Hospital{
		{ID: "h1", Name: "Central", ICUAvailable: 2, Latitude: 0, Longitude: 0.01},
		{ID: "h2", Name: "Regional", ICUAvailable: 0, Latitude: 0, Longitude: 0.02},
		{ID: "h3", Name: "Remote", ICUAvailable: 1, Latitude: 0, Longitude: 0.1},
	}
}

func ids(hospitals []entity.Hospital) []string {
	out := make([]string, len(hospitals))
	for i, h := range hospitals {
		out[i] = h.ID
	}
	return out
}

func TestApply_NoFiltersReturnsAllInOrder(t *testing.T) {
	directory := filterFixture()

	got := view.Apply(directory, entity.FilterConfig{}, testRadiusMeters)

	require.Equal(t, []string{"h1", "h2", "h3"}, ids(got))
}

func TestApply_ICUOnly(t *testing.T) {
	directory := filterFixture()

	got := view.Apply(directory, entity.FilterConfig{ICUOnly: true}, testRadiusMeters)

	require.Equal(t, []string{"h1", "h3"}, ids(got))
}

func TestApply_RadiusWithReference(t *testing.T) {
	directory := filterFixture()
	cfg := entity.FilterConfig{
		RadiusEnabled: true,
		Reference:     &entity.Location{Latitude: 0, Longitude: 0},
	}

	got := view.Apply(directory, cfg, testRadiusMeters)

	require.Equal(t, []string{"h1", "h2"}, ids(got))
}

func TestApply_RadiusWithoutReferenceIsSkipped(t *testing.T) {
	directory := filterFixture()
	cfg := entity.FilterConfig{RadiusEnabled: true}

	got := view.Apply(directory, cfg, testRadiusMeters)

	require.Equal(t, []string{"h1", "h2", "h3"}, ids(got))
}

func TestApply_FiltersCombineConjunctively(t *testing.T) {
	directory := filterFixture()
	cfg := entity.FilterConfig{
		ICUOnly:       true,
		RadiusEnabled: true,
		Reference:     &entity.Location{Latitude: 0, Longitude: 0},
	}

	// h2 has no ICU, h3 is out of range; only h1 passes both stages.
	got := view.Apply(directory, cfg, testRadiusMeters)

	require.Equal(t, []string{"h1"}, ids(got))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	directory := filterFixture()

	view.Apply(directory, entity.FilterConfig{ICUOnly: true}, testRadiusMeters)

	require.Equal(t, []string{"h1", "h2", "h3"}, ids(directory))
}

func TestApply_EmptyDirectory(t *testing.T) {
	got := view.Apply(nil, entity.FilterConfig{ICUOnly: true}, testRadiusMeters)

	require.Empty(t, got)
}

package view_test

import (
	"testing"

	"er-finder/internal/domain/entity"
	"er-finder/internal/view"

	"github.com/stretchr/testify/require"
)

func TestNearest_EmptyDirectory(t *testing.T) {
	require.Nil(t, view.Nearest(nil, entity.Location{}))
}

func TestNearest_PicksMinimumDistance(t *testing.T) {
	directory := []entity.Hospital{
		{ID: "far", Latitude: 0, Longitude: 0.5},
		{ID: "near", Latitude: 0, Longitude: 0.01},
		{ID: "mid", Latitude: 0, Longitude: 0.1},
	}

	got := view.Nearest(directory, entity.Location{Latitude: 0, Longitude: 0})

	require.NotNil(t, got)
	require.Equal(t, "near", got.ID)
}

func TestNearest_TieResolvesToFirstInOrder(t *testing.T) {
	// Both hospitals sit the same distance east and west of the reference.
	directory := []entity.Hospital{
		{ID: "east", Latitude: 0, Longitude: 0.05},
		{ID: "west", Latitude: 0, Longitude: -0.05},
	}

	got := view.Nearest(directory, entity.Location{Latitude: 0, Longitude: 0})

	require.NotNil(t, got)
	require.Equal(t, "east", got.ID)
}

func TestNearest_ReturnsCopy(t *testing.T) {
	directory := []entity.Hospital{{ID: "only", Name: "Original"}}

	got := view.Nearest(directory, entity.Location{})
	got.Name = "Mutated"

	require.Equal(t, "Original", directory[0].Name)
}

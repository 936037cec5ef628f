package geo_test

import (
	"math"
	"testing"

	"er-finder/internal/geo"

	"github.com/stretchr/testify/require"
)

func TestDistance_IdenticalCoordinatesAreZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{-7.7956, 110.3695},
		{89.9, -179.9},
	}

	for _, p := range points {
		require.Zero(t, geo.Distance(p[0], p[1], p[0], p[1]))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	d1 := geo.Distance(-7.7956, 110.3695, -6.2088, 106.8456)
	d2 := geo.Distance(-6.2088, 106.8456, -7.7956, 110.3695)

	require.Equal(t, d1, d2)
	require.Greater(t, d1, 0.0)
}

func TestDistance_OneDegreeLongitudeAtEquator(t *testing.T) {
	// One degree of longitude on the equator is roughly 111 km.
	d := geo.Distance(0, 0, 0, 1)

	require.InDelta(t, 111195, d, 200)
}

func TestDistance_NaNPropagates(t *testing.T) {
	require.True(t, math.IsNaN(geo.Distance(math.NaN(), 0, 0, 0)))
	require.True(t, math.IsNaN(geo.Distance(0, 0, 0, math.NaN())))
}

package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_Identity(t *testing.T) {
	points := []Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: -6.2, Longitude: 106.8},
		{Latitude: 51.5, Longitude: -0.12},
		{Latitude: -90, Longitude: 180},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, DistanceMeters(p, p))
	}
}

func TestDistanceMeters_Symmetry(t *testing.T) {
	a := Coordinate{Latitude: -6.1751, Longitude: 106.8650} // Jakarta
	b := Coordinate{Latitude: -7.7956, Longitude: 110.3695} // Yogyakarta
	assert.Equal(t, DistanceMeters(a, b), DistanceMeters(b, a))
}

func TestDistanceMeters_KnownDistance(t *testing.T) {
	// One degree of latitude along a meridian is roughly 111.19 km.
	a := Coordinate{Latitude: 0, Longitude: 0}
	b := Coordinate{Latitude: 1, Longitude: 0}
	assert.InDelta(t, 111195, DistanceMeters(a, b), 100)
}

func TestDistanceMeters_TriangleInequality(t *testing.T) {
	a := Coordinate{Latitude: 0, Longitude: 0}
	b := Coordinate{Latitude: 0.5, Longitude: 0.5}
	c := Coordinate{Latitude: 1, Longitude: 0}

	ac := DistanceMeters(a, c)
	abc := DistanceMeters(a, b) + DistanceMeters(b, c)
	assert.LessOrEqual(t, ac, abc+1e-6)
}

func TestCoordinate_Validate(t *testing.T) {
	cases := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"valid origin", Coordinate{0, 0}, false},
		{"valid extremes", Coordinate{-90, 180}, false},
		{"latitude too high", Coordinate{90.01, 0}, true},
		{"latitude too low", Coordinate{-90.01, 0}, true},
		{"longitude too high", Coordinate{0, 180.01}, true},
		{"longitude too low", Coordinate{0, -180.01}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.coord.Validate()
			if c.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCoordinate)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

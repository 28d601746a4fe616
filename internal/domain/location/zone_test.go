package location

import (
	"testing"

	"github.com/geoattend/geoattend-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
)

// coordinateAtMeters returns a point the given distance due north of origin.
func coordinateAtMeters(meters float64) geo.Coordinate {
	// 1 degree of latitude ~ 111194.9 meters on a 6371 km sphere
	return geo.Coordinate{Latitude: meters / 111194.9, Longitude: 0}
}

func TestClassifyZone_Boundary(t *testing.T) {
	pin := Pin{
		Coordinate:   geo.Coordinate{Latitude: 0, Longitude: 0},
		RadiusMeters: 200,
	}

	t.Run("at pin center", func(t *testing.T) {
		status := ClassifyZone(pin.Coordinate, pin)
		assert.True(t, status.InZone)
		assert.Equal(t, 0.0, status.DistanceMeters)
	})

	t.Run("just inside the radius", func(t *testing.T) {
		status := ClassifyZone(coordinateAtMeters(199.9), pin)
		assert.True(t, status.InZone)
	})

	t.Run("just outside the radius", func(t *testing.T) {
		status := ClassifyZone(coordinateAtMeters(200.5), pin)
		assert.False(t, status.InZone)
		assert.Greater(t, status.DistanceMeters, 200.0)
	})

	t.Run("far outside", func(t *testing.T) {
		status := ClassifyZone(coordinateAtMeters(500), pin)
		assert.False(t, status.InZone)
		assert.InDelta(t, 500, status.DistanceMeters, 1)
	})
}

func TestClassifyZone_ExactRadiusIsInside(t *testing.T) {
	pin := Pin{
		Coordinate: geo.Coordinate{Latitude: 0, Longitude: 0},
	}
	point := coordinateAtMeters(150)
	// Make the radius exactly the computed distance so the closed-interval
	// tie-break is what decides.
	pin.RadiusMeters = geo.DistanceMeters(point, pin.Coordinate)

	status := ClassifyZone(point, pin)
	assert.True(t, status.InZone)
}

func TestDetectTransition(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	cases := []struct {
		name string
		prev *bool
		cur  bool
		want Transition
	}{
		{"first sample inside", nil, true, Transition{Entered: true}},
		{"first sample outside", nil, false, Transition{}},
		{"stays inside", boolPtr(true), true, Transition{}},
		{"stays outside", boolPtr(false), false, Transition{}},
		{"enters zone", boolPtr(false), true, Transition{Entered: true}},
		{"exits zone", boolPtr(true), false, Transition{Exited: true}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DetectTransition(c.prev, c.cur))
		})
	}
}

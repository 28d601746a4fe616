package location

import (
	"github.com/geoattend/geoattend-backend-go/internal/pkg/geo"
)

// ZoneStatus is the result of classifying a sample against a pin.
type ZoneStatus struct {
	InZone         bool
	DistanceMeters float64
}

// Transition reports whether a zone boundary was crossed between two
// consecutive classifications.
type Transition struct {
	Entered bool
	Exited  bool
}

// ClassifyZone determines whether current lies within the pin's radius.
// A distance exactly equal to the radius counts as inside.
func ClassifyZone(current geo.Coordinate, pin Pin) ZoneStatus {
	distance := geo.DistanceMeters(current, pin.Coordinate)
	return ZoneStatus{
		InZone:         distance <= pin.RadiusMeters,
		DistanceMeters: distance,
	}
}

// DetectTransition compares the previous in-zone state with the current one.
// A nil previous state is treated as outside, so the first sample of a
// session inside the zone reports Entered.
func DetectTransition(previousInZone *bool, currentInZone bool) Transition {
	prev := false
	if previousInZone != nil {
		prev = *previousInZone
	}
	return Transition{
		Entered: !prev && currentInZone,
		Exited:  prev && !currentInZone,
	}
}

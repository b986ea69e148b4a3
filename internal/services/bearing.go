package services

import (
	"fmt"
	"math"
	"qibla-zakat-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Below this magnitude both bearing components are treated as zero.
const degenerateEpsilon = 1e-12

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// ComputeBearing returns the initial great-circle bearing from observer to target.
//
// When the two points coincide the bearing is undefined; 0° is returned
// instead of NaN. Results always fall in [0, 360).
func ComputeBearing(observer, target domain.Coordinates) (domain.Bearing, error) {
	if err := observer.Validate(); err != nil {
		return 0, fmt.Errorf("compute bearing: observer: %w", err)
	}
	if err := target.Validate(); err != nil {
		return 0, fmt.Errorf("compute bearing: target: %w", err)
	}

	if observer == target {
		return 0, nil
	}

	lat1, lon1 := observer.Radians()
	lat2, lon2 := target.Radians()
	dLon := lon2 - lon1

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	if math.Abs(x) < degenerateEpsilon && math.Abs(y) < degenerateEpsilon {
		return 0, nil
	}

	theta := math.Atan2(y, x)
	return domain.Bearing(normalizeDegrees(theta * 180 / math.Pi)), nil
}

// QiblaBearing is the bearing from observer to the Kaaba.
func QiblaBearing(observer domain.Coordinates) (domain.Bearing, error) {
	return ComputeBearing(observer, domain.Kaaba)
}

// NormalizeHeading folds a device compass heading into [0, 360).
func NormalizeHeading(heading float64) (float64, error) {
	if math.IsNaN(heading) || math.IsInf(heading, 0) {
		return 0, fmt.Errorf("normalize heading %v: %w", heading, domain.ErrInvalidHeading)
	}
	return normalizeDegrees(heading), nil
}

// DisplayRotation is how far the on-screen needle must turn so that it points
// along bearing while the device faces heading.
func DisplayRotation(bearing domain.Bearing, heading float64) (float64, error) {
	h, err := NormalizeHeading(heading)
	if err != nil {
		return 0, fmt.Errorf("display rotation: %w", err)
	}
	return normalizeDegrees(bearing.Degrees() - h), nil
}

// CompassPoint converts a bearing to its 8-point compass name.
func CompassPoint(bearing domain.Bearing) string {
	idx := int((normalizeDegrees(bearing.Degrees())+22.5)/45.0) % len(compassPoints)
	return compassPoints[idx]
}

// DistanceKm returns the haversine great-circle distance between a and b.
func DistanceKm(a, b domain.Coordinates) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}
	if err := b.Validate(); err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}

	lat1, lon1 := a.Radians()
	lat2, lon2 := b.Radians()
	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c, nil
}

func normalizeDegrees(d float64) float64 {
	v := math.Mod(math.Mod(d, 360)+360, 360)
	// Tiny negative inputs round up to exactly 360.
	if v >= 360 {
		return 0
	}
	return v
}

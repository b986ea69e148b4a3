package domain

import "math"

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Kaaba is the fixed target of every qibla calculation.
var Kaaba = Coordinates{Lat: 21.4225, Lon: 39.8262}

// Validate reports whether the coordinates lie on the globe.
// Latitude must be in [-90, 90], longitude in [-180, 180], both finite.
func (c Coordinates) Validate() error {
	if !isFinite(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return &InvalidCoordinateError{Field: "latitude", Value: c.Lat}
	}
	if !isFinite(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return &InvalidCoordinateError{Field: "longitude", Value: c.Lon}
	}
	return nil
}

// Return coordinates as [lat, lon] in radians.
func (c Coordinates) Radians() (lat, lon float64) {
	return c.Lat * math.Pi / 180, c.Lon * math.Pi / 180
}

// Bearing is a compass heading in degrees, always in [0, 360).
type Bearing float64

func (b Bearing) Degrees() float64 { return float64(b) }

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

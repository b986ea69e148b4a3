package dto

type QiblaRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	// Live device compass heading; omit when no compass is available.
	Heading *float64 `json:"heading"`
}

type CoordinatesResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type QiblaResponse struct {
	BearingDegrees  float64             `json:"bearing_degrees"`
	CompassPoint    string              `json:"compass_point"`
	DistanceKm      float64             `json:"distance_km"`
	DisplayRotation *float64            `json:"display_rotation,omitempty"`
	Heading         *float64            `json:"heading,omitempty"`
	Target          CoordinatesResponse `json:"target"`
}

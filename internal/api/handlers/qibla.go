package handlers

import (
	"net/http"
	"qibla-zakat-service/internal/api/dto"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/services"
)

// QiblaHandler computes the direction of prayer for a caller-supplied position.
type QiblaHandler struct{}

func (h *QiblaHandler) Direction(w http.ResponseWriter, r *http.Request) {
	var req dto.QiblaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		writeError(w, r, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	observer := domain.Coordinates{Lat: *req.Latitude, Lon: *req.Longitude}

	bearing, err := services.QiblaBearing(observer)
	if err != nil {
		writeDomainError(w, r, "qibla", err)
		return
	}

	distance, err := services.DistanceKm(observer, domain.Kaaba)
	if err != nil {
		writeDomainError(w, r, "qibla", err)
		return
	}

	res := dto.QiblaResponse{
		BearingDegrees: bearing.Degrees(),
		CompassPoint:   services.CompassPoint(bearing),
		DistanceKm:     distance,
		Target: dto.CoordinatesResponse{
			Latitude:  domain.Kaaba.Lat,
			Longitude: domain.Kaaba.Lon,
		},
	}

	if req.Heading != nil {
		heading, err := services.NormalizeHeading(*req.Heading)
		if err != nil {
			writeDomainError(w, r, "qibla", err)
			return
		}
		rotation, err := services.DisplayRotation(bearing, heading)
		if err != nil {
			writeDomainError(w, r, "qibla", err)
			return
		}
		res.Heading = &heading
		res.DisplayRotation = &rotation
	}

	writeJSON(w, r, http.StatusOK, res)
}

package dto

import "time"

type DhikrResponse struct {
	ID              string `json:"id"`
	Arabic          string `json:"arabic"`
	Transliteration string `json:"transliteration"`
	Translation     string `json:"translation"`
	DefaultTarget   int    `json:"default_target"`
}

type ListDhikrResponse struct {
	Dhikr []DhikrResponse `json:"dhikr"`
}

type SaveSessionRequest struct {
	DhikrID string `json:"dhikr_id"`
	Count   *int   `json:"count"`
	// Optional; defaults to the dhikr's default target.
	Target *int `json:"target"`
}

type SessionResponse struct {
	ID            string    `json:"id"`
	DhikrID       string    `json:"dhikr_id"`
	Count         int       `json:"count"`
	Target        int       `json:"target"`
	RecordedAt    time.Time `json:"recorded_at"`
	TargetReached bool      `json:"target_reached"`
}

type ListSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

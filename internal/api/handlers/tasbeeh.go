package handlers

import (
	"net/http"
	"qibla-zakat-service/internal/api/dto"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/services"
)

// TasbeehHandler serves the dhikr catalog and counter session history.
type TasbeehHandler struct {
	Service *services.TasbeehService
}

func (h *TasbeehHandler) ListDhikr(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.Service.Catalog(r.Context())
	if err != nil {
		writeDomainError(w, r, "dhikr.list", err)
		return
	}

	res := dto.ListDhikrResponse{Dhikr: make([]dto.DhikrResponse, 0, len(catalog))}
	for _, d := range catalog {
		res.Dhikr = append(res.Dhikr, dto.DhikrResponse{
			ID:              d.ID,
			Arabic:          d.Arabic,
			Transliteration: d.Transliteration,
			Translation:     d.Translation,
			DefaultTarget:   d.DefaultTarget,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *TasbeehHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Service.Recent(r.Context())
	if err != nil {
		writeDomainError(w, r, "tasbeeh.list", err)
		return
	}

	res := dto.ListSessionsResponse{Sessions: make([]dto.SessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		res.Sessions = append(res.Sessions, toSessionResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *TasbeehHandler) SaveSession(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Count == nil {
		writeError(w, r, http.StatusBadRequest, "count is required")
		return
	}

	target := 0
	if req.Target != nil {
		if *req.Target <= 0 {
			writeError(w, r, http.StatusBadRequest, "target must be positive")
			return
		}
		target = *req.Target
	}

	s, err := h.Service.Save(r.Context(), req.DhikrID, *req.Count, target)
	if err != nil {
		writeDomainError(w, r, "tasbeeh.save", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toSessionResponse(s))
}

func toSessionResponse(s domain.TasbeehSession) dto.SessionResponse {
	return dto.SessionResponse{
		ID:            s.ID.String(),
		DhikrID:       s.DhikrID,
		Count:         s.Count,
		Target:        s.Target,
		RecordedAt:    s.RecordedAt,
		TargetReached: s.TargetReached(),
	}
}

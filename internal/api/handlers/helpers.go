package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"qibla-zakat-service/internal/domain"

	"github.com/rs/zerolog"
)

// errUpstream marks failures of an external collaborator such as the price feed.
var errUpstream = errors.New("upstream unavailable")

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// writeDomainError maps calculator and validation errors to client errors,
// upstream failures to 502 and anything else to 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinate),
		errors.Is(err, domain.ErrInvalidHeading),
		errors.Is(err, domain.ErrInvalidLedgerField),
		errors.Is(err, domain.ErrUnknownKarat),
		errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrUnknownDhikr),
		errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrInvalidTarget),
		errors.Is(err, domain.ErrAmountOverflow):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, errUpstream):
		zerolog.Ctx(r.Context()).Error().Err(err).Str("op", op).Msg("upstream failed")
		writeError(w, r, http.StatusBadGateway, "price source unavailable")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("op", op).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

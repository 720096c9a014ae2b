package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"sip-planner/domain"
)

const maxBodyBytes = 1 << 20

// decodeJSONBody enforces POST, a JSON content type and a known body shape.
// It writes the error response itself and reports whether to continue.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		log.Debug().Err(err).Msg("error decoding request body")
		var perr *domain.ParameterError
		if errors.As(err, &perr) {
			http.Error(w, perr.Error(), http.StatusBadRequest)
			return false
		}
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON encodes into a buffer first so a failed encode can still send a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Msg("error writing response")
	}
}

// writeError maps rejected input to 400 and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidParameter) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Error().Err(err).Msg("request failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

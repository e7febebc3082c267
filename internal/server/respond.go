package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/skillproof/internal/assessment"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps the assessment error taxonomy onto HTTP status
// codes. Anything unrecognized is a 500 with a generic message; the
// handler logs the real error.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assessment.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, assessment.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, assessment.ErrAlreadyCompleted):
		writeError(w, http.StatusBadRequest, assessment.ErrAlreadyCompleted.Error())
	case errors.Is(err, assessment.ErrNoSkills):
		writeError(w, http.StatusBadRequest, assessment.ErrNoSkills.Error())
	case errors.Is(err, assessment.ErrUpstream):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

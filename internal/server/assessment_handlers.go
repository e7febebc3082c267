package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/abhisek/skillproof/internal/assessment"
)

type submitRequest struct {
	Answers      map[string]string       `json:"answers"`
	TrustMetrics assessment.TrustMetrics `json:"trust_metrics"`
}

// handleGenerateTest issues an assessment for the caller's resume.
func (s *Server) handleGenerateTest(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	resumeID, err := strconv.Atoi(r.URL.Query().Get("resume_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "resume_id is required")
		return
	}

	issued, err := s.issuer.Issue(r.Context(), user.ID, resumeID)
	if err != nil {
		s.log.Warn("test issuance refused",
			zap.Int("resume_id", resumeID),
			zap.Int("user_id", user.ID),
			zap.Error(err),
		)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, issued)
}

// handleSubmitTest grades a submission and returns the full breakdown.
func (s *Server) handleSubmitTest(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	testID, err := strconv.Atoi(r.URL.Query().Get("test_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "test_id is required")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := s.grader.Grade(r.Context(), user.ID, testID, req.Answers, req.TrustMetrics)
	if err != nil {
		s.log.Warn("grading refused",
			zap.Int("test_id", testID),
			zap.Int("user_id", user.ID),
			zap.Error(err),
		)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

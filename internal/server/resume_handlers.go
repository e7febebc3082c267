package server

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/abhisek/skillproof/internal/resume"
	"github.com/abhisek/skillproof/internal/store"
)

// Upload size cap, generous for a resume.
const maxUploadBytes = 10 << 20

// handleResumeUpload accepts a multipart resume upload, extracts its
// text, parses it with the LLM, and persists both the file and the
// profile. Extraction and parsing failures degrade to an empty profile
// rather than failing the upload.
func (s *Server) handleResumeUpload(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user.Role != store.RoleApplicant {
		writeError(w, http.StatusForbidden, "only applicants can upload resumes")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.log.Error("read upload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	text, err := resume.ExtractText(data, header.Header.Get("Content-Type"))
	if err != nil {
		s.log.Warn("resume text extraction failed", zap.Error(err))
		text = ""
	}

	path, err := s.files.Save(user.ID, header.Filename, data)
	if err != nil {
		s.log.Error("store resume file failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage upload failed")
		return
	}

	profile := s.parser.Parse(r.Context(), text)

	rec := &store.Resume{
		UserID:        user.ID,
		FileURL:       path,
		ParsedContent: datatypes.NewJSONType(profile),
	}
	if err := s.resumes.Create(r.Context(), rec); err != nil {
		s.log.Error("create resume failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "resume uploaded and parsed successfully",
		"resume_id":   rec.ID,
		"file_url":    rec.FileURL,
		"parsed_data": profile,
	})
}

// handleMyResume returns the caller's latest resume and whether the test
// has already been taken for it.
func (s *Server) handleMyResume(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	rec, err := s.resumes.LatestByUser(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no resume found")
		} else {
			s.log.Error("load resume failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	taken, err := s.results.ExistsForResume(r.Context(), rec.ID)
	if err != nil {
		s.log.Error("check result failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":             rec.ID,
		"file_url":       rec.FileURL,
		"parsed_content": rec.ParsedContent.Data(),
		"created_at":     rec.CreatedAt,
		"has_taken_test": taken,
	})
}

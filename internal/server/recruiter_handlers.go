package server

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/skillproof/internal/store"
)

type applicantSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	Resume *applicantResume `json:"resume"`
	Result *applicantResult `json:"test_result"`

	resumeCreated time.Time
}

type applicantResume struct {
	FileURL         string   `json:"file_url"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
}

type applicantResult struct {
	Score      float64              `json:"score"`
	TrustScore float64              `json:"trust_score"`
	CreatedAt  time.Time            `json:"created_at"`
	Details    []store.AnswerDetail `json:"details"`
}

// handleApplicants lists applicants with their latest resume and test
// result, filtered and sorted for the recruiter dashboard.
//
// Query parameters: skill (substring match against parsed skills),
// min_score (drop applicants scoring below), sort_by (date_desc,
// score_desc, exp_desc).
func (s *Server) handleApplicants(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user.Role != store.RoleRecruiter {
		writeError(w, http.StatusForbidden, "access denied, recruiter only")
		return
	}

	applicants, err := s.users.ByRole(r.Context(), store.RoleApplicant)
	if err != nil {
		s.log.Error("list applicants failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	skillFilter := strings.ToLower(r.URL.Query().Get("skill"))
	minScore, hasMinScore := parseMinScore(r.URL.Query().Get("min_score"))
	sortBy := r.URL.Query().Get("sort_by")

	summaries := []applicantSummary{}
	for _, app := range applicants {
		summary := applicantSummary{
			ID:       app.ID,
			Username: app.Username,
			Email:    app.Email,
		}

		rec, err := s.resumes.LatestByUser(r.Context(), app.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			s.log.Error("load applicant resume failed", zap.Int("user_id", app.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		var skills []string
		if rec != nil && err == nil {
			parsed := rec.ParsedContent.Data()
			skills = parsed.Skills
			summary.Resume = &applicantResume{
				FileURL:         rec.FileURL,
				Skills:          parsed.Skills,
				ExperienceYears: parsed.ExperienceYears,
			}
			summary.resumeCreated = rec.CreatedAt

			result, err := s.results.ByResume(r.Context(), rec.ID)
			if err == nil {
				summary.Result = &applicantResult{
					Score:      result.Score,
					TrustScore: result.TrustScore,
					CreatedAt:  result.CreatedAt,
					Details:    result.Details.Data(),
				}
			} else if !errors.Is(err, store.ErrNotFound) {
				s.log.Error("load applicant result failed", zap.Int("resume_id", rec.ID), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}

		if skillFilter != "" && !hasSkill(skills, skillFilter) {
			continue
		}
		if hasMinScore {
			if summary.Result == nil || summary.Result.Score < minScore {
				continue
			}
		}

		summaries = append(summaries, summary)
	}

	sortSummaries(summaries, sortBy)

	writeJSON(w, http.StatusOK, map[string]any{
		"applicants": summaries,
		"count":      len(summaries),
	})
}

func parseMinScore(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func hasSkill(skills []string, filter string) bool {
	for _, s := range skills {
		if strings.Contains(strings.ToLower(s), filter) {
			return true
		}
	}
	return false
}

func sortSummaries(summaries []applicantSummary, sortBy string) {
	switch sortBy {
	case "score_desc":
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaryScore(summaries[i]) > summaryScore(summaries[j])
		})
	case "exp_desc":
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaryExp(summaries[i]) > summaryExp(summaries[j])
		})
	default: // date_desc
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].resumeCreated.After(summaries[j].resumeCreated)
		})
	}
}

func summaryScore(s applicantSummary) float64 {
	if s.Result == nil {
		return -1
	}
	return s.Result.Score
}

func summaryExp(s applicantSummary) int {
	if s.Resume == nil {
		return -1
	}
	return s.Resume.ExperienceYears
}

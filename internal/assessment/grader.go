package assessment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/abhisek/skillproof/internal/store"
)

// Grader recomputes correctness against the persisted answer key and
// records the result. Grading is deterministic in its inputs.
type Grader struct {
	tests   store.TestRepo
	results store.ResultRepo
	log     *zap.Logger
}

// NewGrader creates a Grader.
func NewGrader(tests store.TestRepo, results store.ResultRepo, log *zap.Logger) *Grader {
	return &Grader{tests: tests, results: results, log: log}
}

// Grade scores the submitted answers for the given test and persists a
// result linked to the bank's own (user, resume) pair. The resume id is
// never taken from the caller, so a submission cannot be graded under a
// different resume than the one issued.
//
// A second submission for a resume that already has a result is refused
// with ErrAlreadyCompleted rather than appending a duplicate.
func (g *Grader) Grade(ctx context.Context, userID, testID int, answers map[string]string, trust TrustMetrics) (*Report, error) {
	bank, err := g.tests.ByID(ctx, testID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("test %d: %w", testID, ErrNotFound)
		}
		return nil, fmt.Errorf("load test: %w", err)
	}
	if bank.UserID != userID {
		return nil, fmt.Errorf("test %d: %w", testID, ErrForbidden)
	}

	graded, err := g.results.ExistsForResume(ctx, bank.ResumeID)
	if err != nil {
		return nil, fmt.Errorf("check existing result: %w", err)
	}
	if graded {
		return nil, ErrAlreadyCompleted
	}

	questions := bank.Questions.Data()
	report := score(questions, answers, trust)

	result := &store.TestResult{
		UserID:     bank.UserID,
		ResumeID:   bank.ResumeID,
		Score:      report.Score,
		TrustScore: report.TrustScore,
		Details:    datatypes.NewJSONType(report.Details),
	}
	if err := g.results.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("persist result: %w", err)
	}

	g.log.Info("test graded",
		zap.Int("test_id", testID),
		zap.Int("resume_id", bank.ResumeID),
		zap.Float64("score", report.Score),
		zap.Float64("trust_score", report.TrustScore),
		zap.Int("correct", report.CorrectCount),
		zap.Int("total", report.Total),
	)

	return report, nil
}

// score is the pure grading function. Answer keys that do not parse as
// an integer, or that fall outside the bank, are skipped silently: a
// buggy or partial client submission still produces a score. Unanswered
// questions count against the candidate by omission, because the
// denominator is always the bank's full length.
//
// Map iteration order is random, so graded entries are sorted by their
// virtual id before the details are assembled. Identical submissions
// grade to identical reports.
func score(questions []store.Question, answers map[string]string, trust TrustMetrics) *Report {
	total := len(questions)
	correct := 0

	type graded struct {
		id       int
		key      string
		selected string
	}
	entries := []graded{}
	for key, selected := range answers {
		id, err := strconv.Atoi(key)
		if err != nil || id < 0 || id >= total {
			continue
		}
		entries = append(entries, graded{id: id, key: key, selected: selected})
	}
	// Secondary key ordering keeps the total order strict even when two
	// map keys (e.g. "7" and "007") parse to the same id.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].id != entries[j].id {
			return entries[i].id < entries[j].id
		}
		return entries[i].key < entries[j].key
	})

	details := []store.AnswerDetail{}
	for _, e := range entries {
		q := questions[e.id]
		isCorrect := e.selected == q.CorrectAnswer
		if isCorrect {
			correct++
		}

		details = append(details, store.AnswerDetail{
			Question:  q.Question,
			Selected:  e.selected,
			Correct:   q.CorrectAnswer,
			IsCorrect: isCorrect,
			Skill:     q.Skill,
		})
	}

	var pct float64
	if total > 0 {
		pct = float64(correct) / float64(total) * 100
	}

	return &Report{
		Score:        pct,
		TrustScore:   trustScore(trust),
		CorrectCount: correct,
		Total:        total,
		Details:      details,
	}
}

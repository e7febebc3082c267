package assessment

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/abhisek/skillproof/internal/store"
)

// Issuer generates and issues assessments. One issuance is a single
// request-scoped unit of work; the only suspension point is the oracle
// call, which is synchronous and all-or-nothing: nothing is persisted
// unless the oracle returns a non-empty bank.
type Issuer struct {
	resumes   store.ResumeRepo
	tests     store.TestRepo
	results   store.ResultRepo
	generator QuestionGenerator
	log       *zap.Logger

	// shuffle permutes the sanitized view before it is returned.
	// Overridable in tests; presentation-only, never persisted.
	shuffle func([]SanitizedQuestion)
}

// NewIssuer creates an Issuer.
func NewIssuer(resumes store.ResumeRepo, tests store.TestRepo, results store.ResultRepo, gen QuestionGenerator, log *zap.Logger) *Issuer {
	return &Issuer{
		resumes:   resumes,
		tests:     tests,
		results:   results,
		generator: gen,
		log:       log,
		shuffle: func(qs []SanitizedQuestion) {
			rand.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
		},
	}
}

// Issue generates a question bank for the resume's skills, persists it
// with answers, and returns the sanitized shuffled view.
//
// Re-issuance is blocked only once a result exists for the resume. An
// issued-but-unsubmitted test does not block: abandoning a test and
// requesting a fresh one is allowed until a grade is recorded.
func (is *Issuer) Issue(ctx context.Context, userID, resumeID int) (*IssuedTest, error) {
	resume, err := is.resumes.ByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("resume %d: %w", resumeID, ErrNotFound)
		}
		return nil, fmt.Errorf("load resume: %w", err)
	}
	if resume.UserID != userID {
		return nil, fmt.Errorf("resume %d: %w", resumeID, ErrForbidden)
	}

	taken, err := is.results.ExistsForResume(ctx, resumeID)
	if err != nil {
		return nil, fmt.Errorf("check existing result: %w", err)
	}
	if taken {
		return nil, ErrAlreadyCompleted
	}

	skills := resume.ParsedContent.Data().Skills
	if len(skills) == 0 {
		return nil, ErrNoSkills
	}

	questions, err := is.generator.Generate(ctx, skills)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: oracle returned no questions", ErrUpstream)
	}

	bank := &store.GeneratedTest{
		UserID:    userID,
		ResumeID:  resumeID,
		Questions: datatypes.NewJSONType(questions),
	}
	if err := is.tests.Create(ctx, bank); err != nil {
		return nil, fmt.Errorf("persist question bank: %w", err)
	}

	sanitized := sanitize(questions)
	is.shuffle(sanitized)

	is.log.Info("test issued",
		zap.Int("test_id", bank.ID),
		zap.Int("resume_id", resumeID),
		zap.Int("user_id", userID),
		zap.Int("skills", len(skills)),
		zap.Int("questions", len(questions)),
	)

	return &IssuedTest{
		TestID:         bank.ID,
		Questions:      sanitized,
		TotalQuestions: len(sanitized),
	}, nil
}

// sanitize projects the answer-bearing bank onto the candidate-facing
// view. The virtual id is the original index, so grading can map shuffled
// answers back to the key.
func sanitize(questions []store.Question) []SanitizedQuestion {
	out := make([]SanitizedQuestion, len(questions))
	for i, q := range questions {
		out[i] = SanitizedQuestion{
			VirtualID: i,
			Skill:     q.Skill,
			Type:      q.Type,
			Question:  q.Question,
			Options:   q.Options,
		}
	}
	return out
}

package assessment

import "github.com/abhisek/skillproof/internal/store"

// Question type values, fixed by the oracle contract.
const (
	TypeMCQ    = "MCQ"
	TypeSyntax = "SYNTAX"
)

// Per-skill generation targets: 5 concept MCQs plus 5 syntax questions.
const (
	MCQPerSkill    = 5
	SyntaxPerSkill = 5
	// QuestionsPerSkill is the requested bank size per skill. The oracle's
	// actual output length is not enforced; only empty output is an error.
	QuestionsPerSkill = MCQPerSkill + SyntaxPerSkill
)

// SanitizedQuestion is the candidate-facing view of one bank entry.
// It is a distinct struct so the answer key structurally cannot leak:
// there is no correct-answer field to forget to strip.
type SanitizedQuestion struct {
	// VirtualID is the question's index in the bank's original order.
	// Stable across presentation shuffling; grading uses it to find the
	// answer key entry.
	VirtualID int      `json:"id"`
	Skill     string   `json:"skill"`
	Type      string   `json:"type"`
	Question  string   `json:"question"`
	Options   []string `json:"options"`
}

// IssuedTest is what the Issuer hands back to the candidate.
type IssuedTest struct {
	TestID         int                 `json:"test_id"`
	Questions      []SanitizedQuestion `json:"questions"`
	TotalQuestions int                 `json:"total_questions"`
}

// TrustMetrics is the behavioral telemetry the client self-reports for
// the test window.
type TrustMetrics struct {
	TabSwitches  int `json:"tab_switches"`
	CopyAttempts int `json:"copy_attempts"`
}

// Report is the full grading breakdown returned to the caller. Unlike
// issuance, it exposes per-question correctness: the test is over.
type Report struct {
	Score        float64              `json:"score"`
	TrustScore   float64              `json:"trust_score"`
	CorrectCount int                  `json:"correct_count"`
	Total        int                  `json:"total"`
	Details      []store.AnswerDetail `json:"details"`
}

package store

import (
	"time"

	"gorm.io/datatypes"
)

// Role values for User.Role.
const (
	RoleApplicant = "applicant"
	RoleRecruiter = "recruiter"
)

// User is an account. Applicants self-register; recruiters are
// provisioned from the CLI.
type User struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Role         string    `gorm:"size:20" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ParsedResume is the structured record the resume parser produces.
// Only Skills is consumed by the assessment core.
type ParsedResume struct {
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	Summary         string   `json:"summary"`
}

// Resume is one uploaded resume with its parsed profile.
type Resume struct {
	ID            int                                `gorm:"primaryKey" json:"id"`
	UserID        int                                `gorm:"index;not null" json:"user_id"`
	FileURL       string                             `gorm:"size:255" json:"file_url"`
	ParsedContent datatypes.JSONType[ParsedResume]   `json:"parsed_content"`
	CreatedAt     time.Time                          `json:"created_at"`
}

// Question is one entry of a generated question bank, stored verbatim
// with its answer. Never serialized to the candidate as-is.
type Question struct {
	Skill         string   `json:"skill"`
	Type          string   `json:"type"` // "MCQ" or "SYNTAX"
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// GeneratedTest is the answer-bearing question bank for one resume.
// Immutable after creation.
type GeneratedTest struct {
	ID        int                               `gorm:"primaryKey" json:"id"`
	UserID    int                               `gorm:"index;not null" json:"user_id"`
	ResumeID  int                               `gorm:"index;not null" json:"resume_id"`
	Questions datatypes.JSONType[[]Question]    `json:"questions"`
	CreatedAt time.Time                         `json:"created_at"`
}

// AnswerDetail is the per-question breakdown stored with a result.
type AnswerDetail struct {
	Question  string `json:"question"`
	Selected  string `json:"selected"`
	Correct   string `json:"correct"`
	IsCorrect bool   `json:"is_correct"`
	Skill     string `json:"skill"`
}

// TestResult records one graded attempt. Its existence per resume is the
// signal that the test has been taken.
type TestResult struct {
	ID         int                                  `gorm:"primaryKey" json:"id"`
	UserID     int                                  `gorm:"index;not null" json:"user_id"`
	ResumeID   int                                  `gorm:"index;not null" json:"resume_id"`
	Score      float64                              `json:"score"`
	TrustScore float64                              `json:"trust_score"`
	Details    datatypes.JSONType[[]AnswerDetail]   `json:"details"`
	CreatedAt  time.Time                            `json:"created_at"`
}

// LLMRequest is an event-log row recording one LLM API call.
type LLMRequest struct {
	ID           int       `gorm:"primaryKey"`
	Provider     string    `gorm:"size:50"`
	Model        string    `gorm:"size:100"`
	Purpose      string    `gorm:"size:50;index"`
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string `gorm:"type:text"`
	CreatedAt    time.Time
}

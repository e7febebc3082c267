package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by repository lookups when no row matches.
var ErrNotFound = errors.New("record not found")

// UserRepo manages user accounts.
type UserRepo interface {
	Create(ctx context.Context, u *User) error
	ByEmail(ctx context.Context, email string) (*User, error)
	ByUsername(ctx context.Context, username string) (*User, error)
	ByRole(ctx context.Context, role string) ([]User, error)
}

// ResumeRepo manages uploaded resumes.
type ResumeRepo interface {
	Create(ctx context.Context, r *Resume) error
	ByID(ctx context.Context, id int) (*Resume, error)
	// LatestByUser returns the newest resume for a user, or ErrNotFound.
	LatestByUser(ctx context.Context, userID int) (*Resume, error)
}

// TestRepo manages generated question banks.
type TestRepo interface {
	Create(ctx context.Context, t *GeneratedTest) error
	ByID(ctx context.Context, id int) (*GeneratedTest, error)
}

// ResultRepo manages graded test results.
type ResultRepo interface {
	Create(ctx context.Context, r *TestResult) error
	// ByResume returns the result for a resume, or ErrNotFound.
	ByResume(ctx context.Context, resumeID int) (*TestResult, error)
	// ExistsForResume reports whether a result has been recorded for the resume.
	ExistsForResume(ctx context.Context, resumeID int) (bool, error)
}

// LLMEventRepo appends LLM request events.
type LLMEventRepo interface {
	Append(ctx context.Context, ev *LLMRequest) error
}

type userRepo struct{ db *gorm.DB }

func (r *userRepo) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) ByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *userRepo) ByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *userRepo) ByRole(ctx context.Context, role string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).Where("role = ?", role).Find(&users).Error
	return users, err
}

type resumeRepo struct{ db *gorm.DB }

func (r *resumeRepo) Create(ctx context.Context, res *Resume) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *resumeRepo) ByID(ctx context.Context, id int) (*Resume, error) {
	var res Resume
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &res, nil
}

func (r *resumeRepo) LatestByUser(ctx context.Context, userID int) (*Resume, error) {
	var res Resume
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&res).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &res, nil
}

type testRepo struct{ db *gorm.DB }

func (r *testRepo) Create(ctx context.Context, t *GeneratedTest) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *testRepo) ByID(ctx context.Context, id int) (*GeneratedTest, error) {
	var t GeneratedTest
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

type resultRepo struct{ db *gorm.DB }

func (r *resultRepo) Create(ctx context.Context, res *TestResult) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *resultRepo) ByResume(ctx context.Context, resumeID int) (*TestResult, error) {
	var res TestResult
	if err := r.db.WithContext(ctx).Where("resume_id = ?", resumeID).First(&res).Error; err != nil {
		return nil, mapErr(err)
	}
	return &res, nil
}

func (r *resultRepo) ExistsForResume(ctx context.Context, resumeID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TestResult{}).
		Where("resume_id = ?", resumeID).
		Count(&count).Error
	return count > 0, err
}

type llmEventRepo struct{ db *gorm.DB }

func (r *llmEventRepo) Append(ctx context.Context, ev *LLMRequest) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func mapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

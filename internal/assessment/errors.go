package assessment

import "errors"

// Domain errors. The HTTP layer maps these onto status codes; the core
// only distinguishes the four classes.
var (
	// ErrNotFound: the resume or test does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden: the caller does not own the entity.
	ErrForbidden = errors.New("not authorized")

	// ErrAlreadyCompleted: a result already exists for the resume.
	ErrAlreadyCompleted = errors.New("test already taken, cannot retake")

	// ErrNoSkills: the resume has no parsed skills to assess.
	ErrNoSkills = errors.New("no valid skills found in resume")

	// ErrUpstream: the question oracle failed or returned nothing.
	ErrUpstream = errors.New("question generation failed")
)

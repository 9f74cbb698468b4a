package services

import "errors"

// Sentinel errors for the pipeline's failure taxonomy. Per-candidate
// evaluation failures are never surfaced through these; they are recorded
// on the candidate's report entry instead.
var (
	ErrJobNotFound        = errors.New("job not found")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrEmptyCandidatePool = errors.New("candidate pool is empty")
	ErrEmptyText          = errors.New("cannot embed empty text")
	ErrInvalidVerdict     = errors.New("evaluation response violates verdict schema")
)

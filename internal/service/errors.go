package service

import "errors"

// Failure categories surfaced to the HTTP layer. Stage errors wrap one of
// these together with the underlying cause, so errors.Is works for both.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrFetchFailed           = errors.New("failed to fetch website")
	ErrAnalysisFailed        = errors.New("analysis failed")
	ErrEmailGenerationFailed = errors.New("email generation failed")
	ErrAnalysisNotFound      = errors.New("analysis not found")
	ErrPersistenceFailed     = errors.New("persistence failed")
)

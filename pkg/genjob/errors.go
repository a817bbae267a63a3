package genjob

import "github.com/Abraxas-365/packwright/pkg/errx"

var genjobErrors = errx.NewRegistry("GENJOB")

var (
	ErrJobNotFound     = genjobErrors.Register("JOB_NOT_FOUND", errx.TypeNotFound, 404, "Job not found")
	ErrStaleVersion    = genjobErrors.Register("STALE_VERSION", errx.TypeConflict, 409, "Job record was modified by another writer")
	ErrTerminalState   = genjobErrors.Register("TERMINAL_STATE", errx.TypeConflict, 409, "Job is already in a terminal state")
	ErrAlreadyRunning  = genjobErrors.Register("ALREADY_RUNNING", errx.TypeConflict, 409, "Runner is already started")
	ErrStoreFailed     = genjobErrors.Register("STORE_FAILED", errx.TypeExternal, 500, "Job record store operation failed")
	ErrResultNotReady  = genjobErrors.Register("RESULT_NOT_READY", errx.TypeConflict, 409, "Job has not completed yet")
	ErrDeadlineElapsed = genjobErrors.Register("DEADLINE_ELAPSED", errx.TypeTimeout, 504, "Generation exceeded the job deadline")
)

// NewError builds an error for a registered engine code. Store backends use
// these constructors so every implementation reports the same codes.
func NewError(code *errx.ErrorCode) *errx.Error {
	return genjobErrors.New(code)
}

// NewErrorWithCause builds an engine error wrapping an underlying cause.
func NewErrorWithCause(code *errx.ErrorCode, cause error) *errx.Error {
	return genjobErrors.NewWithCause(code, cause)
}

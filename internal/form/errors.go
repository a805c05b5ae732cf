package form

import (
	"errors"
	"fmt"
)

// ValidationError is raised before any network call; the form stays usable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrTooManyFiles = &ValidationError{Message: fmt.Sprintf("cannot upload more than %d files", MaxFiles)}
	ErrNoFiles      = &ValidationError{Message: "select at least one file"}
	ErrNoMonth      = &ValidationError{Message: "select a month"}
	ErrInvalidMonth = &ValidationError{Message: "invalid month"}
)

// Step identifies the network call that failed.
type Step string

const (
	StepSignedURL Step = "signed_url"
	StepUpload    Step = "upload"
	StepReport    Step = "report"
)

// UpstreamError aborts the remaining pipeline. Error returns the message
// shown to the user; the cause is available through Unwrap.
type UpstreamError struct {
	Step     Step
	FileName string
	// Index is the batch position of the failing file, or the batch length
	// for StepReport.
	Index int
	Err   error
}

func (e *UpstreamError) Error() string {
	switch e.Step {
	case StepSignedURL:
		return fmt.Sprintf("could not generate upload URL for %s", e.FileName)
	case StepUpload:
		return fmt.Sprintf("error uploading file %s", e.FileName)
	default:
		return "could not generate report"
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Uploaded is the number of files stored remotely before the failure.
// Those uploads are not rolled back.
func (e *UpstreamError) Uploaded() int { return e.Index }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

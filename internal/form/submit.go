package form

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Backend is the set of remote calls a submission makes.
type Backend interface {
	SignedURL(ctx context.Context, fileName, contentType string) (string, error)
	Upload(ctx context.Context, signedURL, contentType string, body io.Reader, size int64) error
	GenerateReport(ctx context.Context, period string) (string, error)
}

// Options selects the form variant.
type Options struct {
	// Reporting enables the month selector and the report request.
	Reporting bool
	// Now is the clock used for the report year. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// New returns an empty idle form.
func New() State {
	return State{Status: StatusIdle}
}

// Validate checks the preconditions of Submit.
func Validate(s State, reporting bool) error {
	if len(s.Files) == 0 {
		return ErrNoFiles
	}
	if reporting && s.Month == "" {
		return ErrNoMonth
	}
	return nil
}

// Begin moves the form into the loading state.
func Begin(s State) State {
	s.Status = StatusLoading
	s.Err = ""
	s.ReportURL = ""
	return s
}

// Submit uploads every staged file in order and, for the reporting variant,
// requests the report. The first failure ends the submission; files already
// uploaded stay uploaded.
func Submit(ctx context.Context, s State, b Backend, opts Options) (State, error) {
	if err := Validate(s, opts.Reporting); err != nil {
		return s.withError(err), err
	}
	s = Begin(s)

	for i, f := range s.Files {
		if err := uploadOne(ctx, b, f.File); err != nil {
			err.Index = i
			return s.withError(err), err
		}
	}

	if !opts.Reporting {
		done := Reset(s)
		done.Status = StatusSucceeded
		return done, nil
	}

	url, err := b.GenerateReport(ctx, Period(s.Month, opts.now()))
	if err != nil {
		upErr := &UpstreamError{Step: StepReport, Index: len(s.Files), Err: err}
		return s.withError(upErr), upErr
	}
	s.Status = StatusSucceeded
	s.ReportURL = url
	return s, nil
}

func uploadOne(ctx context.Context, b Backend, f RawFile) *UpstreamError {
	signed, err := b.SignedURL(ctx, f.Name, f.ContentType)
	if err != nil {
		return &UpstreamError{Step: StepSignedURL, FileName: f.Name, Err: err}
	}

	if f.Open == nil {
		return &UpstreamError{Step: StepUpload, FileName: f.Name, Err: fmt.Errorf("no content for %s", f.Name)}
	}
	body, err := f.Open()
	if err != nil {
		return &UpstreamError{Step: StepUpload, FileName: f.Name, Err: fmt.Errorf("open: %w", err)}
	}
	defer body.Close()

	if err := b.Upload(ctx, signed, f.ContentType, body, f.Size); err != nil {
		return &UpstreamError{Step: StepUpload, FileName: f.Name, Err: err}
	}
	return nil
}

// Period builds the YYYY-MM report key. The year is always the current one.
func Period(month string, now time.Time) string {
	return fmt.Sprintf("%04d-%s", now.Year(), month)
}

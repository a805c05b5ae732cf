package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"report-uploader/internal/form"
	"report-uploader/internal/shared/metrics"
	"report-uploader/internal/shared/telemetry"
)

// ErrBusy is returned for any change requested while a submission runs.
var ErrBusy = errors.New("a submission is already in progress")

// Session holds one form for a front end. It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	state   form.State
	backend form.Backend
	opts    form.Options
	metrics *metrics.Metrics
	newID   func() string
}

// Option configures a Session.
type Option func(*Session)

// WithMetrics records submissions on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithIDs overrides the SelectedFile id generator.
func WithIDs(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// New constructs an idle Session.
func New(backend form.Backend, opts form.Options, extra ...Option) *Session {
	s := &Session{
		state:   form.New(),
		backend: backend,
		opts:    opts,
		newID:   uuid.NewString,
	}
	for _, o := range extra {
		o(s)
	}
	return s
}

// Reporting reports whether this form requests a report after uploading.
func (s *Session) Reporting() bool {
	return s.opts.Reporting
}

// Snapshot returns the current state.
func (s *Session) Snapshot() form.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AddFiles stages a picker batch.
func (s *Session) AddFiles(raw []form.RawFile) (form.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Loading() {
		return s.state, ErrBusy
	}
	next, err := form.AddFiles(s.state, raw, s.newID)
	s.state = next
	if err != nil {
		telemetry.Info("form.add_files.rejected", map[string]any{"staged": len(next.Files), "offered": len(raw), "err": err})
		return next, err
	}
	telemetry.Debug("form.add_files", map[string]any{"staged": len(next.Files), "offered": len(raw)})
	return next, nil
}

// DeleteFile removes a staged file.
func (s *Session) DeleteFile(id string) (form.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Loading() {
		return s.state, ErrBusy
	}
	s.state = form.DeleteFile(s.state, id)
	return s.state, nil
}

// SelectMonth sets the report month.
func (s *Session) SelectMonth(month string) (form.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Loading() {
		return s.state, ErrBusy
	}
	next, err := form.SelectMonth(s.state, month)
	s.state = next
	return next, err
}

// Reset clears the whole form.
func (s *Session) Reset() (form.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Loading() {
		return s.state, ErrBusy
	}
	s.state = form.Reset(s.state)
	return s.state, nil
}

// Submit runs the upload pipeline. It cannot be cancelled once started:
// cancellation of ctx is ignored, only its values are kept.
func (s *Session) Submit(ctx context.Context) (form.State, error) {
	s.mu.Lock()
	if s.state.Loading() {
		st := s.state
		s.mu.Unlock()
		return st, ErrBusy
	}
	if err := form.Validate(s.state, s.opts.Reporting); err != nil {
		next, _ := form.Submit(ctx, s.state, s.backend, s.opts)
		s.state = next
		s.mu.Unlock()
		s.metrics.ObserveSubmission("validation_error", 0, 0)
		return next, err
	}
	snapshot := s.state
	s.state = form.Begin(s.state)
	s.mu.Unlock()

	start := time.Now()
	telemetry.Info("submission.start", map[string]any{"files": len(snapshot.Files), "month": snapshot.Month, "reporting": s.opts.Reporting})

	next, err := form.Submit(context.WithoutCancel(ctx), snapshot, s.backend, s.opts)
	elapsed := time.Since(start)
	s.record(snapshot, next, err, elapsed)

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	return next, err
}

func (s *Session) record(before, after form.State, err error, elapsed time.Duration) {
	fields := map[string]any{
		"files":       len(before.Files),
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
	}
	if err == nil {
		fields["report_url"] = after.ReportURL
		telemetry.Info("submission.complete", fields)
		s.metrics.ObserveSubmission("succeeded", len(before.Files), elapsed)
		return
	}

	var upErr *form.UpstreamError
	if errors.As(err, &upErr) {
		fields["step"] = string(upErr.Step)
		fields["file"] = upErr.FileName
		fields["uploaded"] = upErr.Uploaded()
		fields["err"] = upErr.Unwrap()
		telemetry.Error("submission.failed", fields)
		s.metrics.IncUpstreamFailure(string(upErr.Step))
		s.metrics.ObserveSubmission("upstream_error", upErr.Uploaded(), elapsed)
		return
	}
	fields["err"] = err
	telemetry.Error("submission.failed", fields)
	s.metrics.ObserveSubmission("error", 0, elapsed)
}

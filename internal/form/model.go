package form

import (
	"io"
)

// MaxFiles is the largest batch a single submission may carry.
const MaxFiles = 10

// Status is the submission state of a form.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusError     Status = "error"
	StatusSucceeded Status = "succeeded"
)

// RawFile is a file handle as delivered by a picker.
type RawFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// SelectedFile is a staged file. ID is independent of the file name.
type SelectedFile struct {
	ID   string
	File RawFile
}

// State is the whole form. Operations take a State and return a new one;
// the Files slice is never mutated in place.
type State struct {
	Files     []SelectedFile
	Month     string
	Status    Status
	Err       string
	ReportURL string
}

// Loading reports whether a submission is in flight.
func (s State) Loading() bool {
	return s.Status == StatusLoading
}

// Names returns the staged file names in batch order.
func (s State) Names() []string {
	out := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		out = append(out, f.File.Name)
	}
	return out
}

func (s State) withError(err error) State {
	s.Status = StatusError
	s.Err = err.Error()
	s.ReportURL = ""
	return s
}

func (s State) cleared() State {
	s.Status = StatusIdle
	s.Err = ""
	s.ReportURL = ""
	return s
}

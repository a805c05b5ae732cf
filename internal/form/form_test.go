package form

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

type call struct {
	Op          string
	Name        string
	URL         string
	ContentType string
	Body        string
	Period      string
}

// fakeBackend records every call and fails at configurable points.
type fakeBackend struct {
	calls []call

	failSignedAt int // 1-based signed-URL request that fails; 0 never
	failUploadAt int // 1-based upload that fails; 0 never
	failReport   bool
	reportURL    string

	signed  int
	uploads int
}

func (b *fakeBackend) SignedURL(_ context.Context, name, contentType string) (string, error) {
	b.signed++
	b.calls = append(b.calls, call{Op: "signed", Name: name, ContentType: contentType})
	if b.failSignedAt == b.signed {
		return "", errors.New("status 500")
	}
	return "https://storage.example/" + name + "?sig=abc", nil
}

func (b *fakeBackend) Upload(_ context.Context, url, contentType string, body io.Reader, _ int64) error {
	b.uploads++
	data, _ := io.ReadAll(body)
	b.calls = append(b.calls, call{Op: "put", URL: url, ContentType: contentType, Body: string(data)})
	if b.failUploadAt == b.uploads {
		return errors.New("status 403")
	}
	return nil
}

func (b *fakeBackend) GenerateReport(_ context.Context, period string) (string, error) {
	b.calls = append(b.calls, call{Op: "report", Period: period})
	if b.failReport {
		return "", errors.New("status 502")
	}
	if b.reportURL == "" {
		return "https://reports.example/" + period + ".xlsx", nil
	}
	return b.reportURL, nil
}

func (b *fakeBackend) ops() []string {
	out := make([]string, 0, len(b.calls))
	for _, c := range b.calls {
		out = append(out, c.Op)
	}
	return out
}

func rawFile(name, contentType, content string) RawFile {
	return RawFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader([]byte(content))), nil
		},
	}
}

func rawFiles(n int) []RawFile {
	out := make([]RawFile, n)
	for i := range out {
		out[i] = rawFile(fmt.Sprintf("file-%02d.txt", i), "text/plain", strings.Repeat("x", i))
	}
	return out
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC) }
}

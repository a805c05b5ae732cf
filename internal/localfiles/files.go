package localfiles

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"report-uploader/internal/form"
)

const fallbackContentType = "application/octet-stream"

// Load turns paths into raw file handles. Directories are rejected.
func Load(paths []string) ([]form.RawFile, error) {
	out := make([]form.RawFile, 0, len(paths))
	for _, p := range paths {
		f, err := loadOne(p)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func loadOne(path string) (form.RawFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return form.RawFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return form.RawFile{}, fmt.Errorf("%s is a directory", path)
	}

	contentType := ByExtension(path)
	if contentType == "" {
		contentType = sniffFile(path)
	}

	return form.RawFile{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// ByExtension reports the bare media type registered for the file's
// extension, the way a browser file picker does.
func ByExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	raw := mime.TypeByExtension(ext)
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return ""
	}
	return mediaType
}

// Sniff detects the media type of in-memory content.
func Sniff(data []byte) string {
	return bare(mimetype.Detect(data).String())
}

// FromBytes wraps in-memory content as a raw file. An empty contentType is
// resolved from the name, then from the content.
func FromBytes(name, contentType string, data []byte) form.RawFile {
	if contentType == "" {
		contentType = ByExtension(name)
	}
	if contentType == "" {
		contentType = Sniff(data)
	}
	return form.RawFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func sniffFile(path string) string {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return fallbackContentType
	}
	return bare(m.String())
}

func bare(raw string) string {
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil || mediaType == "" {
		return fallbackContentType
	}
	return mediaType
}

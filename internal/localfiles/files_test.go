package localfiles

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDetectsContentTypes(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "a.txt")
	png := filepath.Join(dir, "b.png")
	noext := filepath.Join(dir, "REPORT")
	require.NoError(t, os.WriteFile(txt, []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n0000"), 0o644))
	require.NoError(t, os.WriteFile(noext, []byte("%PDF-1.7\n%binary"), 0o644))

	files, err := Load([]string{txt, png, noext})
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, "a.txt", files[0].Name)
	assert.Equal(t, "text/plain", files[0].ContentType)
	assert.EqualValues(t, 5, files[0].Size)
	assert.Equal(t, "image/png", files[1].ContentType)
	assert.Equal(t, "REPORT", files[2].Name)
	assert.Equal(t, "application/pdf", files[2].ContentType)

	rc, err := files[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))
}

func TestLoadRejectsDirectoriesAndMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := Load([]string{dir})
	require.ErrorContains(t, err, "is a directory")

	_, err = Load([]string{filepath.Join(dir, "missing.csv")})
	require.Error(t, err)
}

func TestFromBytes(t *testing.T) {
	f := FromBytes("notes", "", []byte("plain words here"))
	assert.Equal(t, "text/plain", f.ContentType)
	assert.EqualValues(t, 16, f.Size)

	f = FromBytes("sheet.csv", "application/vnd.ms-excel", []byte("a,b"))
	assert.Equal(t, "application/vnd.ms-excel", f.ContentType)
}

package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartImage builds a parsed *multipart.FileHeader the way Echo
// hands it to SaveImage.
func multipartImage(t *testing.T, contentType string, payload []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="cover.bin"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, fh, err := req.FormFile("image")
	require.NoError(t, err)
	return fh
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	fh := multipartImage(t, "image/png", []byte("png-bytes"))

	path, err := SaveImage(fh, dir, 1024)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	stored := filepath.Join(dir, strings.TrimPrefix(path, "/uploads/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSaveImageUniqueNames(t *testing.T) {
	dir := t.TempDir()
	a, err := SaveImage(multipartImage(t, "image/jpeg", []byte("a")), dir, 1024)
	require.NoError(t, err)
	b, err := SaveImage(multipartImage(t, "image/jpeg", []byte("b")), dir, 1024)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSaveImageRejectsUnsupportedType(t *testing.T) {
	fh := multipartImage(t, "application/pdf", []byte("%PDF"))
	_, err := SaveImage(fh, t.TempDir(), 1024)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSaveImageRejectsOversized(t *testing.T) {
	fh := multipartImage(t, "image/webp", bytes.Repeat([]byte("x"), 64))
	_, err := SaveImage(fh, t.TempDir(), 32)
	assert.ErrorIs(t, err, ErrTooLarge)
}

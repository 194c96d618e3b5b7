// Package upload stores media cover images on local disk. Only the
// returned path is persisted on the media record; serving the files is
// left to the static route registered in main.
package upload

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for uploads that are not JPEG, PNG or
// WebP images.
var ErrUnsupportedType = errors.New("only JPEG, PNG and WebP images are accepted")

// ErrTooLarge is returned when the upload exceeds the configured size
// limit.
var ErrTooLarge = errors.New("image exceeds the maximum allowed size")

// allowedTypes maps accepted content types to the extension the stored
// file gets.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// SaveImage validates and writes an uploaded image below dir, returning
// the public path to store on the media record. Filenames are random
// uuids so concurrent uploads never collide.
func SaveImage(fh *multipart.FileHeader, dir string, maxBytes int64) (string, error) {
	if fh.Size > maxBytes {
		return "", ErrTooLarge
	}
	ctype := fh.Header.Get("Content-Type")
	ext, ok := allowedTypes[strings.ToLower(strings.TrimSpace(ctype))]
	if !ok {
		return "", ErrUnsupportedType
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy with a hard cap in case the reported size was wrong.
	if _, err := io.Copy(dst, io.LimitReader(src, maxBytes+1)); err != nil {
		return "", err
	}
	if info, err := dst.Stat(); err == nil && info.Size() > maxBytes {
		_ = os.Remove(dst.Name())
		return "", ErrTooLarge
	}

	return "/uploads/" + name, nil
}

package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/quickserve-app/quickserve-api/internal/httperr"
)

// MaxUploadSize caps every upload at 5MB, checked before any write.
const MaxUploadSize = 5 << 20

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var docTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
}

var subdirs = map[string]string{
	"profile":     "profiles",
	"portfolio":   "portfolio",
	"certificate": "certificates",
	"service":     "services",
}

const audioSubdir = "audio"

// ValidateUpload rejects oversized files and content types outside the
// image/document allowlists.
func ValidateUpload(size int64, contentType string) error {
	if size > MaxUploadSize {
		return httperr.ErrBusiness("file_too_large")
	}
	if !imageTypes[contentType] && !docTypes[contentType] {
		return httperr.ErrBusiness("invalid_file_type")
	}
	return nil
}

// SubdirFor maps an upload type to its storage subdirectory; anything
// unrecognized lands in general.
func SubdirFor(uploadType string) string {
	if dir, ok := subdirs[uploadType]; ok {
		return dir
	}
	return "general"
}

// LocalStore writes uploads under a root directory on the local filesystem
// and hands back relative URLs.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	for _, dir := range []string{"general", "profiles", "portfolio", "certificates", "services", audioSubdir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &LocalStore{root: root}, nil
}

// SaveUpload validates and stores a generic upload, returning the relative
// URL to persist.
func (s *LocalStore) SaveUpload(fh *multipart.FileHeader, uploadType string) (string, error) {
	contentType := fh.Header.Get("Content-Type")
	if err := ValidateUpload(fh.Size, contentType); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("upload_%s%s", uuid.NewString(), ext)

	subdir := SubdirFor(uploadType)
	if err := s.write(fh, filepath.Join(subdir, name)); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join("uploads", subdir, name)), nil
}

// SaveAudio stores a chat voice note. Size is capped like any upload; the
// recorder always produces webm.
func (s *LocalStore) SaveAudio(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxUploadSize {
		return "", httperr.ErrBusiness("file_too_large")
	}

	name := fmt.Sprintf("voice_%s.webm", uuid.NewString())
	if err := s.write(fh, filepath.Join(audioSubdir, name)); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join("uploads", audioSubdir, name)), nil
}

func (s *LocalStore) write(fh *multipart.FileHeader, rel string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, rel))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

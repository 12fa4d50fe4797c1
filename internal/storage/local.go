package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bizdir/bizdirapi/internal/db/bunx"
)

// Accepted upload extensions, lowercased.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ErrUnsupportedType is returned for uploads whose extension is not an
// accepted image format.
var ErrUnsupportedType = errors.New("unsupported image type")

// LocalImageStore writes uploaded images to a directory on disk and serves
// them back under the /images URL prefix.
type LocalImageStore struct {
	root string
}

// NewLocalImageStore ensures the storage directory exists.
func NewLocalImageStore(root string) (*LocalImageStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &LocalImageStore{root: root}, nil
}

// Root returns the directory images are stored in, for static file serving.
func (s *LocalImageStore) Root() string {
	return s.root
}

// Save writes an uploaded file under a generated name and returns the stored
// file name and its public URL. The original name only contributes its
// extension; everything else is discarded to keep paths safe.
func (s *LocalImageStore) Save(originalName string, r io.Reader) (fileName, url string, err error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	fileName = bunx.NewUUIDv7() + ext
	dst, err := os.Create(filepath.Join(s.root, fileName))
	if err != nil {
		return "", "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(dst.Name())
		return "", "", fmt.Errorf("write image file: %w", err)
	}

	return fileName, path.Join("/images", fileName), nil
}

// Remove deletes a stored image file. A missing file is not an error; the
// database record is authoritative.
func (s *LocalImageStore) Remove(fileName string) error {
	clean := filepath.Base(fileName)
	err := os.Remove(filepath.Join(s.root, clean))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

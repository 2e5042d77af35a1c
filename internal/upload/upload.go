package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes uploaded cover images into a directory served as static
// files and hands back the stable relative path to persist.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save stores the file under a random name keeping the original
// extension. The name is unique per call, so there is no rename step
// and no collision window.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(fh.Filename)))

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		_ = os.Remove(dst)
		return "", err
	}

	return filepath.ToSlash(dst), nil
}

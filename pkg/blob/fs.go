package blob

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// FS stores blobs as files in a local uploads directory. The HTTP layer
// serves the same directory statically under WebPrefix.
type FS struct {
	dir string
}

// NewFS creates the uploads directory if needed and returns the store.
func NewFS(dir string) (*FS, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FS{dir: dir}, nil
}

// Dir returns the backing directory, for static serving.
func (s *FS) Dir() string { return s.dir }

func (s *FS) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	name := NewName(originalName)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return WebPrefix + name, nil
}

func (s *FS) Remove(ctx context.Context, webPath string) error {
	if webPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, path.Base(webPath)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

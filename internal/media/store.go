// Package media keeps destination images on a billy filesystem: the
// working directory in production, memfs in tests.
package media

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Store is a small file API over billy. Paths are slash-separated and
// relative to the filesystem root.
type Store struct {
	fs billy.Filesystem
}

func NewStore(fs billy.Filesystem) *Store {
	return &Store{fs: fs}
}

// NewDiskStore roots a store at dir.
func NewDiskStore(dir string) *Store {
	return NewStore(osfs.New(dir))
}

// Write creates or truncates p with the contents of r.
func (s *Store) Write(p string, r io.Reader) error {
	if err := s.fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return fmt.Errorf("media: mkdir %q: %w", path.Dir(p), err)
	}
	f, err := s.fs.Create(p)
	if err != nil {
		return fmt.Errorf("media: create %q: %w", p, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("media: write %q: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("media: close %q: %w", p, err)
	}
	return nil
}

// Replace atomically swaps the contents of p by writing a sibling temp file
// and renaming it over p.
func (s *Store) Replace(p string, write func(w io.Writer) error) error {
	tmp, err := s.fs.TempFile(path.Dir(p), ".resize-")
	if err != nil {
		return fmt.Errorf("media: temp file for %q: %w", p, err)
	}
	name := tmp.Name()
	if err := write(tmp); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(name)
		return fmt.Errorf("media: write %q: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(name)
		return fmt.Errorf("media: close %q: %w", name, err)
	}
	if err := s.fs.Rename(name, p); err != nil {
		_ = s.fs.Remove(name)
		return fmt.Errorf("media: rename %q: %w", p, err)
	}
	return nil
}

func (s *Store) Open(p string) (io.ReadCloser, error) {
	f, err := s.fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("media: open %q: %w", p, err)
	}
	return f, nil
}

func (s *Store) Exists(p string) (bool, error) {
	_, err := s.fs.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("media: stat %q: %w", p, err)
	}
}

// Dimensions decodes only the image header.
func (s *Store) Dimensions(p string) (width, height int, err error) {
	f, err := s.Open(p)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("media: decode %q: %w", p, err)
	}
	return cfg.Width, cfg.Height, nil
}

// Delete removes p. A missing file is not an error.
func (s *Store) Delete(p string) (existed bool, err error) {
	err = s.fs.Remove(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("media: remove %q: %w", p, err)
	}
}

// List returns the regular files directly under dir.
func (s *Store) List(dir string) ([]string, error) {
	infos, err := s.fs.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("media: list %q: %w", dir, err)
	}
	var out []string
	for _, fi := range infos {
		if !fi.IsDir() {
			out = append(out, path.Join(dir, fi.Name()))
		}
	}
	return out, nil
}

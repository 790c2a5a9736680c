package media

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"travel_planner/internal/metrics"
)

// Dir is where destination images live inside the store.
const Dir = "destinations"

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrNotImage        = errors.New("file is not a valid image")
	ErrTooLarge        = errors.New("image has too many pixels")

	allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}
)

type Options struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
	// MaxPixels caps width*height of anything we are willing to decode.
	MaxPixels int
	// URLPrefix is prepended to stored paths in API responses.
	URLPrefix string
}

func DefaultOptions() Options {
	return Options{MaxWidth: 800, MaxHeight: 600, Quality: 85, MaxPixels: 89478485, URLPrefix: "/media/"}
}

// Images owns the on-disk side of a destination's image: writing uploads,
// shrinking oversized files and removing files that are no longer referenced.
type Images struct {
	store *Store
	opts  Options
}

func NewImages(store *Store, opts Options) *Images {
	return &Images{store: store, opts: opts}
}

func (m *Images) Store() *Store { return m.store }

// URL maps a stored path to its public URL.
func (m *Images) URL(p string) string {
	if p == "" {
		return ""
	}
	return m.opts.URLPrefix + p
}

// Save writes an upload under a fresh name and returns its stored path.
// Files that do not decode as images are removed again.
func (m *Images) Save(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	p := path.Join(Dir, uuid.NewString()+ext)
	if err := m.store.Write(p, r); err != nil {
		metrics.ImageOps.WithLabelValues("write", "error").Inc()
		return "", err
	}
	w, h, err := m.store.Dimensions(p)
	if err != nil {
		m.Discard(p)
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if err := m.checkPixels(w, h); err != nil {
		metrics.ImageOps.WithLabelValues("write", "rejected").Inc()
		m.Discard(p)
		return "", err
	}
	metrics.ImageOps.WithLabelValues("write", "ok").Inc()
	return p, nil
}

// Fit shrinks the image at p to the configured bounds, keeping its aspect
// ratio, and reports whether the file was rewritten.
func (m *Images) Fit(p string) (bool, error) {
	w, h, err := m.store.Dimensions(p)
	if err != nil {
		metrics.ImageOps.WithLabelValues("resize", "error").Inc()
		return false, err
	}
	if w <= m.opts.MaxWidth && h <= m.opts.MaxHeight {
		return false, nil
	}
	if err := m.checkPixels(w, h); err != nil {
		metrics.ImageOps.WithLabelValues("resize", "error").Inc()
		return false, fmt.Errorf("media: %q: %w", p, err)
	}

	format, err := imaging.FormatFromFilename(p)
	if err != nil {
		metrics.ImageOps.WithLabelValues("resize", "error").Inc()
		return false, fmt.Errorf("media: %q: %w", p, err)
	}
	src, err := m.store.Open(p)
	if err != nil {
		metrics.ImageOps.WithLabelValues("resize", "error").Inc()
		return false, err
	}
	img, err := imaging.Decode(src)
	src.Close()
	if err != nil {
		metrics.ImageOps.WithLabelValues("resize", "error").Inc()
		return false, fmt.Errorf("media: decode %q: %w", p, err)
	}

	resized := imaging.Fit(img, m.opts.MaxWidth, m.opts.MaxHeight, imaging.Lanczos)
	err = m.store.Replace(p, func(w io.Writer) error {
		return imaging.Encode(w, resized, format, imaging.JPEGQuality(m.opts.Quality))
	})
	if err != nil {
		metrics.ImageOps.WithLabelValues("resize", "error").Inc()
		return false, err
	}

	metrics.ImageOps.WithLabelValues("resize", "ok").Inc()
	logrus.WithFields(logrus.Fields{
		"path": p,
		"from": fmt.Sprintf("%dx%d", w, h),
		"to":   fmt.Sprintf("%dx%d", resized.Bounds().Dx(), resized.Bounds().Dy()),
	}).Debug("media: image resized")
	return true, nil
}

func (m *Images) checkPixels(w, h int) error {
	if m.opts.MaxPixels > 0 && int64(w)*int64(h) > int64(m.opts.MaxPixels) {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, w, h)
	}
	return nil
}

// Remove deletes the file at p. An already missing file counts as removed.
func (m *Images) Remove(p string) error {
	if p == "" {
		return nil
	}
	existed, err := m.store.Delete(p)
	switch {
	case err != nil:
		metrics.ImageOps.WithLabelValues("delete", "error").Inc()
		return err
	case !existed:
		metrics.ImageOps.WithLabelValues("delete", "missing").Inc()
	default:
		metrics.ImageOps.WithLabelValues("delete", "ok").Inc()
	}
	return nil
}

// Discard is Remove for paths whose deletion must not fail the caller: the
// error is logged and the file is left behind as an orphan.
func (m *Images) Discard(p string) {
	if err := m.Remove(p); err != nil {
		logrus.WithError(err).WithField("path", p).Warn("media: could not delete image, file left orphaned")
	}
}

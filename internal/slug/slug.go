// Package slug derives unique, URL-safe identifiers from display names.
package slug

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// Placeholder is used when a name has no usable characters.
	Placeholder = "destination"
	// MaxLength matches the width of the slug column.
	MaxLength = 200
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	pattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	ErrInvalid = errors.New("slug must contain only lowercase letters, digits and single hyphens")
)

// Make normalizes name into a base token: accents are folded, the result is
// lowercased and every run of non-alphanumeric characters becomes one hyphen.
//
//	Make("São Paulo Trip!!") // "sao-paulo-trip"
//	Make("!!!")              // "destination"
func Make(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}
	s := nonAlnum.ReplaceAllString(strings.ToLower(folded), "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxLength {
		s = strings.TrimRight(s[:MaxLength], "-")
	}
	if s == "" {
		return Placeholder
	}
	return s
}

// Validate checks an explicitly supplied slug and returns it lowercased.
func Validate(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) > MaxLength || !pattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return s, nil
}

// ExistsFunc reports whether a slug is already assigned.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Assigner picks the first free candidate among base, base-1, base-2, ...
// Each candidate is checked against storage, so gaps left by deleted records
// are reused. The check is not atomic: callers must still rely on the unique
// index and retry when an insert collides.
type Assigner struct {
	exists ExistsFunc
	// OnCollision, when set, is called for every taken candidate.
	OnCollision func(candidate string)
}

func NewAssigner(exists ExistsFunc) *Assigner {
	return &Assigner{exists: exists}
}

// Assign returns a unique slug for name.
func (a *Assigner) Assign(ctx context.Context, name string) (string, error) {
	return a.Unique(ctx, Make(name))
}

// Unique returns base or the first numbered variant of it that is free.
func (a *Assigner) Unique(ctx context.Context, base string) (string, error) {
	candidate := base
	for n := 1; ; n++ {
		taken, err := a.exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("slug: check %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		if a.OnCollision != nil {
			a.OnCollision(candidate)
		}
		candidate = withSuffix(base, n)
	}
}

func withSuffix(base string, n int) string {
	suffix := "-" + strconv.Itoa(n)
	if len(base)+len(suffix) > MaxLength {
		base = strings.TrimRight(base[:MaxLength-len(suffix)], "-")
	}
	return base + suffix
}

// InSet adapts a fixed set of slugs to an ExistsFunc.
func InSet(set map[string]struct{}) ExistsFunc {
	return func(_ context.Context, s string) (bool, error) {
		_, ok := set[s]
		return ok, nil
	}
}

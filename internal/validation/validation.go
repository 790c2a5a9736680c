// Package validation holds the field-level checks shared by the services.
// Failures are returned as Errors, never raised.
package validation

import (
	"fmt"
	"strings"
	"time"
)

// FieldError attributes a message to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is a set of field errors. A nil or empty Errors means valid.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *Errors) Add(field, format string, args ...interface{}) {
	*e = append(*e, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Merge appends the errors of other.
func (e *Errors) Merge(other Errors) {
	*e = append(*e, other...)
}

// Err returns nil when there is nothing to report, so callers can write
// `return errs.Err()`.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Fields groups messages by field name for rendering next to form inputs.
func (e Errors) Fields() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// Range is a closed date interval. Either bound may be missing.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// Complete reports whether both bounds are set.
func (r Range) Complete() bool {
	return r.Start != nil && r.End != nil
}

// CheckRange rejects end < start. Equal bounds are allowed and partial
// ranges are not checked.
func CheckRange(r Range, field, message string) *FieldError {
	if !r.Complete() {
		return nil
	}
	if dayOf(*r.End).Before(dayOf(*r.Start)) {
		return &FieldError{Field: field, Message: message}
	}
	return nil
}

// Overlaps reports whether two complete ranges share at least one day,
// boundary days included. Partial ranges never overlap.
func Overlaps(a, b Range) bool {
	if !a.Complete() || !b.Complete() {
		return false
	}
	return !dayOf(*a.Start).After(dayOf(*b.End)) && !dayOf(*a.End).Before(dayOf(*b.Start))
}

// CheckOverlap returns an error when candidate overlaps any sibling.
func CheckOverlap(candidate Range, siblings []Range, field, message string) *FieldError {
	for _, s := range siblings {
		if Overlaps(candidate, s) {
			return &FieldError{Field: field, Message: message}
		}
	}
	return nil
}

// CheckCoordinates requires longitude and latitude to be given together and
// within range.
func CheckCoordinates(longitude, latitude *float64) Errors {
	var errs Errors
	if (longitude == nil) != (latitude == nil) {
		errs.Add("longitude", "longitude and latitude must be provided together")
		errs.Add("latitude", "longitude and latitude must be provided together")
		return errs
	}
	if longitude != nil && (*longitude < -180 || *longitude > 180) {
		errs.Add("longitude", "must be between -180 and 180")
	}
	if latitude != nil && (*latitude < -90 || *latitude > 90) {
		errs.Add("latitude", "must be between -90 and 90")
	}
	return errs
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

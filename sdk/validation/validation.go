// Package validation holds small helpers for optional fields and input checks
// shared by the repositories and bridges.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func StringPtr(s string) *string {
	return &s
}

func Int64Ptr(i int64) *int64 {
	return &i
}

func IntPtr(i int) *int {
	return &i
}

func Float64Ptr(f float64) *float64 {
	return &f
}

// GetStringOrEmpty returns the string value or an empty string if nil
func GetStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetStringOrDefault returns the string value or a default value if nil
func GetStringOrDefault(s *string, defaultValue string) string {
	if s == nil {
		return defaultValue
	}
	return *s
}

// StringPtrIfNotEmpty returns a pointer to s, or nil when s is empty.
func StringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// FieldErrors collects every rejected field of a single input.
type FieldErrors []FieldError

// Add records a failure for field.
func (fe *FieldErrors) Add(field, format string, args ...any) {
	*fe = append(*fe, FieldError{Field: field, Error: fmt.Sprintf(format, args...)})
}

// Required fails when s is blank.
func (fe *FieldErrors) Required(field, s string) {
	if strings.TrimSpace(s) == "" {
		fe.Add(field, "is required")
	}
}

// MaxLength fails when s holds more than max characters. Length is counted in
// runes so it matches VARCHAR(n) semantics.
func (fe *FieldErrors) MaxLength(field, s string, max int) {
	if utf8.RuneCountInString(s) > max {
		fe.Add(field, "must be at most %d characters", max)
	}
}

// Range fails when v lies outside [min, max].
func (fe *FieldErrors) Range(field string, v, min, max int64) {
	if v < min || v > max {
		fe.Add(field, "must be between %d and %d", min, max)
	}
}

// Positive fails when v is not greater than zero.
func (fe *FieldErrors) Positive(field string, v int64) {
	if v <= 0 {
		fe.Add(field, "must be a positive id")
	}
}

// Err returns nil when no field failed, otherwise the collected errors.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.Field + " " + e.Error
	}
	return strings.Join(parts, "; ")
}

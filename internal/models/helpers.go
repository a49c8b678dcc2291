package models

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a query finds no matching row, including rows
// that exist but belong to another user.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when a value fails a model-level check.
var ErrInvalidInput = errors.New("invalid input")

// DateLayout is the storage format for calendar dates.
const DateLayout = "2006-01-02"

// Today returns the current date in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}

// isUniqueViolation checks if a SQLite error is a unique constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && (errContains(err, "UNIQUE constraint failed") || errContains(err, "constraint failed: UNIQUE"))
}

// errContains checks whether an error's message contains the given substring.
func errContains(err error, substr string) bool {
	return err != nil && strings.Contains(err.Error(), substr)
}

// normalizeDate trims any time suffix from a date string (e.g. "2025-01-01T00:00:00Z" → "2025-01-01").
func normalizeDate(d string) string {
	if len(d) >= 10 {
		return d[:10]
	}
	return d
}

// boolInt converts a bool to the 0/1 SQLite stores.
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

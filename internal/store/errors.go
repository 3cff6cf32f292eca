package store

import (
	"errors"
	"strings"
)

// Sentinel errors shared by all store methods. Handlers translate these at
// the HTTP boundary; nothing else inspects SQL errors directly.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. The modernc driver exposes these only through the message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

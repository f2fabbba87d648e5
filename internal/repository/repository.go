package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateEmployeeID = errors.New("employee id already in use")
	ErrDuplicateUsername   = errors.New("username already in use")
)

// isUniqueViolation matches the uniqueness errors of both supported drivers:
// "UNIQUE constraint failed: ..." (sqlite) and SQLSTATE 23505 (postgres).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "23505")
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// internal/services/errors.go
package services

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Distinguished error kinds. Handlers map these onto HTTP statuses; the
// services wrap them with context via %w.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrVerification = errors.New("verification failed")
	ErrRateLimited  = errors.New("rate limited")
	ErrDependency   = errors.New("dependency failure")
)

// isForeignKeyViolation recognizes referential-constraint failures so a
// blocked delete can be reported as a conflict naming related records
// instead of a generic 500.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}

	// sqlite (tests) reports the same condition as a plain string
	return strings.Contains(err.Error(), "FOREIGN KEY constraint")
}

// isUniqueViolation recognizes duplicate-key failures for conflict
// responses on unique columns (store slug, client email/phone).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	return strings.Contains(err.Error(), "UNIQUE constraint")
}

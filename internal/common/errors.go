package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden access")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict") // e.g., email already registered
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation failed")
	ErrRateLimited    = errors.New("rate limited")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrRateLimited) {
		return http.StatusTooManyRequests
	}

	// Check for pgx specific errors (example for unique constraint)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ErrorCategory classifies raw provider/storage error text into a stable
// category so callers can decide on user-facing messaging in one place.
type ErrorCategory int

const (
	CategoryUnknown ErrorCategory = iota
	CategoryTransientAuth
	CategoryDuplicate
	CategoryMissingField
	CategoryRateLimit
)

// Categorize pattern-matches error text the way the storage and auth
// providers phrase it. Transient-auth errors are candidates for a silent
// session refresh and retry; the rest map to user-facing messages.
func Categorize(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "row-level security"),
		strings.Contains(msg, "policy"),
		strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "jwt"),
		strings.Contains(msg, "token expired"),
		strings.Contains(msg, "token has expired"):
		return CategoryTransientAuth
	case strings.Contains(msg, "duplicate"),
		strings.Contains(msg, "already exists"),
		strings.Contains(msg, "already registered"),
		strings.Contains(msg, "unique"):
		return CategoryDuplicate
	case strings.Contains(msg, "not null"),
		strings.Contains(msg, "null value"):
		return CategoryMissingField
	case strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "48 seconds"),
		strings.Contains(msg, "security purposes"):
		return CategoryRateLimit
	}
	return CategoryUnknown
}

// MissingFieldMessage names the specific required field a not-null failure
// complains about. Reported individually, never batched.
func MissingFieldMessage(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "full_name"), strings.Contains(msg, "full name"):
		return "Full Name is required"
	case strings.Contains(msg, "aadhaar"), strings.Contains(msg, "aadhaar_number"):
		return "Aadhaar Number is required"
	case strings.Contains(msg, "contact_number"), strings.Contains(msg, "phone"):
		return "Phone Number is required"
	case strings.Contains(msg, "address"):
		return "Full Address is required"
	}
	return "Please fill all required fields"
}

// Package errs holds the sentinel errors shared by the service layer and the
// HTTP handlers that translate them into responses.
package errs

import "errors"

var (
	// ErrValidation marks a request rejected before any store mutation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing post, user or notification.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an authenticated requester acting on a resource
	// they do not own.
	ErrForbidden = errors.New("forbidden")
)

// Code returns the machine-checkable category for an error.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	default:
		return "STORE_ERROR"
	}
}

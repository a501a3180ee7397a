package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrMissingAPIKey    = errors.New("classifier API key is not configured")
	ErrNotFound         = errors.New("not found")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")
	ErrStoreUnavailable = errors.New("store unavailable")
)

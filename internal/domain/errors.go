package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnknownTier        = errors.New("unknown plan tier")
	ErrQuotaExceeded      = errors.New("quota exceeded")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrProviderFailure    = errors.New("provider failure")
)

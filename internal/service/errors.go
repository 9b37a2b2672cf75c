package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL          = errors.New("URL should start with http:// or https://")
	ErrNotFound            = errors.New("short link not found")
	ErrForbidden           = errors.New("caller is not the creator of this short link")
	ErrGenerationExhausted = errors.New("could not allocate a unique short link id")
	ErrStoreUnavailable    = errors.New("short link store unavailable")
)

// storeError marks a persistence failure. The wrapped error stays reachable for logging.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}

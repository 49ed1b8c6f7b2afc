// Package repository persists the console's durable state into a kv.Store:
// one dataset per tenant, the single profile record and the onboarding flag.
//
// Read paths never fail: unavailable or corrupt content degrades to the
// built-in defaults and is logged. Write paths report ErrStorageExhausted
// when the backend is full and ErrPersistence for anything else.
package repository

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"business-console/internal/kv"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var (
	ErrStorageExhausted = errors.New("storage exhausted")
	ErrPersistence      = errors.New("persistence failed")
	ErrAnonymousTenant  = errors.New("tenant is required to save")
	ErrUnknownField     = errors.New("unknown dataset field")
	ErrInvalidField     = errors.New("invalid dataset field value")
	ErrProfileNotFound  = errors.New("profile not found")
)

// writeError classifies a failed kv write.
func writeError(err error) error {
	if errors.Is(err, kv.ErrQuotaExceeded) {
		return fmt.Errorf("%w: %w", ErrStorageExhausted, err)
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

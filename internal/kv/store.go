// Package kv is the durable key-value store the console persists into.
// Values are JSON text; each backend maps its own "missing" and "full"
// conditions onto ErrNotFound and ErrQuotaExceeded.
package kv

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("kv: key not found")
	ErrQuotaExceeded = errors.New("kv: storage quota exceeded")
)

// Store is shared by every component of one installation; each component
// only touches the keys it owns.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

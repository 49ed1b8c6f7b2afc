package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// FileStore keeps every entry in one JSON document on disk. Each mutation
// writes a new document next to the old one and renames it into place, so
// the file always holds a complete document. It is the default backend of a
// single installation.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	entries  map[string]string
	maxBytes int
}

// OpenFileStore opens or creates path. maxBytes > 0 caps the size of the
// document; a write that would exceed it fails with ErrQuotaExceeded. A
// document that cannot be decoded is moved to path + ".corrupt" and the store
// starts empty.
func OpenFileStore(path string, maxBytes int) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &FileStore{path: path, entries: map[string]string{}, maxBytes: maxBytes}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases nothing; the document is not held open between writes.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() error {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(b) == 0) {
		return nil
	}
	if err != nil {
		return err
	}

	var entries map[string]string
	if err := json.Unmarshal(b, &entries); err != nil {
		aside := s.path + ".corrupt"
		if rerr := os.Rename(s.path, aside); rerr != nil {
			return fmt.Errorf("kv: decode %s: %v; move aside: %w", s.path, err, rerr)
		}
		logger.Error().Err(err).Msgf("Corrupt store %s moved to %s, starting empty", s.path, aside)
		return nil
	}
	if entries != nil {
		s.entries = entries
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	return s.withWrite(ctx, func(entries map[string]string) {
		entries[key] = string(value)
	})
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	return s.withWrite(ctx, func(entries map[string]string) {
		delete(entries, key)
	})
}

// withWrite applies fn to a copy, flushes it, and only then swaps it in, so
// a rejected write leaves the visible entries unchanged.
func (s *FileStore) withWrite(ctx context.Context, fn func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	next := make(map[string]string, len(s.entries)+1)
	for k, v := range s.entries {
		next[k] = v
	}
	fn(next)

	b, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return err
	}
	if s.maxBytes > 0 && len(b) > s.maxBytes {
		return ErrQuotaExceeded
	}
	if err := s.flushLocked(b); err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		return err
	}
	s.entries = next
	return nil
}

// flushLocked writes b to a temporary file in the same directory and renames
// it over the document.
func (s *FileStore) flushLocked(b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Package kv provides the persistent string-keyed document store the
// application state lives in. Each logical document is one JSON blob under
// one key; there is no transaction spanning multiple keys, so callers keep
// whatever atomicity they need inside a single document.
package kv

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Document keys for the two persisted state documents.
const (
	UsersKey   = "ft_users"
	SessionKey = "ft_currentUser"
)

// Store is a synchronous key-value store holding raw document bytes.
type Store interface {
	// Get returns the value stored under key, and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set replaces the value under key. Writes are whole-document and
	// last-write-wins; there is no merge.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Load reads and decodes the JSON document under key into a value of type T.
// An absent key, a storage error, or a decode failure all degrade to the
// fallback; nothing is surfaced to the caller.
func Load[T any](ctx context.Context, s Store, key string, fallback T) T {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "Store read failed, using fallback", "key", key, "error", err)
		return fallback
	}
	if !ok {
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.WarnContext(ctx, "Stored document is not valid JSON, using fallback", "key", key, "error", err)
		return fallback
	}
	return v
}

// Save encodes v as JSON and writes it under key, replacing the whole
// document.
func Save[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}

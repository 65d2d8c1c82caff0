// Package db defines the storage row types and the narrow store interfaces
// the services depend on. The pkg/postgres package implements them.
package db

import "errors"

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// ErrStale is returned when a guarded update loses a race: the record was
// changed by someone else after it was read. Callers should reload and retry
// or surface the collision.
var ErrStale = errors.New("record was modified since it was read")

// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package storage defines the atomic key-value interface the job cache
// runs on. Every backend serializes Update calls per key, which is what
// makes ticket grant and revision bump sequences linearizable.
package storage

import (
	"context"
	"errors"

	"github.com/zeebo/errs"
)

// Error is the default storage error class.
var Error = errs.Class("storage")

// ErrKeyNotFound reports a lookup for a missing key.
var ErrKeyNotFound = errs.Class("key not found")

// ErrEmptyKey is returned when an operation is called with an empty key.
var ErrEmptyKey = errs.Class("empty key")

// ErrUnchanged may be returned from an UpdateFunc to abort the update
// and leave the store untouched. Update then returns the current value
// with no error.
var ErrUnchanged = errors.New("value unchanged")

// Key is the type for store keys.
type Key string

// Value is the type for stored values.
type Value []byte

// Clone makes a copy that does not alias the original.
func (value Value) Clone() Value {
	if value == nil {
		return nil
	}
	return append(Value{}, value...)
}

// UpdateFunc computes the replacement for a value. It receives the
// current value, nil when the key is absent, and must not retain or
// modify it. Returning a nil replacement deletes the key.
type UpdateFunc func(current Value) (Value, error)

// Store is an atomic key-value store.
type Store interface {
	// Get returns the value stored at key, ErrKeyNotFound when absent.
	Get(ctx context.Context, key Key) (Value, error)

	// Update atomically transforms the value stored at key through fn
	// and returns the replacement. No concurrent Update on the same key
	// observes an intermediate state.
	Update(ctx context.Context, key Key, fn UpdateFunc) (Value, error)

	// Delete removes the key, ErrKeyNotFound when absent.
	Delete(ctx context.Context, key Key) error

	// Iterate visits a snapshot of every entry in unspecified order.
	// Returning an error from fn stops the iteration and is passed
	// through.
	Iterate(ctx context.Context, fn func(key Key, value Value) error) error

	// Close releases the backend.
	Close() error
}

// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package storelogger wraps a Store with debug logging.
package storelogger

import (
	"context"
	"strconv"
	"sync/atomic"

	"go.uber.org/zap"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"trac.io/trac/storage"
)

var mon = monkit.Package()

var id int64

// Logger implements a zap.Logger wrapper for storage.Store.
type Logger struct {
	log   *zap.Logger
	store storage.Store
}

// New creates a new Logger with log and store.
func New(log *zap.Logger, store storage.Store) *Logger {
	loggerid := atomic.AddInt64(&id, 1)
	name := strconv.Itoa(int(loggerid))
	return &Logger{log.Named(name), store}
}

// Get gets a value from the store.
func (store *Logger) Get(ctx context.Context, key storage.Key) (_ storage.Value, err error) {
	defer mon.Task()(&ctx)(&err)
	store.log.Debug("Get", zap.String("key", string(key)))
	return store.store.Get(ctx, key)
}

// Update atomically transforms a value in the store.
func (store *Logger) Update(ctx context.Context, key storage.Key, fn storage.UpdateFunc) (_ storage.Value, err error) {
	defer mon.Task()(&ctx)(&err)
	value, err := store.store.Update(ctx, key, fn)
	store.log.Debug("Update", zap.String("key", string(key)),
		zap.Int("value length", len(value)), zap.Error(err))
	return value, err
}

// Delete deletes a key and value from the store.
func (store *Logger) Delete(ctx context.Context, key storage.Key) (err error) {
	defer mon.Task()(&ctx)(&err)
	store.log.Debug("Delete", zap.String("key", string(key)))
	return store.store.Delete(ctx, key)
}

// Iterate visits every entry in the store.
func (store *Logger) Iterate(ctx context.Context, fn func(key storage.Key, value storage.Value) error) (err error) {
	defer mon.Task()(&ctx)(&err)
	store.log.Debug("Iterate")
	return store.store.Iterate(ctx, func(key storage.Key, value storage.Value) error {
		store.log.Debug("  ", zap.String("key", string(key)), zap.Int("value length", len(value)))
		return fn(key, value)
	})
}

// Close closes the store.
func (store *Logger) Close() error {
	store.log.Debug("Close")
	return store.store.Close()
}

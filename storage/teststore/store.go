// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package teststore implements an in-memory Store.
package teststore

import (
	"context"
	"sync"

	"trac.io/trac/storage"
)

// Client implements an in-memory key value store.
type Client struct {
	mu    sync.Mutex
	items map[storage.Key]storage.Value

	CallCount struct {
		Get     int
		Update  int
		Delete  int
		Iterate int
		Close   int
	}

	version int
}

// New creates a new in-memory key-value store.
func New() *Client {
	return &Client{items: map[storage.Key]storage.Value{}}
}

// Version returns the number of mutations applied so far.
func (store *Client) Version() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.version
}

// Get gets a value from the store.
func (store *Client) Get(ctx context.Context, key storage.Key) (storage.Value, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.CallCount.Get++

	if key == "" {
		return nil, storage.ErrEmptyKey.New("")
	}
	value, ok := store.items[key]
	if !ok {
		return nil, storage.ErrKeyNotFound.New("%q", key)
	}
	return value.Clone(), nil
}

// Update atomically transforms the value at key.
func (store *Client) Update(ctx context.Context, key storage.Key, fn storage.UpdateFunc) (storage.Value, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.CallCount.Update++

	if key == "" {
		return nil, storage.ErrEmptyKey.New("")
	}
	current := store.items[key]
	next, err := fn(current.Clone())
	if err == storage.ErrUnchanged {
		return current.Clone(), nil
	}
	if err != nil {
		return nil, err
	}

	store.version++
	if next == nil {
		delete(store.items, key)
		return nil, nil
	}
	store.items[key] = next.Clone()
	return next, nil
}

// Delete deletes key and the value.
func (store *Client) Delete(ctx context.Context, key storage.Key) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.CallCount.Delete++

	if key == "" {
		return storage.ErrEmptyKey.New("")
	}
	if _, ok := store.items[key]; !ok {
		return storage.ErrKeyNotFound.New("%q", key)
	}
	store.version++
	delete(store.items, key)
	return nil
}

// Iterate visits a snapshot of all entries.
func (store *Client) Iterate(ctx context.Context, fn func(key storage.Key, value storage.Value) error) error {
	store.mu.Lock()
	store.CallCount.Iterate++
	snapshot := make(map[storage.Key]storage.Value, len(store.items))
	for key, value := range store.items {
		snapshot[key] = value.Clone()
	}
	store.mu.Unlock()

	for key, value := range snapshot {
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the store.
func (store *Client) Close() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.CallCount.Close++
	return nil
}

// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package boltdb implements a Store over a single bolt file.
package boltdb

import (
	"context"
	"time"

	"github.com/boltdb/bolt"
	"github.com/zeebo/errs"

	"trac.io/trac/storage"
)

const (
	// fileMode sets permissions so only the owner can read and write.
	fileMode       = 0600
	defaultTimeout = 1 * time.Second
)

// Client is the storage interface for the Bolt database.
type Client struct {
	db     *bolt.DB
	Path   string
	Bucket []byte
}

// New instantiates a new BoltDB client given a file path and a bucket name.
func New(path, bucket string) (*Client, error) {
	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: defaultTimeout})
	if err != nil {
		return nil, storage.Error.Wrap(err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		return nil, storage.Error.Wrap(errs.Combine(err, db.Close()))
	}

	return &Client{
		db:     db,
		Path:   path,
		Bucket: []byte(bucket),
	}, nil
}

// Get gets a value from the store.
func (client *Client) Get(ctx context.Context, key storage.Key) (_ storage.Value, err error) {
	if key == "" {
		return nil, storage.ErrEmptyKey.New("")
	}
	var value storage.Value
	err = client.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(client.Bucket).Get([]byte(key))
		if data == nil {
			return storage.ErrKeyNotFound.New("%q", key)
		}
		value = storage.Value(data).Clone()
		return nil
	})
	return value, err
}

// Update atomically transforms the value at key inside one bolt write
// transaction. Bolt serializes writers globally, which is stricter than
// the per-key contract requires.
func (client *Client) Update(ctx context.Context, key storage.Key, fn storage.UpdateFunc) (_ storage.Value, err error) {
	if key == "" {
		return nil, storage.ErrEmptyKey.New("")
	}
	var next storage.Value
	err = client.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(client.Bucket)
		current := storage.Value(bucket.Get([]byte(key))).Clone()

		var err error
		next, err = fn(current)
		if err == storage.ErrUnchanged {
			next = current
			return nil
		}
		if err != nil {
			return err
		}
		if next == nil {
			return bucket.Delete([]byte(key))
		}
		return bucket.Put([]byte(key), next)
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Delete deletes a key/value pair from the store.
func (client *Client) Delete(ctx context.Context, key storage.Key) error {
	if key == "" {
		return storage.ErrEmptyKey.New("")
	}
	return client.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(client.Bucket)
		if bucket.Get([]byte(key)) == nil {
			return storage.ErrKeyNotFound.New("%q", key)
		}
		return bucket.Delete([]byte(key))
	})
}

// Iterate visits all entries inside one read transaction.
func (client *Client) Iterate(ctx context.Context, fn func(key storage.Key, value storage.Value) error) error {
	return client.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(client.Bucket).ForEach(func(k, v []byte) error {
			return fn(storage.Key(k), storage.Value(v).Clone())
		})
	})
}

// Close closes a BoltDB client.
func (client *Client) Close() error {
	return storage.Error.Wrap(client.db.Close())
}

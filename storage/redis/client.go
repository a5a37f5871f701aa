// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package redis implements a Store over a redis instance. Atomic updates
// use WATCH/MULTI optimistic transactions.
package redis

import (
	"context"
	"math/rand"
	"net/url"
	"strconv"
	"time"

	"github.com/go-redis/redis"
	"github.com/zeebo/errs"

	"trac.io/trac/storage"
)

// Error is the error class for the redis store.
var Error = errs.Class("redis")

// txRetries bounds how often an interfered WATCH transaction is retried
// before the conflict is reported.
const txRetries = 64

// Client is the entrypoint into Redis.
type Client struct {
	db *redis.Client
}

// New returns a configured Client instance, verifying a successful
// connection to redis.
func New(address, password string, db int) (*Client, error) {
	client := &Client{
		db: redis.NewClient(&redis.Options{
			Addr:     address,
			Password: password,
			DB:       db,
		}),
	}
	if err := client.db.Ping().Err(); err != nil {
		return nil, Error.New("ping failed: %v", err)
	}
	return client, nil
}

// NewFromURL returns a configured Client instance from a redis address
// of the form redis://host:port?db=n.
func NewFromURL(address string) (*Client, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if u.Scheme != "redis" {
		return nil, Error.New("scheme %q not supported", u.Scheme)
	}
	db := 0
	if dbs := u.Query().Get("db"); dbs != "" {
		db, err = strconv.Atoi(dbs)
		if err != nil {
			return nil, Error.New("invalid db %q", dbs)
		}
	}
	password, _ := u.User.Password()
	return New(u.Host, password, db)
}

// Get looks up the provided key from redis.
func (client *Client) Get(ctx context.Context, key storage.Key) (storage.Value, error) {
	if key == "" {
		return nil, storage.ErrEmptyKey.New("")
	}
	value, err := client.db.Get(string(key)).Bytes()
	if err == redis.Nil {
		return nil, storage.ErrKeyNotFound.New("%q", key)
	}
	if err != nil {
		return nil, Error.New("get error: %v", err)
	}
	return value, nil
}

// Update runs fn inside a WATCH/MULTI transaction on key, retrying a
// bounded number of times when a concurrent writer interferes.
func (client *Client) Update(ctx context.Context, key storage.Key, fn storage.UpdateFunc) (storage.Value, error) {
	if key == "" {
		return nil, storage.ErrEmptyKey.New("")
	}

	var next storage.Value
	txn := func(tx *redis.Tx) error {
		current, err := tx.Get(string(key)).Bytes()
		if err == redis.Nil {
			current = nil
		} else if err != nil {
			return Error.New("get error: %v", err)
		}

		next, err = fn(storage.Value(current))
		if err == storage.ErrUnchanged {
			next = current
			return nil
		}
		if err != nil {
			return err
		}

		_, err = tx.Pipelined(func(pipe redis.Pipeliner) error {
			if next == nil {
				pipe.Del(string(key))
			} else {
				pipe.Set(string(key), []byte(next), 0)
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < txRetries; attempt++ {
		if attempt > 0 {
			// jittered backoff, many writers hammering the same
			// key otherwise livelock each other until the client
			// read timeout trips
			if err := sleep(ctx, time.Duration(rand.Int63n(int64(attempt)*int64(time.Millisecond)))); err != nil {
				return nil, err
			}
		}
		err := client.db.Watch(txn, string(key))
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, err
		}
		return next, nil
	}
	return nil, Error.New("update of %q interfered with %d times", key, txRetries)
}

func sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Delete deletes a key/value pair from redis.
func (client *Client) Delete(ctx context.Context, key storage.Key) error {
	if key == "" {
		return storage.ErrEmptyKey.New("")
	}
	deleted, err := client.db.Del(string(key)).Result()
	if err != nil {
		return Error.New("delete error: %v", err)
	}
	if deleted == 0 {
		return storage.ErrKeyNotFound.New("%q", key)
	}
	return nil
}

// Iterate scans all keys in the database.
func (client *Client) Iterate(ctx context.Context, fn func(key storage.Key, value storage.Value) error) error {
	var cursor uint64
	for {
		keys, next, err := client.db.Scan(cursor, "", 100).Result()
		if err != nil {
			return Error.New("scan error: %v", err)
		}
		for _, key := range keys {
			value, err := client.db.Get(key).Bytes()
			if err == redis.Nil {
				// deleted between scan and get
				continue
			}
			if err != nil {
				return Error.New("get error: %v", err)
			}
			if err := fn(storage.Key(key), value); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close closes a redis client.
func (client *Client) Close() error {
	return Error.Wrap(client.db.Close())
}

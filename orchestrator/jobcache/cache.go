// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package jobcache is a ticketed, revisioned cache for orchestrator job
// state. Every mutation happens inside a single atomic store update, so
// entries stay linearizable per key on every backend. Tickets make the
// scan loop safe to run concurrently and re-entrant after a crash:
// whoever holds a live ticket owns the entry, everyone else backs off.
package jobcache

import (
	"context"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
	"trac.io/trac/storage"
)

var (
	mon = monkit.Package()

	// Error is the default jobcache error class.
	Error = errs.Class("jobcache")
)

// Entry is one cache slot as seen by callers.
type Entry struct {
	Key          string
	Revision     int64
	Status       string
	Value        []byte
	LastActivity time.Time
}

// Cache is the ticketed job state cache.
type Cache struct {
	log   *zap.Logger
	store storage.Store

	now func() time.Time
}

// New creates a cache over the given store.
func New(log *zap.Logger, store storage.Store) *Cache {
	return &Cache{log: log, store: store, now: time.Now}
}

// TestingSetNow overrides the clock.
func (cache *Cache) TestingSetNow(now func() time.Time) { cache.now = now }

// Close closes the underlying store.
func (cache *Cache) Close() error { return cache.store.Close() }

// OpenNewTicket grants a ticket for creating an entry that does not
// exist yet. A reservation is written so concurrent creators lose.
// Losing returns the superseded sentinel, not an error.
func (cache *Cache) OpenNewTicket(ctx context.Context, key string, duration time.Duration) (_ Ticket, err error) {
	defer mon.Task()(&ctx)(&err)
	now := cache.now()
	ticket := Ticket{
		key:       key,
		revision:  0,
		grantTime: now,
		expiry:    now.Add(clampDuration(duration)),
	}

	_, err = cache.store.Update(ctx, storage.Key(key), func(current storage.Value) (storage.Value, error) {
		if current != nil {
			stored, err := decodeEntry(current)
			if err != nil {
				return nil, err
			}
			// an expired reservation can be taken over, anything else
			// means the key is taken
			if stored.Revision != 0 || ticketLive(stored.Ticket, now) {
				return nil, errSuperseded
			}
		}
		return encodeEntry(&pb.CacheEntry{
			Key:    key,
			Ticket: wireTicket(ticket),
		})
	})
	if err == errSuperseded {
		return SupersededTicket(key), nil
	}
	if err != nil {
		return Ticket{}, err
	}
	return ticket, nil
}

// OpenTicket grants a ticket against an existing entry at the observed
// revision. A newer revision or a live foreign ticket returns the
// superseded sentinel, a missing entry the missing sentinel.
func (cache *Cache) OpenTicket(ctx context.Context, key string, revision int64, duration time.Duration) (_ Ticket, err error) {
	defer mon.Task()(&ctx)(&err)
	now := cache.now()
	ticket := Ticket{
		key:       key,
		revision:  revision,
		grantTime: now,
		expiry:    now.Add(clampDuration(duration)),
	}

	_, err = cache.store.Update(ctx, storage.Key(key), func(current storage.Value) (storage.Value, error) {
		if current == nil {
			return nil, errMissing
		}
		stored, err := decodeEntry(current)
		if err != nil {
			return nil, err
		}
		if stored.Revision != revision || ticketLive(stored.Ticket, now) {
			return nil, errSuperseded
		}
		stored.Ticket = wireTicket(ticket)
		return encodeEntry(stored)
	})
	switch err {
	case errMissing:
		return MissingTicket(key), nil
	case errSuperseded:
		return SupersededTicket(key), nil
	case nil:
		return ticket, nil
	}
	return Ticket{}, err
}

// CloseTicket releases a ticket. Closing a sentinel, an expired ticket
// or a ticket whose entry is gone is a no-op.
func (cache *Cache) CloseTicket(ctx context.Context, ticket Ticket) (err error) {
	defer mon.Task()(&ctx)(&err)
	if ticket.Superseded() || ticket.Missing() {
		return nil
	}
	_, err = cache.store.Update(ctx, storage.Key(ticket.key), func(current storage.Value) (storage.Value, error) {
		if current == nil {
			return nil, storage.ErrUnchanged
		}
		stored, err := decodeEntry(current)
		if err != nil {
			return nil, err
		}
		if !sameTicket(stored.Ticket, ticket) {
			return nil, storage.ErrUnchanged
		}
		if stored.Revision == 0 {
			// releasing an unused reservation deletes it
			return nil, nil
		}
		stored.Ticket = nil
		return encodeEntry(stored)
	})
	return err
}

// AddEntry writes the first revision of an entry under a ticket granted
// by OpenNewTicket.
func (cache *Cache) AddEntry(ctx context.Context, ticket Ticket, status string, value []byte) (_ Entry, err error) {
	defer mon.Task()(&ctx)(&err)
	now := cache.now()
	if !ticket.Held(now) {
		return Entry{}, trac.ErrCacheTicket.New("add %q: ticket not held", ticket.key)
	}

	var entry Entry
	_, err = cache.store.Update(ctx, storage.Key(ticket.key), func(current storage.Value) (storage.Value, error) {
		if current == nil {
			return nil, trac.ErrCacheTicket.New("add %q: reservation is gone", ticket.key)
		}
		stored, err := decodeEntry(current)
		if err != nil {
			return nil, err
		}
		if stored.Revision != 0 {
			return nil, trac.ErrAlreadyExists.New("cache entry %q", ticket.key)
		}
		if !sameTicket(stored.Ticket, ticket) {
			return nil, trac.ErrCacheTicket.New("add %q: reservation held by another ticket", ticket.key)
		}
		stored.Revision = 1
		stored.Status = status
		stored.Value = value
		stored.LastActivityMicros = micros(now)
		entry = callerEntry(stored)
		return encodeEntry(stored)
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// UpdateEntry commits the next revision of an entry under a held
// ticket.
func (cache *Cache) UpdateEntry(ctx context.Context, ticket Ticket, status string, value []byte) (_ Entry, err error) {
	defer mon.Task()(&ctx)(&err)
	now := cache.now()
	if !ticket.Held(now) {
		return Entry{}, trac.ErrCacheTicket.New("update %q: ticket not held", ticket.key)
	}

	var entry Entry
	_, err = cache.store.Update(ctx, storage.Key(ticket.key), func(current storage.Value) (storage.Value, error) {
		stored, err := heldEntry(current, ticket)
		if err != nil {
			return nil, err
		}
		stored.Revision++
		stored.Status = status
		stored.Value = value
		stored.LastActivityMicros = micros(now)
		entry = callerEntry(stored)
		return encodeEntry(stored)
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// RemoveEntry deletes an entry under a held ticket.
func (cache *Cache) RemoveEntry(ctx context.Context, ticket Ticket) (err error) {
	defer mon.Task()(&ctx)(&err)
	if !ticket.Held(cache.now()) {
		return trac.ErrCacheTicket.New("remove %q: ticket not held", ticket.key)
	}
	_, err = cache.store.Update(ctx, storage.Key(ticket.key), func(current storage.Value) (storage.Value, error) {
		if _, err := heldEntry(current, ticket); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// GetEntry reads an entry under a held ticket.
func (cache *Cache) GetEntry(ctx context.Context, ticket Ticket) (_ Entry, err error) {
	defer mon.Task()(&ctx)(&err)
	if !ticket.Held(cache.now()) {
		return Entry{}, trac.ErrCacheTicket.New("get %q: ticket not held", ticket.key)
	}
	value, err := cache.store.Get(ctx, storage.Key(ticket.key))
	if storage.ErrKeyNotFound.Has(err) {
		return Entry{}, trac.ErrCacheNotFound.New("%q", ticket.key)
	}
	if err != nil {
		return Entry{}, err
	}
	stored, err := heldEntry(value, ticket)
	if err != nil {
		return Entry{}, err
	}
	if stored.Revision == 0 {
		return Entry{}, trac.ErrCacheNotFound.New("%q is only reserved", ticket.key)
	}
	return callerEntry(stored), nil
}

// GetEntryAtRevision reads an entry expecting a specific revision.
func (cache *Cache) GetEntryAtRevision(ctx context.Context, key string, revision int64) (_ Entry, err error) {
	defer mon.Task()(&ctx)(&err)
	entry, err := cache.GetLatestEntry(ctx, key)
	if err != nil {
		return Entry{}, err
	}
	if entry.Revision != revision {
		return Entry{}, trac.ErrVersionConflict.New("cache entry %q is at revision %d, wanted %d",
			key, entry.Revision, revision)
	}
	return entry, nil
}

// GetLatestEntry reads whatever revision of an entry is current.
func (cache *Cache) GetLatestEntry(ctx context.Context, key string) (_ Entry, err error) {
	defer mon.Task()(&ctx)(&err)
	value, err := cache.store.Get(ctx, storage.Key(key))
	if storage.ErrKeyNotFound.Has(err) {
		return Entry{}, trac.ErrCacheNotFound.New("%q", key)
	}
	if err != nil {
		return Entry{}, err
	}
	stored, err := decodeEntry(value)
	if err != nil {
		return Entry{}, err
	}
	if stored.Revision == 0 {
		return Entry{}, trac.ErrCacheNotFound.New("%q is only reserved", key)
	}
	return callerEntry(stored), nil
}

// QueryStatus returns a snapshot of entries in any of the given
// statuses. Entries under a live ticket are skipped unless
// includeOpenTickets is set: someone is already working on those.
func (cache *Cache) QueryStatus(ctx context.Context, statuses []string, includeOpenTickets bool) (_ []Entry, err error) {
	defer mon.Task()(&ctx)(&err)
	now := cache.now()
	wanted := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		wanted[status] = true
	}

	var entries []Entry
	err = cache.store.Iterate(ctx, func(key storage.Key, value storage.Value) error {
		stored, err := decodeEntry(value)
		if err != nil {
			return err
		}
		if stored.Revision == 0 || !wanted[stored.Status] {
			return nil
		}
		if !includeOpenTickets && ticketLive(stored.Ticket, now) {
			return nil
		}
		entries = append(entries, callerEntry(stored))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// control-flow sentinels for Update closures
var (
	errSuperseded = errs.New("superseded")
	errMissing    = errs.New("missing")
)

// heldEntry decodes current and verifies the presented ticket owns it.
func heldEntry(current storage.Value, ticket Ticket) (*pb.CacheEntry, error) {
	if current == nil {
		return nil, trac.ErrCacheNotFound.New("%q", ticket.key)
	}
	stored, err := decodeEntry(current)
	if err != nil {
		return nil, err
	}
	if !sameTicket(stored.Ticket, ticket) {
		return nil, trac.ErrCacheTicket.New("%q: entry held by another ticket", ticket.key)
	}
	return stored, nil
}

func callerEntry(stored *pb.CacheEntry) Entry {
	return Entry{
		Key:          stored.Key,
		Revision:     stored.Revision,
		Status:       stored.Status,
		Value:        stored.Value,
		LastActivity: fromMicros(stored.LastActivityMicros),
	}
}

func decodeEntry(value storage.Value) (*pb.CacheEntry, error) {
	entry := &pb.CacheEntry{}
	if err := proto.Unmarshal(value, entry); err != nil {
		return nil, Error.Wrap(err)
	}
	return entry, nil
}

func encodeEntry(entry *pb.CacheEntry) (storage.Value, error) {
	data, err := proto.Marshal(entry)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return data, nil
}

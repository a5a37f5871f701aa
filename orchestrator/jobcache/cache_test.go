// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package jobcache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"trac.io/trac/internal/testcontext"
	"trac.io/trac/orchestrator/jobcache"
	"trac.io/trac/pkg/trac"
	"trac.io/trac/storage/teststore"
)

func newTestCache(t *testing.T) (*jobcache.Cache, *testClock) {
	cache := jobcache.New(zaptest.NewLogger(t), teststore.New())
	clock := &testClock{now: time.Date(2019, 7, 12, 10, 0, 0, 0, time.UTC)}
	cache.TestingSetNow(clock.Now)
	return cache, clock
}

type testClock struct{ now time.Time }

func (clock *testClock) Now() time.Time              { return clock.now }
func (clock *testClock) Advance(delta time.Duration) { clock.now = clock.now.Add(delta) }

func TestCreateFlow(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	cache, _ := newTestCache(t)
	defer ctx.Check(cache.Close)

	ticket, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	require.False(t, ticket.Superseded())
	require.False(t, ticket.Missing())

	// reserved keys are not readable yet
	_, err = cache.GetLatestEntry(ctx, "job-1")
	require.True(t, trac.ErrCacheNotFound.Has(err))

	entry, err := cache.AddEntry(ctx, ticket, "CREATED", []byte("payload"))
	require.NoError(t, err)
	require.Equal(t, int64(1), entry.Revision)
	require.Equal(t, "CREATED", entry.Status)
	require.NoError(t, cache.CloseTicket(ctx, ticket))

	latest, err := cache.GetLatestEntry(ctx, "job-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), latest.Revision)
	require.Equal(t, []byte("payload"), latest.Value)
}

func TestOpenNewTicketCompetingCreators(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	cache, _ := newTestCache(t)
	defer ctx.Check(cache.Close)

	first, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	require.False(t, first.Superseded())

	// the loser gets a sentinel, not an error
	second, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	require.True(t, second.Superseded())
	require.False(t, second.Held(time.Now()))

	// the key stays taken after the entry exists
	_, err = cache.AddEntry(ctx, first, "CREATED", nil)
	require.NoError(t, err)
	require.NoError(t, cache.CloseTicket(ctx, first))

	third, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	require.True(t, third.Superseded())
}

func TestOpenNewTicketExpiredReservation(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	cache, clock := newTestCache(t)
	defer ctx.Check(cache.Close)

	stale, err := cache.OpenNewTicket(ctx, "job-1", time.Second)
	require.NoError(t, err)
	require.False(t, stale.Superseded())

	clock.Advance(2 * time.Second)
	require.False(t, stale.Held(clock.Now()))

	// an abandoned reservation can be taken over
	fresh, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	require.False(t, fresh.Superseded())

	// the stale ticket no longer writes
	_, err = cache.AddEntry(ctx, stale, "CREATED", nil)
	require.True(t, trac.ErrCacheTicket.Has(err))

	_, err = cache.AddEntry(ctx, fresh, "CREATED", nil)
	require.NoError(t, err)
}

func TestCloseTicketDeletesUnusedReservation(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	cache, _ := newTestCache(t)
	defer ctx.Check(cache.Close)

	ticket, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	require.NoError(t, cache.CloseTicket(ctx, ticket))

	// the key is free again
	again, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	require.False(t, again.Superseded())
}

func TestOpenTicketSentinels(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	cache, _ := newTestCache(t)
	defer ctx.Check(cache.Close)

	missing, err := cache.OpenTicket(ctx, "absent", 1, 0)
	require.NoError(t, err)
	require.True(t, missing.Missing())
	require.False(t, missing.Held(time.Now()))

	creator, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	_, err = cache.AddEntry(ctx, creator, "CREATED", nil)
	require.NoError(t, err)

	// creator still holds a live ticket
	blocked, err := cache.OpenTicket(ctx, "job-1", 1, 0)
	require.NoError(t, err)
	require.True(t, blocked.Superseded())

	require.NoError(t, cache.CloseTicket(ctx, creator))

	// wrong revision loses even with no live ticket
	stale, err := cache.OpenTicket(ctx, "job-1", 7, 0)
	require.NoError(t, err)
	require.True(t, stale.Superseded())

	ticket, err := cache.OpenTicket(ctx, "job-1", 1, 0)
	require.NoError(t, err)
	require.False(t, ticket.Superseded())
	require.NoError(t, cache.CloseTicket(ctx, ticket))
}

func TestUpdateEntry(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	cache, _ := newTestCache(t)
	defer ctx.Check(cache.Close)

	creator, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	_, err = cache.AddEntry(ctx, creator, "CREATED", []byte("v1"))
	require.NoError(t, err)

	entry, err := cache.UpdateEntry(ctx, creator, "VALIDATED", []byte("v2"))
	require.NoError(t, err)
	require.Equal(t, int64(2), entry.Revision)
	require.Equal(t, "VALIDATED", entry.Status)
	require.NoError(t, cache.CloseTicket(ctx, creator))

	// updates through a ticket granted at the current revision
	ticket, err := cache.OpenTicket(ctx, "job-1", 2, 0)
	require.NoError(t, err)
	entry, err = cache.UpdateEntry(ctx, ticket, "QUEUED", []byte("v3"))
	require.NoError(t, err)
	require.Equal(t, int64(3), entry.Revision)

	// a foreign ticket forged from an old grant cannot write
	_, err = cache.UpdateEntry(ctx, creator, "FAILED", nil)
	require.True(t, trac.ErrCacheTicket.Has(err))

	require.NoError(t, cache.CloseTicket(ctx, ticket))
}

func TestRemoveEntry(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	cache, _ := newTestCache(t)
	defer ctx.Check(cache.Close)

	creator, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	_, err = cache.AddEntry(ctx, creator, "COMPLETED", nil)
	require.NoError(t, err)
	require.NoError(t, cache.RemoveEntry(ctx, creator))

	_, err = cache.GetLatestEntry(ctx, "job-1")
	require.True(t, trac.ErrCacheNotFound.Has(err))

	// removal frees the key for a new creation
	again, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	require.False(t, again.Superseded())
	require.NoError(t, cache.CloseTicket(ctx, again))
}

func TestGetEntryModes(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	cache, _ := newTestCache(t)
	defer ctx.Check(cache.Close)

	creator, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)

	// a ticketed read of a reservation finds nothing yet
	_, err = cache.GetEntry(ctx, creator)
	require.True(t, trac.ErrCacheNotFound.Has(err))

	_, err = cache.AddEntry(ctx, creator, "CREATED", []byte("payload"))
	require.NoError(t, err)

	entry, err := cache.GetEntry(ctx, creator)
	require.NoError(t, err)
	require.Equal(t, int64(1), entry.Revision)

	entry, err = cache.GetEntryAtRevision(ctx, "job-1", 1)
	require.NoError(t, err)
	require.Equal(t, "CREATED", entry.Status)

	_, err = cache.GetEntryAtRevision(ctx, "job-1", 4)
	require.True(t, trac.ErrVersionConflict.Has(err))

	require.NoError(t, cache.CloseTicket(ctx, creator))

	// a read through a ticket another holder superseded fails
	ticket, err := cache.OpenTicket(ctx, "job-1", 1, 0)
	require.NoError(t, err)
	_, err = cache.UpdateEntry(ctx, ticket, "VALIDATED", nil)
	require.NoError(t, err)
	require.NoError(t, cache.CloseTicket(ctx, ticket))
	_, err = cache.GetEntry(ctx, ticket)
	require.True(t, trac.ErrCacheTicket.Has(err))
}

func TestTicketExpiry(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	cache, clock := newTestCache(t)
	defer ctx.Check(cache.Close)

	creator, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	_, err = cache.AddEntry(ctx, creator, "CREATED", nil)
	require.NoError(t, err)
	require.NoError(t, cache.CloseTicket(ctx, creator))

	ticket, err := cache.OpenTicket(ctx, "job-1", 1, time.Second)
	require.NoError(t, err)
	require.True(t, ticket.Held(clock.Now()))

	clock.Advance(2 * time.Second)
	require.False(t, ticket.Held(clock.Now()))

	_, err = cache.UpdateEntry(ctx, ticket, "VALIDATED", nil)
	require.True(t, trac.ErrCacheTicket.Has(err))

	// the expired grant no longer blocks anyone
	fresh, err := cache.OpenTicket(ctx, "job-1", 1, 0)
	require.NoError(t, err)
	require.False(t, fresh.Superseded())
	require.NoError(t, cache.CloseTicket(ctx, fresh))
}

func TestQueryStatus(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	cache, _ := newTestCache(t)
	defer ctx.Check(cache.Close)

	add := func(key, status string) jobcache.Ticket {
		ticket, err := cache.OpenNewTicket(ctx, key, 0)
		require.NoError(t, err)
		_, err = cache.AddEntry(ctx, ticket, status, nil)
		require.NoError(t, err)
		return ticket
	}

	held := add("job-1", "QUEUED")
	require.NoError(t, cache.CloseTicket(ctx, add("job-2", "QUEUED")))
	require.NoError(t, cache.CloseTicket(ctx, add("job-3", "RUNNING")))
	require.NoError(t, cache.CloseTicket(ctx, add("job-4", "COMPLETED")))

	// reservations never show up
	reserved, err := cache.OpenNewTicket(ctx, "job-5", 0)
	require.NoError(t, err)

	entries, err := cache.QueryStatus(ctx, []string{"QUEUED", "RUNNING"}, false)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"job-2", "job-3"}, entryKeys(entries))

	// with open tickets included the held entry shows too
	entries, err = cache.QueryStatus(ctx, []string{"QUEUED", "RUNNING"}, true)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"job-1", "job-2", "job-3"}, entryKeys(entries))

	require.NoError(t, cache.CloseTicket(ctx, held))
	require.NoError(t, cache.CloseTicket(ctx, reserved))

	entries, err = cache.QueryStatus(ctx, []string{"QUEUED", "RUNNING"}, false)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"job-1", "job-2", "job-3"}, entryKeys(entries))
}

func TestConcurrentHolders(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	cache, _ := newTestCache(t)
	defer ctx.Check(cache.Close)

	creator, err := cache.OpenNewTicket(ctx, "job-1", 0)
	require.NoError(t, err)
	_, err = cache.AddEntry(ctx, creator, "QUEUED", nil)
	require.NoError(t, err)
	require.NoError(t, cache.CloseTicket(ctx, creator))

	// many workers race for the same revision, exactly one wins
	const workers = 8
	wins := make(chan jobcache.Ticket, workers)
	for i := 0; i < workers; i++ {
		ctx.Go(func() error {
			ticket, err := cache.OpenTicket(ctx, "job-1", 1, 0)
			if err != nil {
				return err
			}
			if !ticket.Superseded() {
				wins <- ticket
			}
			return nil
		})
	}
	require.NoError(t, ctx.Wait())
	close(wins)

	var winner jobcache.Ticket
	count := 0
	for ticket := range wins {
		winner, count = ticket, count+1
	}
	require.Equal(t, 1, count)

	entry, err := cache.UpdateEntry(ctx, winner, "RUNNING", nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), entry.Revision)
	require.NoError(t, cache.CloseTicket(ctx, winner))
}

func entryKeys(entries []jobcache.Entry) []string {
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, entry.Key)
	}
	return keys
}

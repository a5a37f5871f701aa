// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package jobs

import (
	"context"
	"time"

	"github.com/gogo/protobuf/proto"
	"go.uber.org/zap"

	"trac.io/trac/internal/sync2"
	"trac.io/trac/orchestrator/jobcache"
	"trac.io/trac/pkg/pb"
)

// Config is the job manager configuration.
type Config struct {
	Interval       time.Duration `help:"how often the cache is scanned for runnable jobs" default:"2s"`
	Concurrency    int           `help:"maximum concurrent job steps" default:"8"`
	TicketDuration time.Duration `help:"how long a job step may hold its cache ticket" default:"30s"`
	Watchdog       time.Duration `help:"fail jobs that make no progress for this long" default:"15m"`
}

// nonTerminal lists the cache statuses the scan picks up.
var nonTerminal = []string{
	pb.JobStatusCode_CREATED.String(),
	pb.JobStatusCode_VALIDATED.String(),
	pb.JobStatusCode_QUEUED.String(),
	pb.JobStatusCode_SUBMITTED.String(),
	pb.JobStatusCode_RUNNING.String(),
	pb.JobStatusCode_FINISHING.String(),
}

// Manager periodically scans the job cache and steps every runnable
// job under a ticket. Multiple managers can run against the same cache,
// tickets keep them from stepping the same job twice.
type Manager struct {
	log    *zap.Logger
	cache  *jobcache.Cache
	proc   *Processor
	config Config

	Loop    *sync2.Cycle
	limiter *sync2.Limiter

	now func() time.Time
}

// NewManager creates a manager.
func NewManager(log *zap.Logger, cache *jobcache.Cache, proc *Processor, config Config) *Manager {
	if config.Interval <= 0 {
		config.Interval = 2 * time.Second
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 8
	}
	if config.Watchdog <= 0 {
		config.Watchdog = 15 * time.Minute
	}
	return &Manager{
		log:     log,
		cache:   cache,
		proc:    proc,
		config:  config,
		Loop:    sync2.NewCycle(config.Interval),
		limiter: sync2.NewLimiter(config.Concurrency),
		now:     time.Now,
	}
}

// TestingSetNow overrides the clock.
func (manager *Manager) TestingSetNow(now func() time.Time) { manager.now = now }

// Run scans the cache until the context is done.
func (manager *Manager) Run(ctx context.Context) error {
	return manager.Loop.Run(ctx, manager.Scan)
}

// Close stops the scan loop.
func (manager *Manager) Close() error {
	manager.Loop.Close()
	return nil
}

// Scan runs one pass over the cache. Failures of individual jobs are
// logged, they never stop the loop.
func (manager *Manager) Scan(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)

	entries, err := manager.cache.QueryStatus(ctx, nonTerminal, false)
	if err != nil {
		manager.log.Warn("cache scan failed", zap.Error(err))
		return nil
	}

	for _, entry := range entries {
		entry := entry
		started := manager.limiter.Go(ctx, func() {
			manager.step(ctx, entry)
		})
		if !started {
			break
		}
	}
	manager.limiter.Wait()
	return nil
}

// step advances one job a single transition under a fresh ticket.
func (manager *Manager) step(ctx context.Context, entry jobcache.Entry) {
	now := manager.now()
	log := manager.log.With(zap.String("jobKey", entry.Key))

	state := &pb.JobState{}
	if err := proto.Unmarshal(entry.Value, state); err != nil {
		log.Error("undecodable job state", zap.Error(err))
		return
	}

	stalled := now.Sub(entry.LastActivity)
	if state.NextPollMicros > now.UnixNano()/1000 && stalled < manager.config.Watchdog {
		// still backing off from a transient failure
		return
	}

	ticket, err := manager.cache.OpenTicket(ctx, entry.Key, entry.Revision, manager.config.TicketDuration)
	if err != nil {
		log.Warn("ticket grant failed", zap.Error(err))
		return
	}
	if !ticket.Held(now) {
		// someone else moved the job first
		return
	}
	defer func() {
		if err := manager.cache.CloseTicket(ctx, ticket); err != nil {
			log.Warn("ticket close failed", zap.Error(err))
		}
	}()

	var remove bool
	if stalled >= manager.config.Watchdog {
		remove, err = manager.proc.Timeout(ctx, state, stalled)
	} else {
		remove, err = manager.proc.Step(ctx, state)
	}
	if err != nil {
		log.Warn("job step failed", zap.Error(err))
		return
	}

	if remove {
		if err := manager.cache.RemoveEntry(ctx, ticket); err != nil {
			log.Warn("entry removal failed", zap.Error(err))
		}
		return
	}

	data, err := proto.Marshal(state)
	if err != nil {
		log.Error("job state marshal failed", zap.Error(err))
		return
	}
	if _, err := manager.cache.UpdateEntry(ctx, ticket, state.StatusCode.String(), data); err != nil {
		log.Warn("entry update failed", zap.Error(err))
	}
}

// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package executor

import (
	"context"
	"math/rand"
	"time"
)

// Backoff computes bounded exponential delays for retrying transient
// runtime failures. The zero value uses the defaults.
type Backoff struct {
	Base       time.Duration // default 1s
	Cap        time.Duration // default 30s
	MaxRetries int           // default 5
}

func (backoff Backoff) base() time.Duration {
	if backoff.Base <= 0 {
		return time.Second
	}
	return backoff.Base
}

func (backoff Backoff) cap() time.Duration {
	if backoff.Cap <= 0 {
		return 30 * time.Second
	}
	return backoff.Cap
}

func (backoff Backoff) maxRetries() int {
	if backoff.MaxRetries <= 0 {
		return 5
	}
	return backoff.MaxRetries
}

// Exhausted reports whether retry is past the retry budget.
func (backoff Backoff) Exhausted(retry int) bool {
	return retry >= backoff.maxRetries()
}

// Delay returns the wait before attempt retry, jittered to half of the
// exponential step or more.
func (backoff Backoff) Delay(retry int) time.Duration {
	delay := backoff.base()
	for i := 0; i < retry && delay < backoff.cap(); i++ {
		delay *= 2
	}
	if delay > backoff.cap() {
		delay = backoff.cap()
	}
	return delay/2 + time.Duration(rand.Int63n(int64(delay/2)+1))
}

// Wait sleeps for the retry's delay or until the context is done.
func (backoff Backoff) Wait(ctx context.Context, retry int) error {
	timer := time.NewTimer(backoff.Delay(retry))
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

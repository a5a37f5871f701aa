// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information

package sync2

import (
	"sync"
)

// Fence allows to wait for something to happen.
type Fence struct {
	setup   sync.Once
	release sync.Once
	done    chan struct{}
}

// init sets up the initial lock into wait.
func (fence *Fence) init() {
	fence.setup.Do(func() {
		fence.done = make(chan struct{})
	})
}

// Release releases everyone from Wait.
func (fence *Fence) Release() {
	fence.init()
	fence.release.Do(func() { close(fence.done) })
}

// Wait waits for the fence to be released.
func (fence *Fence) Wait() {
	fence.init()
	<-fence.done
}

// Released returns whether the fence has been released.
func (fence *Fence) Released() bool {
	fence.init()
	select {
	case <-fence.done:
		return true
	default:
		return false
	}
}

// Done returns channel that will be closed when the fence is released.
func (fence *Fence) Done() chan struct{} {
	fence.init()
	return fence.done
}

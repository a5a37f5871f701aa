// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package executor defines the driver contract between the job manager
// and a batch runtime. Drivers hand back serializable state so a job
// survives an orchestrator restart mid flight.
package executor

import (
	"context"

	"trac.io/trac/pkg/pb"
)

// Status is the runtime view of one submitted job.
type Status string

// Runtime statuses. SUCCEEDED, FAILED, LOST and CANCELLED are terminal.
const (
	StatusQueued    Status = "QUEUED"
	StatusRunning   Status = "RUNNING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
	StatusLost      Status = "LOST"
	StatusCancelled Status = "CANCELLED"
)

// Terminal reports whether the runtime is done with the job.
func (status Status) Terminal() bool {
	switch status {
	case StatusSucceeded, StatusFailed, StatusLost, StatusCancelled:
		return true
	}
	return false
}

// State is an opaque serializable handle to a submitted job. Only the
// driver that issued it can interpret it.
type State []byte

// SandboxConfig carries per-job isolation settings into Submit.
type SandboxConfig struct {
	Tenant string
	Env    map[string]string
}

// PollResult is one runtime status observation.
type PollResult struct {
	Status     Status
	ExitCode   int32
	Message    string
	LastLogSeq int64
}

// Output is one produced artifact.
type Output struct {
	Path string
	Size int64
}

// Result holds the artifacts of a succeeded job, keyed by the output
// keys the job definition declared.
type Result struct {
	ExitCode int32
	Outputs  map[string]Output
}

// LogChunk is one contiguous piece of captured job output.
type LogChunk struct {
	Seq  int64
	Data []byte
}

// Executor launches and tracks jobs on some batch runtime.
//
// Transient runtime failures are reported as trac.ErrExecutorUnavailable
// and the caller retries with Backoff. Any other error is fatal for the
// job.
type Executor interface {
	// Submit launches the job asynchronously and returns its handle.
	Submit(ctx context.Context, jobKey string, job *pb.JobDefinition, sandbox SandboxConfig) (State, error)
	// Poll reports the current runtime status of the job.
	Poll(ctx context.Context, state State) (PollResult, error)
	// Cancel terminates the job, best effort. Idempotent.
	Cancel(ctx context.Context, state State) error
	// FetchResult collects outputs. Valid only once Poll reported
	// SUCCEEDED.
	FetchResult(ctx context.Context, state State) (Result, error)
	// FetchLogs returns captured output starting at fromSeq.
	FetchLogs(ctx context.Context, state State, fromSeq int64) ([]LogChunk, error)
}

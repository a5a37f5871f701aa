// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package local_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"trac.io/trac/internal/testcontext"
	"trac.io/trac/orchestrator/executor"
	"trac.io/trac/orchestrator/executor/local"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

func newLocal(t *testing.T, ctx *testcontext.Context, command string) *local.Executor {
	exec, err := local.New(zaptest.NewLogger(t), local.Config{
		ScratchRoot: ctx.Dir("jobs"),
		Command:     command,
	})
	require.NoError(t, err)
	return exec
}

func waitTerminal(t *testing.T, ctx *testcontext.Context, exec *local.Executor, state executor.State) executor.PollResult {
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		result, err := exec.Poll(ctx, state)
		require.NoError(t, err)
		if result.Status.Terminal() {
			return result
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("job did not finish")
	return executor.PollResult{}
}

func jobDef(outputs ...string) *pb.JobDefinition {
	return &pb.JobDefinition{
		JobType:    "RUN_MODEL",
		OutputKeys: outputs,
		Parameters: map[string]*pb.Value{
			"threshold": trac.Int(42),
		},
	}
}

func TestSubmitSucceeds(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	exec := newLocal(t, ctx,
		`echo "threshold=$TRAC_PARAM_THRESHOLD"; echo "row1" > "$TRAC_OUT_DIR/report.csv"`)

	state, err := exec.Submit(ctx, "job-ok", jobDef("report"), executor.SandboxConfig{Tenant: "acme_corp"})
	require.NoError(t, err)

	result := waitTerminal(t, ctx, exec, state)
	require.Equal(t, executor.StatusSucceeded, result.Status)
	require.Equal(t, int32(0), result.ExitCode)

	fetched, err := exec.FetchResult(ctx, state)
	require.NoError(t, err)
	require.Len(t, fetched.Outputs, 1)
	require.NotZero(t, fetched.Outputs["report"].Size)

	chunks, err := exec.FetchLogs(ctx, state, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Contains(t, string(chunks[0].Data), "threshold=42")
}

func TestSubmitFails(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	exec := newLocal(t, ctx, `echo "boom"; exit 3`)

	state, err := exec.Submit(ctx, "job-bad", jobDef(), executor.SandboxConfig{})
	require.NoError(t, err)

	result := waitTerminal(t, ctx, exec, state)
	require.Equal(t, executor.StatusFailed, result.Status)
	require.Equal(t, int32(3), result.ExitCode)

	_, err = exec.FetchResult(ctx, state)
	require.Error(t, err)
}

func TestMissingDeclaredOutput(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	exec := newLocal(t, ctx, `true`)

	state, err := exec.Submit(ctx, "job-empty", jobDef("report"), executor.SandboxConfig{})
	require.NoError(t, err)

	result := waitTerminal(t, ctx, exec, state)
	require.Equal(t, executor.StatusSucceeded, result.Status)

	_, err = exec.FetchResult(ctx, state)
	require.Error(t, err)
}

func TestCancel(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	exec := newLocal(t, ctx, `sleep 60`)

	state, err := exec.Submit(ctx, "job-slow", jobDef(), executor.SandboxConfig{})
	require.NoError(t, err)
	require.NoError(t, exec.Cancel(ctx, state))

	result := waitTerminal(t, ctx, exec, state)
	require.Equal(t, executor.StatusCancelled, result.Status)

	// repeated cancel is a no-op
	require.NoError(t, exec.Cancel(ctx, state))
}

func TestUndecodableState(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	exec := newLocal(t, ctx, `true`)

	_, err := exec.Poll(ctx, executor.State("not json"))
	require.Error(t, err)
	require.False(t, trac.ErrExecutorUnavailable.Has(err))
}

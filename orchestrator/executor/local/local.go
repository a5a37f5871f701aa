// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package local runs jobs as child processes under a scratch root.
// Every job gets its own directory holding the rendered job spec, an
// output directory, the captured log and an exit code file written by
// a shell wrapper, so a restarted orchestrator can keep polling jobs
// it did not start.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/gogo/protobuf/jsonpb"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"trac.io/trac/orchestrator/executor"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

var (
	mon = monkit.Package()

	// Error is the local executor error class.
	Error = errs.Class("local executor")
)

const (
	specFile   = "job.json"
	logFile    = "job.log"
	exitFile   = "exit.code"
	cancelFile = "cancelled"
	outDir     = "out"

	logChunkSize = 64 * 1024
)

// Config is the local executor configuration.
type Config struct {
	ScratchRoot string `help:"directory for per-job working directories" default:"$CONFDIR/jobs"`
	Command     string `help:"shell command executed for each job" default:""`
}

// Executor runs each submitted job as one child process.
type Executor struct {
	log    *zap.Logger
	config Config
}

// state is the serialized handle for one local job.
type state struct {
	JobKey     string   `json:"job_key"`
	Pid        int      `json:"pid"`
	JobDir     string   `json:"job_dir"`
	OutputKeys []string `json:"output_keys"`
}

// New creates a local executor.
func New(log *zap.Logger, config Config) (*Executor, error) {
	if config.Command == "" {
		return nil, Error.New("no command configured")
	}
	if err := os.MkdirAll(config.ScratchRoot, 0700); err != nil {
		return nil, Error.Wrap(err)
	}
	return &Executor{log: log, config: config}, nil
}

// Submit materializes the job directory and starts the configured
// command in its own process group. The wrapper records the exit code
// on disk so completion survives an orchestrator restart.
func (local *Executor) Submit(ctx context.Context, jobKey string, job *pb.JobDefinition, sandbox executor.SandboxConfig) (_ executor.State, err error) {
	defer mon.Task()(&ctx)(&err)

	jobDir := filepath.Join(local.config.ScratchRoot, jobKey)
	if err := os.MkdirAll(filepath.Join(jobDir, outDir), 0700); err != nil {
		return nil, trac.ErrExecutorUnavailable.Wrap(err)
	}

	var spec strings.Builder
	if err := (&jsonpb.Marshaler{}).Marshal(&spec, job); err != nil {
		return nil, Error.Wrap(err)
	}
	if err := ioutil.WriteFile(filepath.Join(jobDir, specFile), []byte(spec.String()), 0600); err != nil {
		return nil, trac.ErrExecutorUnavailable.Wrap(err)
	}

	// the wrapper captures output and persists the exit code; the
	// rename makes the marker appear atomically
	script := fmt.Sprintf("(%s) >%q 2>&1; code=$?; echo $code >%q.tmp; mv %q.tmp %q",
		local.config.Command,
		filepath.Join(jobDir, logFile),
		filepath.Join(jobDir, exitFile), filepath.Join(jobDir, exitFile), filepath.Join(jobDir, exitFile))

	cmd := exec.Command("/bin/sh", "-c", script)
	cmd.Dir = jobDir
	cmd.Env = jobEnv(jobKey, jobDir, job, sandbox)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, trac.ErrExecutorUnavailable.Wrap(err)
	}
	pid := cmd.Process.Pid
	// reap the child when this process outlives it
	go func() { _ = cmd.Wait() }()

	local.log.Info("job started",
		zap.String("jobKey", jobKey),
		zap.Int("pid", pid),
		zap.String("dir", jobDir))

	return encodeState(state{
		JobKey:     jobKey,
		Pid:        pid,
		JobDir:     jobDir,
		OutputKeys: job.OutputKeys,
	})
}

// Poll inspects the exit code marker first and falls back to probing
// the process, so a finished job is never reported LOST.
func (local *Executor) Poll(ctx context.Context, handle executor.State) (_ executor.PollResult, err error) {
	defer mon.Task()(&ctx)(&err)
	st, err := decodeState(handle)
	if err != nil {
		return executor.PollResult{}, err
	}

	code, done, err := readExitCode(st.JobDir)
	if err != nil {
		return executor.PollResult{}, err
	}
	if done {
		result := executor.PollResult{ExitCode: code, LastLogSeq: lastLogSeq(st.JobDir)}
		switch {
		case cancelled(st.JobDir):
			result.Status = executor.StatusCancelled
			result.Message = "cancelled"
		case code == 0:
			result.Status = executor.StatusSucceeded
		default:
			result.Status = executor.StatusFailed
			result.Message = fmt.Sprintf("exit code %d", code)
		}
		return result, nil
	}

	if processAlive(st.Pid) {
		return executor.PollResult{Status: executor.StatusRunning, LastLogSeq: lastLogSeq(st.JobDir)}, nil
	}
	// the group signal takes the wrapper down with the job, so a
	// cancelled job never records an exit code
	if cancelled(st.JobDir) {
		return executor.PollResult{Status: executor.StatusCancelled, Message: "cancelled"}, nil
	}
	return executor.PollResult{Status: executor.StatusLost, Message: "process gone without exit code"}, nil
}

// Cancel signals the job's process group. Safe to call repeatedly and
// after the job already finished.
func (local *Executor) Cancel(ctx context.Context, handle executor.State) (err error) {
	defer mon.Task()(&ctx)(&err)
	st, err := decodeState(handle)
	if err != nil {
		return err
	}

	marker := filepath.Join(st.JobDir, cancelFile)
	if err := ioutil.WriteFile(marker, []byte{}, 0600); err != nil && !os.IsNotExist(err) {
		return trac.ErrExecutorUnavailable.Wrap(err)
	}
	if err := syscall.Kill(-st.Pid, syscall.SIGTERM); err != nil && err != syscall.ESRCH {
		return trac.ErrExecutorUnavailable.Wrap(err)
	}
	return nil
}

// FetchResult collects the declared outputs from the job's output
// directory. Every declared key must be present.
func (local *Executor) FetchResult(ctx context.Context, handle executor.State) (_ executor.Result, err error) {
	defer mon.Task()(&ctx)(&err)
	st, err := decodeState(handle)
	if err != nil {
		return executor.Result{}, err
	}

	code, done, err := readExitCode(st.JobDir)
	if err != nil {
		return executor.Result{}, err
	}
	if !done || code != 0 {
		return executor.Result{}, Error.New("job %q has no result to fetch", st.JobKey)
	}

	result := executor.Result{ExitCode: code, Outputs: map[string]executor.Output{}}
	for _, key := range st.OutputKeys {
		path, err := findOutput(filepath.Join(st.JobDir, outDir), key)
		if err != nil {
			return executor.Result{}, err
		}
		info, err := os.Stat(path)
		if err != nil {
			return executor.Result{}, trac.ErrExecutorUnavailable.Wrap(err)
		}
		result.Outputs[key] = executor.Output{Path: path, Size: info.Size()}
	}
	return result, nil
}

// FetchLogs returns chunks of the captured log starting at fromSeq.
func (local *Executor) FetchLogs(ctx context.Context, handle executor.State, fromSeq int64) (_ []executor.LogChunk, err error) {
	defer mon.Task()(&ctx)(&err)
	st, err := decodeState(handle)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(st.JobDir, logFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, trac.ErrExecutorUnavailable.Wrap(err)
	}
	defer func() { err = errs.Combine(err, file.Close()) }()

	if _, err := file.Seek(fromSeq*logChunkSize, io.SeekStart); err != nil {
		return nil, trac.ErrExecutorUnavailable.Wrap(err)
	}

	var chunks []executor.LogChunk
	seq := fromSeq
	for {
		buf := make([]byte, logChunkSize)
		n, err := file.Read(buf)
		if n > 0 {
			chunks = append(chunks, executor.LogChunk{Seq: seq, Data: buf[:n]})
			seq++
		}
		if err != nil {
			break
		}
	}
	return chunks, nil
}

// jobEnv builds the child environment: the ambient environment plus
// job coordinates, parameters and sandbox overrides.
func jobEnv(jobKey, jobDir string, job *pb.JobDefinition, sandbox executor.SandboxConfig) []string {
	env := append(os.Environ(),
		"TRAC_JOB_KEY="+jobKey,
		"TRAC_JOB_DIR="+jobDir,
		"TRAC_JOB_SPEC="+filepath.Join(jobDir, specFile),
		"TRAC_OUT_DIR="+filepath.Join(jobDir, outDir),
		"TRAC_TENANT="+sandbox.Tenant,
	)
	for name, value := range job.Parameters {
		env = append(env, "TRAC_PARAM_"+strings.ToUpper(name)+"="+renderValue(value))
	}
	for name, value := range sandbox.Env {
		env = append(env, name+"="+value)
	}
	return env
}

func renderValue(v *pb.Value) string {
	if v == nil {
		return ""
	}
	switch {
	case v.GetBooleanValue():
		return "true"
	case v.GetStringValue() != "":
		return v.GetStringValue()
	case v.GetDecimalValue() != nil:
		return v.GetDecimalValue().Decimal
	case v.GetIntegerValue() != 0:
		return strconv.FormatInt(v.GetIntegerValue(), 10)
	case v.GetFloatValue() != 0:
		return strconv.FormatFloat(v.GetFloatValue(), 'g', -1, 64)
	case v.GetDateValue() != nil:
		return v.GetDateValue().IsoDate
	case v.GetDatetimeValue() != nil:
		return v.GetDatetimeValue().IsoDatetime
	}
	switch trac.BasicTypeOf(v) {
	case pb.BasicType_BOOLEAN:
		return "false"
	case pb.BasicType_INTEGER:
		return "0"
	case pb.BasicType_FLOAT:
		return "0"
	}
	return ""
}

func encodeState(st state) (executor.State, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return executor.State(data), nil
}

func decodeState(handle executor.State) (state, error) {
	var st state
	if err := json.Unmarshal(handle, &st); err != nil {
		return state{}, Error.New("undecodable state: %v", err)
	}
	if st.JobDir == "" || st.Pid == 0 {
		return state{}, Error.New("incomplete state")
	}
	return st, nil
}

// readExitCode reads the completion marker: (code, true) once the
// wrapper finished, (0, false) while the job is still going.
func readExitCode(jobDir string) (int32, bool, error) {
	data, err := ioutil.ReadFile(filepath.Join(jobDir, exitFile))
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, trac.ErrExecutorUnavailable.Wrap(err)
	}
	code, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false, Error.New("corrupt exit code file: %v", err)
	}
	return int32(code), true, nil
}

func cancelled(jobDir string) bool {
	_, err := os.Stat(filepath.Join(jobDir, cancelFile))
	return err == nil
}

func processAlive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}

func lastLogSeq(jobDir string) int64 {
	info, err := os.Stat(filepath.Join(jobDir, logFile))
	if err != nil {
		return 0
	}
	return info.Size() / logChunkSize
}

// findOutput locates the file for one declared output key, either the
// exact name or the key plus an extension.
func findOutput(dir, key string) (string, error) {
	exact := filepath.Join(dir, key)
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, key+".*"))
	if err != nil {
		return "", Error.Wrap(err)
	}
	if len(matches) == 0 {
		return "", Error.New("declared output %q was not produced", key)
	}
	sort.Strings(matches)
	return matches[0], nil
}

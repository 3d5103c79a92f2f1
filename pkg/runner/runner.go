// Package runner executes subprocesses synchronously for benchmark
// bodies. It is a thin collaborator: command, arguments, working
// directory, and timeout in; exit status and captured streams out. Any
// wait blocks the caller; the operation runtime above it is strictly
// sequential.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Request describes one subprocess invocation.
type Request struct {
	// Command is the executable to run. Required.
	Command string

	// Args are passed verbatim to the command.
	Args []string

	// Dir is the working directory; empty means the caller's.
	Dir string

	// Env adds variables on top of the inherited environment.
	Env map[string]string

	// Timeout bounds the subprocess; zero means no bound beyond ctx.
	Timeout time.Duration
}

// Result captures a finished subprocess.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	TimedOut bool
}

// Run executes the request and blocks until the subprocess exits. A
// non-zero exit status is reported in Result, not as an error; errors are
// reserved for failures to run the command at all.
func Run(ctx context.Context, req Request) (*Result, error) {
	if req.Command == "" {
		return nil, fmt.Errorf("command is required")
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if req.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, req.Command, req.Args...)
	if req.Dir != "" {
		cmd.Dir = req.Dir
	}
	if len(req.Env) > 0 {
		env := cmd.Environ()
		for k, v := range req.Env {
			env = append(env, fmt.Sprintf("%s=%s", k, v))
		}
		cmd.Env = env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		TimedOut: errors.Is(runCtx.Err(), context.DeadlineExceeded),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		if result.TimedOut {
			result.ExitCode = -1
			return result, nil
		}
		return nil, fmt.Errorf("running %s: %w", req.Command, err)
	}

	return result, nil
}

package runner

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests shell out to sh")
	}
}

func TestRun_CapturesStdout(t *testing.T) {
	skipWithoutShell(t)

	res, err := Run(context.Background(), Request{
		Command: "sh",
		Args:    []string{"-c", "echo hello"},
	})
	if err != nil {
		t.Fatalf("Failed to run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", res.ExitCode)
	}
	if strings.TrimSpace(res.Stdout) != "hello" {
		t.Errorf("Expected stdout %q, got %q", "hello", res.Stdout)
	}
	if res.Duration <= 0 {
		t.Error("Expected a positive duration")
	}
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	skipWithoutShell(t)

	res, err := Run(context.Background(), Request{
		Command: "sh",
		Args:    []string{"-c", "echo oops >&2; exit 3"},
	})
	if err != nil {
		t.Fatalf("Expected non-zero exit to be reported in the result, got error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", res.ExitCode)
	}
	if strings.TrimSpace(res.Stderr) != "oops" {
		t.Errorf("Expected stderr captured, got %q", res.Stderr)
	}
}

func TestRun_TimeoutKillsProcess(t *testing.T) {
	skipWithoutShell(t)

	res, err := Run(context.Background(), Request{
		Command: "sh",
		Args:    []string{"-c", "sleep 5"},
		Timeout: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Expected timeout reported in the result, got error: %v", err)
	}
	if !res.TimedOut {
		t.Error("Expected TimedOut to be set")
	}
	if res.Duration >= 5*time.Second {
		t.Errorf("Expected the process to be killed early, ran for %s", res.Duration)
	}
}

func TestRun_MissingCommand(t *testing.T) {
	if _, err := Run(context.Background(), Request{}); err == nil {
		t.Error("Expected error for empty command")
	}
	if _, err := Run(context.Background(), Request{Command: "definitely-not-a-real-binary-xyz"}); err == nil {
		t.Error("Expected error for unresolvable command")
	}
}

func TestRun_EnvAndDir(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	res, err := Run(context.Background(), Request{
		Command: "sh",
		Args:    []string{"-c", "echo $OPBENCH_PROBE; pwd"},
		Dir:     dir,
		Env:     map[string]string{"OPBENCH_PROBE": "set"},
	})
	if err != nil {
		t.Fatalf("Failed to run: %v", err)
	}
	if !strings.Contains(res.Stdout, "set") {
		t.Errorf("Expected injected environment variable, got %q", res.Stdout)
	}
	if !strings.Contains(res.Stdout, dir) {
		t.Errorf("Expected working directory %q, got %q", dir, res.Stdout)
	}
}

package oplog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(t.TempDir())
}

func listArtifacts(t *testing.T, r *Registry) []string {
	t.Helper()
	entries, err := os.ReadDir(r.Dir())
	if err != nil {
		t.Fatalf("Failed to read artifact directory: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func readArtifact(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read artifact %s: %v", path, err)
	}
	return string(data)
}

func TestLogger_FinalizeWritesArtifact(t *testing.T) {
	reg := setupRegistry(t)
	logger := reg.NewLogger("compile project")
	logger.Infof("starting")
	logger.Warnf("cache miss")

	path, err := logger.Finalize()
	if err != nil {
		t.Fatalf("Failed to finalize: %v", err)
	}
	if path == "" {
		t.Fatal("Expected artifact path for non-empty buffer")
	}

	name := filepath.Base(path)
	if !strings.Contains(name, "-WARN-") {
		t.Errorf("Expected filename to carry highest severity WARN, got %s", name)
	}
	if !strings.Contains(name, "compile-project") {
		t.Errorf("Expected sanitized operation name in %s", name)
	}
	if !strings.HasSuffix(name, ".log") {
		t.Errorf("Expected default .log extension, got %s", name)
	}
	if strings.Contains(name, ".part") {
		t.Errorf("Expected no part marker on a single-part artifact, got %s", name)
	}

	content := readArtifact(t, path)
	if !strings.HasPrefix(content, "# operation log: compile project\n") {
		t.Errorf("Expected header naming the operation, got:\n%s", content)
	}
	if !strings.Contains(content, "INFO  starting") {
		t.Errorf("Expected buffered info entry, got:\n%s", content)
	}
	if !strings.Contains(content, "WARN  cache miss") {
		t.Errorf("Expected buffered warn entry, got:\n%s", content)
	}
}

func TestLogger_FinalizeIsIdempotent(t *testing.T) {
	reg := setupRegistry(t)
	logger := reg.NewLogger("idempotent")
	logger.Infof("once")

	first, err := logger.Finalize()
	if err != nil {
		t.Fatalf("Failed to finalize: %v", err)
	}
	second, err := logger.Finalize()
	if err != nil {
		t.Fatalf("Failed to re-finalize: %v", err)
	}
	if first != second {
		t.Errorf("Expected repeated finalize to return the same path, got %q then %q", first, second)
	}
	if got := len(listArtifacts(t, reg)); got != 1 {
		t.Errorf("Expected exactly one artifact, got %d", got)
	}
}

func TestLogger_EmptyBufferProducesNoArtifact(t *testing.T) {
	reg := setupRegistry(t)
	logger := reg.NewLogger("silent")

	path, err := logger.Finalize()
	if err != nil {
		t.Fatalf("Failed to finalize: %v", err)
	}
	if path != "" {
		t.Errorf("Expected empty path for empty buffer, got %q", path)
	}
	if got := len(listArtifacts(t, reg)); got != 0 {
		t.Errorf("Expected no artifacts, got %d", got)
	}
}

func TestLogger_LogAfterFinalizePanics(t *testing.T) {
	reg := setupRegistry(t)
	logger := reg.NewLogger("closed")
	logger.Infof("before close")
	if _, err := logger.Finalize(); err != nil {
		t.Fatalf("Failed to finalize: %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected panic when logging to a finalized logger")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("Expected panic with error, got %T", r)
		}
		if !errors.Is(err, ErrFinalized) {
			t.Errorf("Expected error wrapping ErrFinalized, got: %v", err)
		}
	}()
	logger.Infof("after close")
}

func TestLogger_SuspendAfterFinalizePanics(t *testing.T) {
	reg := setupRegistry(t)
	logger := reg.NewLogger("closed")
	logger.Infof("entry")
	if _, err := logger.Finalize(); err != nil {
		t.Fatalf("Failed to finalize: %v", err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("Expected panic when suspending a finalized logger")
		}
	}()
	_, _ = logger.Suspend()
}

func TestLogger_SuspendAndResume(t *testing.T) {
	reg := setupRegistry(t)

	logger := reg.NewLogger("session")
	logger.Infof("part one begins")

	susp, err := logger.Suspend()
	if err != nil {
		t.Fatalf("Failed to suspend: %v", err)
	}
	if susp.Name != "session" || susp.Part != 1 {
		t.Fatalf("Expected suspension token for session part 1, got %+v", susp)
	}
	if !logger.Finalized() {
		t.Error("Expected suspend to finalize the current part")
	}

	resumed := reg.Resume(susp)
	if resumed.Part() != 2 {
		t.Fatalf("Expected resumed part 2, got %d", resumed.Part())
	}
	resumed.Infof("part two continues")
	if _, err := resumed.Finalize(); err != nil {
		t.Fatalf("Failed to finalize resumed part: %v", err)
	}

	names := listArtifacts(t, reg)
	if len(names) != 2 {
		t.Fatalf("Expected two part artifacts, got %d: %v", len(names), names)
	}

	var part1, part2 string
	for _, n := range names {
		switch {
		case strings.Contains(n, ".part1."):
			part1 = n
		case strings.Contains(n, ".part2."):
			part2 = n
		}
	}
	if part1 == "" || part2 == "" {
		t.Fatalf("Expected .part1 and .part2 artifacts, got %v", names)
	}

	content1 := readArtifact(t, filepath.Join(reg.Dir(), part1))
	if !strings.Contains(content1, "# continued in part 2") {
		t.Errorf("Expected part 1 to link forward, got:\n%s", content1)
	}
	content2 := readArtifact(t, filepath.Join(reg.Dir(), part2))
	if !strings.Contains(content2, "# continues part 1") {
		t.Errorf("Expected part 2 to link back, got:\n%s", content2)
	}
	if !strings.Contains(content2, "part two continues") {
		t.Errorf("Expected part 2 entries in resumed artifact, got:\n%s", content2)
	}
}

func TestLogger_FieldsAndErrorRendering(t *testing.T) {
	reg := setupRegistry(t)
	logger := reg.NewLogger("render")
	logger.Log(LevelError, "run failed", map[string]interface{}{
		"tool": "make",
		"code": 2,
	}, fmt.Errorf("exit status 2"))

	path, err := logger.Finalize()
	if err != nil {
		t.Fatalf("Failed to finalize: %v", err)
	}

	content := readArtifact(t, path)
	if !strings.Contains(content, "code=2 tool=make") {
		t.Errorf("Expected fields rendered in sorted key order, got:\n%s", content)
	}
	if !strings.Contains(content, `error="exit status 2"`) {
		t.Errorf("Expected quoted error, got:\n%s", content)
	}
}

func TestRegistry_SequenceOrdersArtifacts(t *testing.T) {
	reg := setupRegistry(t)
	for i := 1; i <= 3; i++ {
		logger := reg.NewLogger(fmt.Sprintf("step %d", i))
		logger.Infof("entry")
		if _, err := logger.Finalize(); err != nil {
			t.Fatalf("Failed to finalize step %d: %v", i, err)
		}
	}

	names := listArtifacts(t, reg)
	if len(names) != 3 {
		t.Fatalf("Expected three artifacts, got %d", len(names))
	}
	for i, want := range []string{"-0001-", "-0002-", "-0003-"} {
		found := false
		for _, n := range names {
			if strings.Contains(n, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected artifact with sequence %s (step %d), got %v", want, i+1, names)
		}
	}
}

func TestRegistry_FinalizeAllFlushesLiveLoggers(t *testing.T) {
	reg := setupRegistry(t)

	open := reg.NewLogger("open")
	open.Infof("still buffered")
	closed := reg.NewLogger("closed")
	closed.Infof("already flushed")
	if _, err := closed.Finalize(); err != nil {
		t.Fatalf("Failed to finalize: %v", err)
	}
	reg.NewLogger("empty")

	if got := reg.LiveCount(); got != 2 {
		t.Fatalf("Expected 2 live loggers, got %d", got)
	}
	if err := reg.FinalizeAll(); err != nil {
		t.Fatalf("FinalizeAll failed: %v", err)
	}
	if got := reg.LiveCount(); got != 0 {
		t.Errorf("Expected no live loggers after flush, got %d", got)
	}
	if got := len(listArtifacts(t, reg)); got != 2 {
		t.Errorf("Expected two artifacts (empty logger writes none), got %d", got)
	}
}

func TestRegistry_EmergencyFlushRunsHookBeforeFinalizing(t *testing.T) {
	reg := setupRegistry(t)
	logger := reg.NewLogger("interrupted")
	logger.Infof("mid-flight")

	hookRan := false
	reg.emergencyFlush(func() {
		hookRan = true
		if logger.Finalized() {
			t.Error("Expected the hook to run while loggers are still live")
		}
	})

	if !hookRan {
		t.Fatal("Expected the pre-exit hook to run")
	}
	if !logger.Finalized() {
		t.Error("Expected the flush to finalize live loggers")
	}
	if got := len(listArtifacts(t, reg)); got != 1 {
		t.Errorf("Expected the buffered entries flushed to one artifact, got %d", got)
	}
}

func TestRegistry_EmergencyFlushNilHook(t *testing.T) {
	reg := setupRegistry(t)
	logger := reg.NewLogger("no hook")
	logger.Infof("entry")

	reg.emergencyFlush(nil)

	if !logger.Finalized() {
		t.Error("Expected flush without a hook to still finalize loggers")
	}
}

func TestRegistry_CustomExtension(t *testing.T) {
	reg := NewRegistry(t.TempDir(), WithExtension("txt"))
	logger := reg.NewLogger("ext")
	logger.Infof("entry")

	path, err := logger.Finalize()
	if err != nil {
		t.Fatalf("Failed to finalize: %v", err)
	}
	if !strings.HasSuffix(path, ".txt") {
		t.Errorf("Expected .txt artifact, got %s", path)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"Compile Project":   "compile-project",
		"weird**chars!!":    "weird-chars",
		"  spaced  out  ":   "spaced-out",
		"UPPER_case_09":     "upper_case_09",
		"***":               "operation",
		"":                  "operation",
		"trailing dashes--": "trailing-dashes",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Errorf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

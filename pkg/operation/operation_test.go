package operation

import (
	"os"
	"strings"
	"testing"

	"github.com/opbench/opbench/pkg/oplog"
)

func setupRunContext(t *testing.T) *RunContext {
	t.Helper()
	reg := oplog.NewRegistry(t.TempDir())
	return NewRunContext(nil, reg, nil)
}

func artifactNames(t *testing.T, rc *RunContext) []string {
	t.Helper()
	entries, err := os.ReadDir(rc.Registry().Dir())
	if err != nil {
		t.Fatalf("Failed to read artifact directory: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestInvoke_SuccessWritesOneArtifact(t *testing.T) {
	rc := setupRunContext(t)

	out := Invoke(rc, Func{OpName: "simple step", Run: func(rc *RunContext) Outcome {
		rc.Infof("doing the work")
		return Done("result")
	}})

	if !out.OK() {
		t.Fatalf("Expected success, got: %s", out)
	}
	if out.Value() != "result" {
		t.Errorf("Expected terminal value, got %v", out.Value())
	}
	if rc.Stack().Depth() != 0 {
		t.Errorf("Expected empty stack after invoke, got depth %d", rc.Stack().Depth())
	}

	names := artifactNames(t, rc)
	if len(names) != 1 {
		t.Fatalf("Expected one artifact, got %d: %v", len(names), names)
	}
	if !strings.Contains(names[0], "simple-step") {
		t.Errorf("Expected artifact named after the operation, got %s", names[0])
	}
}

func TestInvoke_ContainsPanickingPerform(t *testing.T) {
	rc := setupRunContext(t)

	out := Invoke(rc, Func{OpName: "exploding", Run: func(rc *RunContext) Outcome {
		panic("wires crossed")
	}})

	if out.OK() {
		t.Fatal("Expected failure outcome from a panicking operation")
	}
	if !strings.Contains(out.ErrorMessage(), "exploding") || !strings.Contains(out.ErrorMessage(), "panicked") {
		t.Errorf("Expected message naming the panicking operation, got %q", out.ErrorMessage())
	}
	if out.Details() == nil {
		t.Error("Expected panic value preserved as details")
	}
	if rc.Stack().Depth() != 0 {
		t.Errorf("Expected stack unwound after panic, got depth %d", rc.Stack().Depth())
	}
}

func TestInvoke_PanicStillFinalizesLogger(t *testing.T) {
	rc := setupRunContext(t)

	out := Invoke(rc, Func{OpName: "crashing", Run: func(rc *RunContext) Outcome {
		rc.Infof("before the crash")
		panic("boom")
	}})

	if out.OK() {
		t.Fatal("Expected failure outcome")
	}
	names := artifactNames(t, rc)
	if len(names) != 1 {
		t.Fatalf("Expected one artifact despite the panic, got %d: %v", len(names), names)
	}
	if !strings.Contains(names[0], "-ERROR-") {
		t.Errorf("Expected ERROR severity in filename, got %s", names[0])
	}
}

func TestInvoke_ChildBorrowsParentLogger(t *testing.T) {
	rc := setupRunContext(t)

	out := Invoke(rc, Func{OpName: "parent", Run: func(rc *RunContext) Outcome {
		rc.Infof("parent before")
		child := Invoke(rc, Func{OpName: "child", Run: func(rc *RunContext) Outcome {
			rc.Infof("child entry")
			return Done(nil)
		}})
		if !child.OK() {
			return child
		}
		rc.Infof("parent after")
		return Done(nil)
	}})

	if !out.OK() {
		t.Fatalf("Expected success, got: %s", out)
	}

	names := artifactNames(t, rc)
	if len(names) != 1 {
		t.Fatalf("Expected a single shared artifact, got %d: %v", len(names), names)
	}
	data, err := os.ReadFile(rc.Registry().Dir() + "/" + names[0])
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}
	content := string(data)
	for _, want := range []string{"parent before", "child entry", "parent after"} {
		if !strings.Contains(content, want) {
			t.Errorf("Expected shared artifact to contain %q, got:\n%s", want, content)
		}
	}
}

// isolating is a child operation that demands its own log artifact.
type isolating struct {
	ran *bool
}

func (i isolating) Name() string     { return "isolated child" }
func (i isolating) IsolateLog() bool { return true }

func (i isolating) Perform(rc *RunContext) Outcome {
	*i.ran = true
	rc.Infof("isolated work")
	return Done(nil)
}

func TestInvoke_IsolatingChildSplitsParentLog(t *testing.T) {
	rc := setupRunContext(t)
	ran := false

	out := Invoke(rc, Func{OpName: "session", Run: func(rc *RunContext) Outcome {
		rc.Infof("transcript before child")
		if child := Invoke(rc, isolating{ran: &ran}); !child.OK() {
			return child
		}
		rc.Infof("transcript after child")
		return Done(nil)
	}})

	if !out.OK() {
		t.Fatalf("Expected success, got: %s", out)
	}
	if !ran {
		t.Fatal("Expected the isolating child to run")
	}

	names := artifactNames(t, rc)
	if len(names) != 3 {
		t.Fatalf("Expected two session parts bracketing one child artifact, got %d: %v", len(names), names)
	}

	var part1, part2, child string
	for _, n := range names {
		switch {
		case strings.Contains(n, "session.part1."):
			part1 = n
		case strings.Contains(n, "session.part2."):
			part2 = n
		case strings.Contains(n, "isolated-child") && !strings.Contains(n, ".part"):
			child = n
		}
	}
	if part1 == "" || part2 == "" || child == "" {
		t.Fatalf("Expected session.part1, session.part2 and a standalone child artifact, got %v", names)
	}

	read := func(name string) string {
		data, err := os.ReadFile(rc.Registry().Dir() + "/" + name)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", name, err)
		}
		return string(data)
	}
	if content := read(part1); !strings.Contains(content, "transcript before child") {
		t.Errorf("Expected part 1 to hold the pre-child transcript, got:\n%s", content)
	}
	if content := read(part2); !strings.Contains(content, "transcript after child") {
		t.Errorf("Expected part 2 to hold the post-child transcript, got:\n%s", content)
	}
	if content := read(child); !strings.Contains(content, "isolated work") {
		t.Errorf("Expected child artifact to hold the isolated entries, got:\n%s", content)
	}
	if content := read(child); strings.Contains(content, "transcript") {
		t.Errorf("Expected no parent entries in the child artifact, got:\n%s", content)
	}
}

func TestRunContext_LogOutsideOperationDoesNotPanic(t *testing.T) {
	rc := setupRunContext(t)
	rc.Infof("no operation is running")

	if got := len(artifactNames(t, rc)); got != 0 {
		t.Errorf("Expected mirror-only logging outside operations, got %d artifacts", got)
	}
}

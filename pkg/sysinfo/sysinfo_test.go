package sysinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestProbe(t *testing.T) {
	info := Probe()

	if info.OS != runtime.GOOS {
		t.Errorf("Expected OS %s, got %s", runtime.GOOS, info.OS)
	}
	if info.Arch != runtime.GOARCH {
		t.Errorf("Expected arch %s, got %s", runtime.GOARCH, info.Arch)
	}
	if info.CPUs < 1 {
		t.Errorf("Expected at least one CPU, got %d", info.CPUs)
	}
	if info.GoVersion == "" {
		t.Error("Expected a Go version")
	}
}

func TestInfoString(t *testing.T) {
	info := Info{OS: "linux", Arch: "amd64", CPUs: 8}
	if got := info.String(); got != "linux/amd64, 8 CPUs" {
		t.Errorf("Expected minimal summary, got %q", got)
	}

	info.CPUModel = "Example CPU"
	info.MemoryMB = 16000
	got := info.String()
	if !strings.Contains(got, "Example CPU") || !strings.Contains(got, "16000 MB RAM") {
		t.Errorf("Expected model and memory in summary, got %q", got)
	}
}

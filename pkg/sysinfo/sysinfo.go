// Package sysinfo probes the host for the platform details stamped into
// benchmark reports. Everything is best effort: missing /proc files on
// non-Linux hosts degrade to empty fields, never to errors.
package sysinfo

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Info describes the host a benchmark ran on.
type Info struct {
	OS        string
	Arch      string
	CPUs      int
	CPUModel  string
	MemoryMB  int64
	Hostname  string
	GoVersion string
}

// Probe collects host information.
func Probe() Info {
	info := Info{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		CPUs:      runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}
	if host, err := os.Hostname(); err == nil {
		info.Hostname = host
	}
	info.CPUModel = cpuModel()
	info.MemoryMB = totalMemoryMB()
	return info
}

// String renders the info as the single-line summary reports embed.
func (i Info) String() string {
	parts := []string{fmt.Sprintf("%s/%s", i.OS, i.Arch), fmt.Sprintf("%d CPUs", i.CPUs)}
	if i.CPUModel != "" {
		parts = append(parts, i.CPUModel)
	}
	if i.MemoryMB > 0 {
		parts = append(parts, fmt.Sprintf("%d MB RAM", i.MemoryMB))
	}
	return strings.Join(parts, ", ")
}

// cpuModel reads the first model name from /proc/cpuinfo.
func cpuModel() string {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), ":")
		if found && strings.TrimSpace(key) == "model name" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// totalMemoryMB reads MemTotal from /proc/meminfo.
func totalMemoryMB() int64 {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0
		}
		return kb / 1024
	}
	return 0
}

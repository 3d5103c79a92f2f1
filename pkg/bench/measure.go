package bench

import (
	"fmt"
	"strings"

	"github.com/opbench/opbench/pkg/config"
	"github.com/opbench/opbench/pkg/operation"
	"github.com/opbench/opbench/pkg/report"
	"github.com/opbench/opbench/pkg/runner"
)

// Measure runs the timed iterations for one tool. It isolates its log
// artifact: while it runs nested under the session operation, the session
// transcript is suspended, so each measurement leaves a clean standalone
// log bracketed by the session's numbered parts.
type Measure struct {
	suite *config.Suite
	tool  config.Tool
}

// NewMeasure creates the measurement operation for one tool.
func NewMeasure(suite *config.Suite, tool config.Tool) *Measure {
	return &Measure{suite: suite, tool: tool}
}

// Name implements operation.Operation.
func (m *Measure) Name() string { return "measure " + m.tool.Name }

// IsolateLog implements operation.LogIsolator.
func (m *Measure) IsolateLog() bool { return true }

// Perform implements operation.Operation.
func (m *Measure) Perform(rc *operation.RunContext) operation.Outcome {
	commandLine := strings.TrimSpace(m.tool.Command + " " + strings.Join(m.tool.Args, " "))
	rc.Infof("benchmarking %q: %d warmup, %d timed iterations", commandLine, m.tool.Warmup, m.tool.Iterations)

	for i := 0; i < m.tool.Warmup; i++ {
		if out := m.runOnce(rc, fmt.Sprintf("warmup %d/%d", i+1, m.tool.Warmup), nil); !out.OK() {
			return out
		}
	}

	result := &report.Result{
		Tool:       m.tool.Name,
		Command:    commandLine,
		Iterations: m.tool.Iterations,
	}
	for i := 0; i < m.tool.Iterations; i++ {
		if out := m.runOnce(rc, fmt.Sprintf("iteration %d/%d", i+1, m.tool.Iterations), result); !out.OK() {
			return out
		}
	}
	result.Summarize()
	rc.Infof("measured %s: min=%s max=%s mean=%s", m.tool.Name, result.Min, result.Max, result.Mean)
	return operation.Done(result)
}

// runOnce executes one subprocess invocation, appending to result when the
// run is timed.
func (m *Measure) runOnce(rc *operation.RunContext, label string, result *report.Result) operation.Outcome {
	res, err := runner.Run(rc.Context(), runner.Request{
		Command: m.tool.Command,
		Args:    m.tool.Args,
		Dir:     m.tool.Dir,
		Timeout: m.tool.Timeout(),
	})
	if err != nil {
		return operation.FailErr(fmt.Sprintf("%s: starting %s", label, m.tool.Command), err)
	}
	if res.TimedOut {
		return operation.Failf("%s: %s timed out after %s", label, m.tool.Command, m.tool.Timeout())
	}
	if res.ExitCode != 0 {
		rc.Errorf("%s: exit code %d, stderr: %s", label, res.ExitCode, strings.TrimSpace(res.Stderr))
		return operation.Failf("%s: %s exited with code %d", label, m.tool.Command, res.ExitCode)
	}

	rc.Debugf("%s took %s", label, res.Duration)
	if result != nil {
		result.Durations = append(result.Durations, res.Duration)
	}
	return operation.Done(nil)
}

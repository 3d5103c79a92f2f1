package bench

import (
	"github.com/opbench/opbench/pkg/config"
	"github.com/opbench/opbench/pkg/input"
	"github.com/opbench/opbench/pkg/operation"
	"github.com/opbench/opbench/pkg/report"
)

// maxConfirmRounds bounds the more-info loop on the report question.
const maxConfirmRounds = 5

// RunBenchmark drives the measurement of one tool. It owns an active
// session transcript and invokes Measure nested beneath it; because
// Measure isolates its log, the transcript is suspended around the
// measurement and resumes as part 2 afterwards.
type RunBenchmark struct {
	suite *config.Suite
	tool  config.Tool
}

// NewRunBenchmark creates the session operation for one tool.
func NewRunBenchmark(suite *config.Suite, tool config.Tool) *RunBenchmark {
	return &RunBenchmark{suite: suite, tool: tool}
}

// Name implements operation.Operation.
func (s *RunBenchmark) Name() string { return "benchmark " + s.tool.Name }

// Perform implements operation.Operation.
func (s *RunBenchmark) Perform(rc *operation.RunContext) operation.Outcome {
	rc.Infof("benchmark session for %q", s.tool.Name)

	out := operation.Invoke(rc, NewMeasure(s.suite, s.tool))
	if !out.OK() {
		return out
	}
	result, ok := out.Value().(*report.Result)
	if !ok {
		return operation.Failf("measurement of %s produced no result", s.tool.Name)
	}

	rc.Infof("%s: mean %s over %d iterations", result.Tool, result.Mean, result.Iterations)

	for round := 0; round < maxConfirmRounds; round++ {
		answer, err := rc.Input().Confirm("Write a markdown report?")
		if err != nil {
			return operation.FailErr("resolving report confirmation", err)
		}
		switch answer {
		case input.ConfirmYes:
			return operation.Continue(NewWriteReport(s.suite, result))
		case input.ConfirmNo:
			return operation.Done(result)
		case input.ConfirmMoreInfo:
			rc.Infof("a report is a markdown summary table written to %s", s.suite.ArtifactDir)
		}
	}
	rc.Warnf("no decision after %d rounds, skipping report", maxConfirmRounds)
	return operation.Done(result)
}

package bench

import (
	"errors"
	"fmt"

	"github.com/opbench/opbench/pkg/config"
	"github.com/opbench/opbench/pkg/input"
	"github.com/opbench/opbench/pkg/operation"
)

// Wizard is the root operation of a benchmark session. It owns the session
// transcript and chains into tool selection.
type Wizard struct {
	suite *config.Suite
}

// NewWizard creates the session root for a suite.
func NewWizard(suite *config.Suite) *Wizard {
	return &Wizard{suite: suite}
}

// Name implements operation.Operation.
func (w *Wizard) Name() string { return "benchmark wizard" }

// Perform implements operation.Operation.
func (w *Wizard) Perform(rc *operation.RunContext) operation.Outcome {
	rc.Infof("suite %q with %d tools", w.suite.Name, len(w.suite.Tools))
	return operation.Continue(&PickTool{suite: w.suite})
}

// PickTool asks which suite tool to benchmark and chains into measurement.
// Backing out of the menu is an expected condition: the session ends as a
// success with no result.
type PickTool struct {
	suite *config.Suite
}

// Name implements operation.Operation.
func (p *PickTool) Name() string { return "pick tool" }

// Perform implements operation.Operation.
func (p *PickTool) Perform(rc *operation.RunContext) operation.Outcome {
	options := make([]string, len(p.suite.Tools))
	for i, tool := range p.suite.Tools {
		options[i] = fmt.Sprintf("%s (%s)", tool.Name, tool.Command)
	}

	index, err := rc.Input().Select("Which tool should be benchmarked?", options)
	if err != nil {
		if errors.Is(err, input.ErrCancelled) {
			rc.Infof("selection cancelled")
			return operation.Done(nil)
		}
		return operation.FailErr("resolving tool selection", err)
	}

	tool := p.suite.Tools[index]
	rc.Infof("selected tool %q", tool.Name)

	warmup, err := rc.Input().Toggle("Run warmup iterations first?", tool.Warmup > 0)
	if err != nil {
		return operation.FailErr("resolving warmup toggle", err)
	}
	if !warmup {
		tool.Warmup = 0
	} else if tool.Warmup == 0 {
		tool.Warmup = 1
	}

	return operation.Continue(NewRunBenchmark(p.suite, tool))
}

package bench

import (
	"os"
	"path/filepath"
	"time"

	"github.com/opbench/opbench/pkg/config"
	"github.com/opbench/opbench/pkg/operation"
	"github.com/opbench/opbench/pkg/report"
	"github.com/opbench/opbench/pkg/sysinfo"
)

// WriteReport renders measurement results as a markdown file in the
// suite's artifact directory. It is the terminal operation of a full
// session chain.
type WriteReport struct {
	suite  *config.Suite
	result *report.Result
}

// NewWriteReport creates the report-writing operation.
func NewWriteReport(suite *config.Suite, result *report.Result) *WriteReport {
	return &WriteReport{suite: suite, result: result}
}

// Name implements operation.Operation.
func (w *WriteReport) Name() string { return "write report" }

// Perform implements operation.Operation.
func (w *WriteReport) Perform(rc *operation.RunContext) operation.Outcome {
	filename, err := rc.Input().Text("Report filename", "report.md")
	if err != nil {
		return operation.FailErr("resolving report filename", err)
	}

	rep := &report.Report{
		Title:     w.suite.Name,
		Generated: time.Now(),
		System:    sysinfo.Probe().String(),
		Results:   []report.Result{*w.result},
	}

	if err := os.MkdirAll(w.suite.ArtifactDir, 0755); err != nil {
		return operation.FailErr("creating artifact directory", err)
	}

	path := filepath.Join(w.suite.ArtifactDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return operation.FailErr("creating report file", err)
	}
	defer f.Close()

	if err := report.WriteMarkdown(f, rep); err != nil {
		return operation.FailErr("writing report", err)
	}

	rc.Infof("report written to %s", path)
	return operation.Done(path)
}

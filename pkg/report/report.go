// Package report renders benchmark results as markdown and parses them
// back. It is a formatting collaborator of the operation runtime: the core
// only requires the structured-record-to-text round trip defined here.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Result holds the measurements for one benchmarked tool.
type Result struct {
	Tool       string
	Command    string
	Iterations int
	Durations  []time.Duration
	Min        time.Duration
	Max        time.Duration
	Mean       time.Duration
}

// Report is one benchmark session.
type Report struct {
	Title     string
	Generated time.Time
	System    string
	Results   []Result
}

// Summarize fills Min, Max, and Mean from Durations.
func (r *Result) Summarize() {
	if len(r.Durations) == 0 {
		return
	}
	var total time.Duration
	r.Min = r.Durations[0]
	r.Max = r.Durations[0]
	for _, d := range r.Durations {
		total += d
		if d < r.Min {
			r.Min = d
		}
		if d > r.Max {
			r.Max = d
		}
	}
	r.Mean = total / time.Duration(len(r.Durations))
}

// WriteMarkdown renders the report as a markdown document with one summary
// table row per tool.
func WriteMarkdown(w io.Writer, rep *Report) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", rep.Title)
	fmt.Fprintf(&sb, "Generated: %s\n\n", rep.Generated.UTC().Format(time.RFC3339))
	if rep.System != "" {
		fmt.Fprintf(&sb, "System: %s\n\n", rep.System)
	}

	sb.WriteString("| Tool | Command | Iterations | Min | Max | Mean |\n")
	sb.WriteString("|------|---------|-----------:|----:|----:|-----:|\n")
	for _, res := range rep.Results {
		fmt.Fprintf(&sb, "| %s | `%s` | %d | %s | %s | %s |\n",
			res.Tool, res.Command, res.Iterations, res.Min, res.Max, res.Mean)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

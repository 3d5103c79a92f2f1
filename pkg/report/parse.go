package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ParseMarkdown reads a report previously rendered by WriteMarkdown.
// Per-iteration durations are not present in the rendered table, so parsed
// results carry only the summary columns.
func ParseMarkdown(r io.Reader) (*Report, error) {
	rep := &Report{}
	scanner := bufio.NewScanner(r)
	inTable := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "# "):
			rep.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))

		case strings.HasPrefix(line, "Generated:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "Generated:"))
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return nil, fmt.Errorf("parsing generated timestamp %q: %w", raw, err)
			}
			rep.Generated = ts

		case strings.HasPrefix(line, "System:"):
			rep.System = strings.TrimSpace(strings.TrimPrefix(line, "System:"))

		case strings.HasPrefix(line, "| Tool "):
			inTable = true

		case inTable && strings.HasPrefix(line, "|---"), inTable && strings.HasPrefix(line, "|--"):
			// separator row

		case inTable && strings.HasPrefix(line, "|"):
			res, err := parseRow(line)
			if err != nil {
				return nil, err
			}
			rep.Results = append(rep.Results, res)

		case inTable && line == "":
			inTable = false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if rep.Title == "" {
		return nil, fmt.Errorf("not a benchmark report: missing title")
	}
	return rep, nil
}

func parseRow(line string) (Result, error) {
	cells := strings.Split(strings.Trim(line, "|"), "|")
	if len(cells) != 6 {
		return Result{}, fmt.Errorf("malformed table row %q", line)
	}
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}

	iterations, err := strconv.Atoi(cells[2])
	if err != nil {
		return Result{}, fmt.Errorf("malformed iteration count %q: %w", cells[2], err)
	}

	res := Result{
		Tool:       cells[0],
		Command:    strings.Trim(cells[1], "`"),
		Iterations: iterations,
	}
	if res.Min, err = time.ParseDuration(cells[3]); err != nil {
		return Result{}, fmt.Errorf("malformed min duration %q: %w", cells[3], err)
	}
	if res.Max, err = time.ParseDuration(cells[4]); err != nil {
		return Result{}, fmt.Errorf("malformed max duration %q: %w", cells[4], err)
	}
	if res.Mean, err = time.ParseDuration(cells[5]); err != nil {
		return Result{}, fmt.Errorf("malformed mean duration %q: %w", cells[5], err)
	}
	return res, nil
}

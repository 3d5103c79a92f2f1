package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrCancelled reports that the user backed out of a prompt. Operations
// treat it as an expected condition, not a failure.
var ErrCancelled = errors.New("input cancelled")

// maxPromptRetries bounds re-prompting on invalid live input so a wedged
// stdin cannot loop forever.
const maxPromptRetries = 10

// Resolver answers the prompts operations raise, from whichever source
// backs it.
type Resolver interface {
	// Select presents numbered options and returns the chosen zero-based
	// index. ErrCancelled reports the user backing out.
	Select(prompt string, options []string) (int, error)

	// Text asks for a line of free text; def is returned for empty input.
	Text(prompt, def string) (string, error)

	// Toggle asks a boolean question; def is returned for empty input.
	Toggle(prompt string, def bool) (bool, error)

	// Confirm asks for one of yes, no, or more-info.
	Confirm(prompt string) (Confirmation, error)
}

// ConsoleResolver prompts on a writer and reads answers line by line.
// Invalid answers warn and re-prompt in a bounded loop.
type ConsoleResolver struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewConsoleResolver creates a live resolver reading from r and prompting
// on w.
func NewConsoleResolver(r io.Reader, w io.Writer) *ConsoleResolver {
	return &ConsoleResolver{
		scanner: bufio.NewScanner(r),
		out:     w,
	}
}

// Select implements Resolver.
func (c *ConsoleResolver) Select(prompt string, options []string) (int, error) {
	fmt.Fprintln(c.out, prompt)
	for i, option := range options {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, option)
	}

	for attempt := 0; attempt < maxPromptRetries; attempt++ {
		fmt.Fprintf(c.out, "choice [1-%d, q to cancel]: ", len(options))
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}

		switch strings.ToLower(line) {
		case "q", "quit":
			return 0, ErrCancelled
		}

		index, err := strconv.Atoi(line)
		if err != nil || index < 1 || index > len(options) {
			fmt.Fprintf(c.out, "invalid choice %q\n", line)
			continue
		}
		return index - 1, nil
	}
	return 0, fmt.Errorf("no valid selection after %d attempts", maxPromptRetries)
}

// Text implements Resolver.
func (c *ConsoleResolver) Text(prompt, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(c.out, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(c.out, "%s: ", prompt)
	}

	line, err := c.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Toggle implements Resolver.
func (c *ConsoleResolver) Toggle(prompt string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for attempt := 0; attempt < maxPromptRetries; attempt++ {
		fmt.Fprintf(c.out, "%s [%s]: ", prompt, hint)
		line, err := c.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "yes", "y", "true", "on", "1":
			return true, nil
		case "no", "n", "false", "off", "0":
			return false, nil
		}
		fmt.Fprintf(c.out, "invalid answer %q\n", line)
	}
	return false, fmt.Errorf("no valid answer after %d attempts", maxPromptRetries)
}

// Confirm implements Resolver.
func (c *ConsoleResolver) Confirm(prompt string) (Confirmation, error) {
	for attempt := 0; attempt < maxPromptRetries; attempt++ {
		fmt.Fprintf(c.out, "%s [yes/no/info]: ", prompt)
		line, err := c.readLine()
		if err != nil {
			return "", err
		}

		switch strings.ToLower(line) {
		case "yes", "y":
			return ConfirmYes, nil
		case "no", "n":
			return ConfirmNo, nil
		case "info", "more", "more-info":
			return ConfirmMoreInfo, nil
		}
		fmt.Fprintf(c.out, "invalid answer %q\n", line)
	}
	return "", fmt.Errorf("no valid answer after %d attempts", maxPromptRetries)
}

func (c *ConsoleResolver) readLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

// ScriptResolver consumes a scripted queue first and falls back to a live
// resolver once the queue is exhausted. With a nil fallback an exhausted
// queue cancels the prompt, which keeps fully scripted runs from hanging
// on a terminal that is not there.
type ScriptResolver struct {
	queue    *Queue
	fallback Resolver
}

// NewScriptResolver creates a resolver backed by queue with an optional
// live fallback.
func NewScriptResolver(queue *Queue, fallback Resolver) *ScriptResolver {
	return &ScriptResolver{queue: queue, fallback: fallback}
}

// Remaining returns the number of unconsumed scripted entries.
func (s *ScriptResolver) Remaining() int {
	return s.queue.Len()
}

// Select implements Resolver.
func (s *ScriptResolver) Select(prompt string, options []string) (int, error) {
	entry, ok := s.queue.Next(KindSelection)
	if !ok {
		if s.fallback == nil {
			return 0, ErrCancelled
		}
		return s.fallback.Select(prompt, options)
	}

	if entry.Selection < 1 || entry.Selection > len(options) {
		return 0, fmt.Errorf("scripted selection %d out of range 1-%d", entry.Selection, len(options))
	}
	return entry.Selection - 1, nil
}

// Text implements Resolver.
func (s *ScriptResolver) Text(prompt, def string) (string, error) {
	entry, ok := s.queue.Next(KindText)
	if !ok {
		if s.fallback == nil {
			return def, nil
		}
		return s.fallback.Text(prompt, def)
	}
	if entry.Text == "" {
		return def, nil
	}
	return entry.Text, nil
}

// Toggle implements Resolver.
func (s *ScriptResolver) Toggle(prompt string, def bool) (bool, error) {
	entry, ok := s.queue.Next(KindToggle)
	if !ok {
		if s.fallback == nil {
			return def, nil
		}
		return s.fallback.Toggle(prompt, def)
	}
	return entry.Toggle, nil
}

// Confirm implements Resolver.
func (s *ScriptResolver) Confirm(prompt string) (Confirmation, error) {
	entry, ok := s.queue.Next(KindConfirmation)
	if !ok {
		if s.fallback == nil {
			return ConfirmNo, nil
		}
		return s.fallback.Confirm(prompt)
	}
	return entry.Confirm, nil
}

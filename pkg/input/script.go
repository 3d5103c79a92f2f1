package input

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what a scripted entry answers.
type Kind string

const (
	// KindSelection answers a numbered menu prompt with an integer index.
	KindSelection Kind = "selection"

	// KindText answers a free-text prompt.
	KindText Kind = "text"

	// KindToggle answers a boolean prompt.
	KindToggle Kind = "toggle"

	// KindConfirmation answers a yes/no/more-info prompt.
	KindConfirmation Kind = "confirmation"
)

// Confirmation is the closed answer set of a confirmation prompt.
type Confirmation string

const (
	ConfirmYes      Confirmation = "yes"
	ConfirmNo       Confirmation = "no"
	ConfirmMoreInfo Confirmation = "info"
)

// Entry is one parsed, immutable scripted input.
type Entry struct {
	Kind      Kind
	Selection int
	Text      string
	Toggle    bool
	Confirm   Confirmation
}

// Options adjusts script parsing.
type Options struct {
	// LenientConfirm coerces an out-of-enum confirmation value to a
	// negative answer instead of failing the parse. Strict is the default.
	LenientConfirm bool
}

// ParseScript parses one delimited script string into an ordered queue.
// Grammar errors surface here, immediately, so a bad script can never get
// half-consumed before the mistake is noticed.
func ParseScript(script string, opts Options) (*Queue, error) {
	items, err := splitItems(script)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		entry, err := parseItem(item, opts)
		if err != nil {
			return nil, fmt.Errorf("script item %d (%q): %w", i+1, item, err)
		}
		entries = append(entries, entry)
	}
	return &Queue{entries: entries}, nil
}

// splitItems splits on commas that are not inside quoted values.
func splitItems(script string) ([]string, error) {
	var (
		items   []string
		current strings.Builder
		quote   rune
		escaped bool
	)

	for _, r := range script {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quote != 0 && r == '\\':
			current.WriteRune(r)
			escaped = true
		case quote != 0:
			current.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			current.WriteRune(r)
			quote = r
		case r == ',':
			items = append(items, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c-quoted value", quote)
	}
	if current.Len() > 0 || len(items) > 0 {
		items = append(items, current.String())
	}
	return items, nil
}

// parseItem parses a single kind:value item.
func parseItem(item string, opts Options) (Entry, error) {
	kindToken, rawValue, found := strings.Cut(item, ":")
	if !found {
		return Entry{}, fmt.Errorf("missing %q separator", ":")
	}

	value, err := unquote(strings.TrimSpace(rawValue))
	if err != nil {
		return Entry{}, err
	}

	switch strings.TrimSpace(strings.ToLower(kindToken)) {
	case "select", "selection":
		index, err := strconv.Atoi(value)
		if err != nil {
			return Entry{}, fmt.Errorf("selection value %q is not an integer", value)
		}
		return Entry{Kind: KindSelection, Selection: index}, nil

	case "input", "text":
		return Entry{Kind: KindText, Text: value}, nil

	case "toggle":
		return Entry{Kind: KindToggle, Toggle: parseToggle(value)}, nil

	case "confirm", "confirmation":
		confirm, err := parseConfirmation(value, opts)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Kind: KindConfirmation, Confirm: confirm}, nil

	default:
		return Entry{}, fmt.Errorf("unknown kind %q", strings.TrimSpace(kindToken))
	}
}

// unquote strips one level of matching quotes and resolves backslash
// escapes of the quote character.
func unquote(value string) (string, error) {
	if len(value) < 2 {
		return value, nil
	}
	quote := value[0]
	if quote != '\'' && quote != '"' {
		return value, nil
	}
	if value[len(value)-1] != quote {
		return "", fmt.Errorf("unterminated %c-quoted value", quote)
	}

	inner := value[1 : len(value)-1]
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) && inner[i+1] == quote {
			i++
		}
		sb.WriteByte(inner[i])
	}
	return sb.String(), nil
}

// parseToggle treats the affirmative spellings as true and anything else
// as false, matching the tolerant boolean handling of interactive prompts.
func parseToggle(value string) bool {
	switch strings.ToLower(value) {
	case "yes", "y", "true", "on", "1":
		return true
	default:
		return false
	}
}

// parseConfirmation maps a value onto the closed confirmation enum.
// Unknown values fail the parse unless lenient mode coerces them to a
// negative answer.
func parseConfirmation(value string, opts Options) (Confirmation, error) {
	switch strings.ToLower(value) {
	case "yes", "y":
		return ConfirmYes, nil
	case "no", "n":
		return ConfirmNo, nil
	case "info", "more", "more-info":
		return ConfirmMoreInfo, nil
	default:
		if opts.LenientConfirm {
			return ConfirmNo, nil
		}
		return "", fmt.Errorf("confirmation value %q is not one of yes, no, info", value)
	}
}

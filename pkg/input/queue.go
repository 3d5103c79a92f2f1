package input

import (
	"errors"
	"fmt"
)

// ErrKindMismatch is wrapped by the panic raised when the queue head does
// not match the requested kind. A mismatch means the script and the
// operation sequence have drifted apart; continuing would feed a subtly
// wrong value into a deterministic replay.
var ErrKindMismatch = errors.New("scripted input kind mismatch")

// Queue is an ordered list of scripted entries consumed strictly FIFO.
type Queue struct {
	entries []Entry
	pos     int
}

// Len returns the number of unconsumed entries.
func (q *Queue) Len() int {
	return len(q.entries) - q.pos
}

// Next removes and returns the head of the queue if it matches the
// expected kind. The second return is false when the queue is exhausted,
// signalling fallback to live input; that case never panics. A kind
// mismatch between the head and expected panics with an error wrapping
// ErrKindMismatch.
func (q *Queue) Next(expected Kind) (Entry, bool) {
	if q == nil || q.pos >= len(q.entries) {
		return Entry{}, false
	}

	head := q.entries[q.pos]
	if head.Kind != expected {
		panic(fmt.Errorf("input: entry %d is %s, operation asked for %s: %w",
			q.pos+1, head.Kind, expected, ErrKindMismatch))
	}

	q.pos++
	return head, true
}

package operation

import (
	"fmt"
	"sync/atomic"

	"github.com/opbench/opbench/pkg/oplog"
)

// Record is the stack entry for one in-flight operation.
type Record struct {
	id        int64
	name      string
	owns      bool
	logger    *oplog.Logger
	suspended *oplog.Suspension
	resumeOn  *Record // the ancestor whose logger this operation suspended
}

// ID returns the operation's monotonic id.
func (r *Record) ID() int64 { return r.id }

// Name returns the operation's display name.
func (r *Record) Name() string { return r.name }

// HasActiveLogger reports whether this record owns a live, unfinalized
// logger.
func (r *Record) HasActiveLogger() bool {
	return r.owns && r.logger != nil && !r.logger.Finalized()
}

// CheckOutLogger suspends this record's owned logger, detaching it so a
// descendant can write an isolated artifact. The returned token is
// redeemed with ResumeLogger once the descendant finishes.
func (r *Record) CheckOutLogger() (*oplog.Suspension, error) {
	if !r.HasActiveLogger() {
		return nil, fmt.Errorf("operation %q has no active owned logger to check out", r.name)
	}
	susp, err := r.logger.Suspend()
	if err != nil {
		return nil, err
	}
	r.logger = nil
	return susp, nil
}

// ResumeLogger reattaches a previously checked-out logger as the next part
// of the same logical record.
func (r *Record) ResumeLogger(reg *oplog.Registry, susp *oplog.Suspension) {
	r.logger = reg.Resume(susp)
}

// Stack is the call stack of in-flight operations for one run. It models
// nesting depth, not parallelism, and is owned by a single goroutine; runs
// wanting isolation create their own stack via NewRunContext.
type Stack struct {
	records []*Record
	nextID  atomic.Int64
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Depth returns the number of in-flight operations.
func (s *Stack) Depth() int {
	return len(s.records)
}

// TotalInvoked returns how many operations have ever been pushed, which is
// also the highest id handed out. Unlike the rest of the stack it is safe
// to read from another goroutine; the emergency-flush path records it while
// a chain may still be running.
func (s *Stack) TotalInvoked() int64 {
	return s.nextID.Load()
}

// Push creates a record with the next monotonic id and places it on top.
func (s *Stack) Push(name string) *Record {
	rec := &Record{id: s.nextID.Add(1), name: name}
	s.records = append(s.records, rec)
	return rec
}

// Pop removes the record from the top of the stack. Popping anything but
// the top is a bookkeeping bug and panics.
func (s *Stack) Pop(rec *Record) {
	if len(s.records) == 0 || s.records[len(s.records)-1] != rec {
		panic(fmt.Errorf("operation: pop of %q does not match stack top", rec.name))
	}
	s.records = s.records[:len(s.records)-1]
}

// Current returns the record of the operation executing right now, or nil
// when the stack is empty.
func (s *Stack) Current() *Record {
	if len(s.records) == 0 {
		return nil
	}
	return s.records[len(s.records)-1]
}

// Parent returns the record below the top: the operation paused while its
// child executes. Nil at the root.
func (s *Stack) Parent() *Record {
	if len(s.records) < 2 {
		return nil
	}
	return s.records[len(s.records)-2]
}

// OwningAncestorOf returns the nearest ancestor of rec that owns a logger,
// or nil when rec is the root or no ancestor owns one.
func (s *Stack) OwningAncestorOf(rec *Record) *Record {
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i] == rec {
			for j := i - 1; j >= 0; j-- {
				if s.records[j].owns {
					return s.records[j]
				}
			}
			return nil
		}
	}
	return nil
}

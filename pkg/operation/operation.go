package operation

import (
	"fmt"

	"github.com/opbench/opbench/pkg/oplog"
)

// Operation is a named unit of work. Perform returns an Outcome and never
// needs its own panic handling; Invoke supplies the safety net.
type Operation interface {
	Name() string
	Perform(rc *RunContext) Outcome
}

// LogIsolator is implemented by operations that need their own log
// artifact instead of borrowing the nearest ancestor's. The runtime
// suspends the ancestor's logger around such an operation so output never
// interleaves.
type LogIsolator interface {
	IsolateLog() bool
}

// Func adapts a plain function into an Operation.
type Func struct {
	OpName string
	Run    func(rc *RunContext) Outcome
}

// Name implements Operation.
func (f Func) Name() string { return f.OpName }

// Perform implements Operation.
func (f Func) Perform(rc *RunContext) Outcome { return f.Run(rc) }

// Invoke executes one operation with full runtime bookkeeping:
//
//  1. push a record with a fresh monotonic id
//  2. settle logger ownership, suspending the owning ancestor's logger
//     first when this operation isolates its log
//  3. log a debug "starting" entry tagged with id and name
//  4. run Perform behind a recovery barrier that converts a panic into a
//     failure Outcome exactly once
//  5. echo the outcome at debug or error level
//  6. finalize this operation's own logger, if it owns one
//  7. always: resume the suspended ancestor's logger as the next part and
//     pop the record
//
// Invoke never panics outward for any Perform implementation; callers
// always receive a well-formed Outcome.
func Invoke(rc *RunContext, op Operation) Outcome {
	rec := rc.stack.Push(op.Name())
	owner := rc.stack.OwningAncestorOf(rec)

	if owner == nil || isolatesLog(op) {
		rec.owns = true
		if owner != nil && owner.HasActiveLogger() {
			susp, err := owner.CheckOutLogger()
			if err != nil {
				rc.stack.Pop(rec)
				return FailErr(fmt.Sprintf("suspending logger of %s", owner.Name()), err)
			}
			rec.suspended = susp
			rec.resumeOn = owner
		}
	}

	defer func() {
		if rec.suspended != nil {
			rec.resumeOn.ResumeLogger(rc.logs, rec.suspended)
		}
		rc.stack.Pop(rec)
	}()

	rc.Log(oplog.LevelDebug, "starting operation",
		map[string]interface{}{"id": rec.id, "op": rec.name}, nil)

	out := perform(rc, op)

	if out.OK() {
		fields := map[string]interface{}{"id": rec.id, "op": rec.name, "outcome": out.String()}
		rc.Log(oplog.LevelDebug, "operation completed", fields, nil)
	} else {
		rc.Log(oplog.LevelError, "operation failed",
			map[string]interface{}{"id": rec.id, "op": rec.name, "reason": out.ErrorMessage()},
			out.Details())
	}

	if rec.owns && rec.logger != nil {
		if _, err := rec.logger.Finalize(); err != nil {
			mirror := rc.logs.Mirror()
			mirror.Error().Err(err).Str("op", rec.name).Msg("finalizing operation log failed")
		}
	}

	return out
}

// perform runs op.Perform under the recovery barrier.
func perform(rc *RunContext, op Operation) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			out = FailErr(fmt.Sprintf("operation %s panicked: %v", op.Name(), r), err)
		}
	}()
	return op.Perform(rc)
}

func isolatesLog(op Operation) bool {
	iso, ok := op.(LogIsolator)
	return ok && iso.IsolateLog()
}

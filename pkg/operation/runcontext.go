package operation

import (
	"context"
	"fmt"
	"os"

	"github.com/opbench/opbench/pkg/input"
	"github.com/opbench/opbench/pkg/oplog"
)

// RunContext carries all runtime state of one operation run: the call
// stack, the input resolver, and the logger registry. It is an explicit
// object passed by reference rather than process-global state, so tests
// and future parallel runs can hold independent contexts.
type RunContext struct {
	ctx   context.Context
	stack *Stack
	input input.Resolver
	logs  *oplog.Registry
}

// NewRunContext creates a run context. A nil resolver defaults to live
// console input on stdin/stdout.
func NewRunContext(ctx context.Context, logs *oplog.Registry, resolver input.Resolver) *RunContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if resolver == nil {
		resolver = input.NewConsoleResolver(os.Stdin, os.Stdout)
	}
	return &RunContext{
		ctx:   ctx,
		stack: NewStack(),
		input: resolver,
		logs:  logs,
	}
}

// Context returns the context.Context blocking work should honor.
func (rc *RunContext) Context() context.Context { return rc.ctx }

// Input returns the resolver answering this run's prompts.
func (rc *RunContext) Input() input.Resolver { return rc.input }

// Registry returns the logger registry of this run.
func (rc *RunContext) Registry() *oplog.Registry { return rc.logs }

// Stack returns the run's operation stack.
func (rc *RunContext) Stack() *Stack { return rc.stack }

// Log buffers a structured entry on the current operation's effective
// logger. The logger is created lazily on the owning record at the first
// log call; borrowing records write into the nearest owning ancestor's
// buffer. Outside any operation the entry goes to the live mirror only.
func (rc *RunContext) Log(level oplog.Level, msg string, fields map[string]interface{}, err error) {
	rec := rc.stack.Current()
	if rec == nil {
		mirror := rc.logs.Mirror()
		ev := mirror.WithLevel(level.ZerologLevel())
		for k, v := range fields {
			ev = ev.Interface(k, v)
		}
		if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg(msg)
		return
	}
	rc.loggerFor(rec).Log(level, msg, fields, err)
}

// Debugf buffers a formatted debug entry for the current operation.
func (rc *RunContext) Debugf(format string, args ...interface{}) {
	rc.Log(oplog.LevelDebug, fmt.Sprintf(format, args...), nil, nil)
}

// Infof buffers a formatted info entry for the current operation.
func (rc *RunContext) Infof(format string, args ...interface{}) {
	rc.Log(oplog.LevelInfo, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf buffers a formatted warning entry for the current operation.
func (rc *RunContext) Warnf(format string, args ...interface{}) {
	rc.Log(oplog.LevelWarn, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf buffers a formatted error entry for the current operation.
func (rc *RunContext) Errorf(format string, args ...interface{}) {
	rc.Log(oplog.LevelError, fmt.Sprintf(format, args...), nil, nil)
}

// loggerFor resolves the effective logger of rec, creating the owning
// record's logger on first use.
func (rc *RunContext) loggerFor(rec *Record) *oplog.Logger {
	owner := rec
	if !rec.owns {
		if ancestor := rc.stack.OwningAncestorOf(rec); ancestor != nil {
			owner = ancestor
		}
	}
	if owner.logger == nil {
		owner.logger = rc.logs.NewLogger(owner.name)
	}
	return owner.logger
}

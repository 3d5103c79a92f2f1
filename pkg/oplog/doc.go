// Package oplog implements per-operation log buffers with a
// suspend/resume lifecycle.
//
// Every logical operation that owns a logger accumulates structured entries
// in memory and mirrors them immediately to a live console sink. On
// finalize, the buffer is written out as a single named artifact, so a run
// leaves behind one readable transcript per logger-owning operation.
//
// When a nested operation needs an isolated transcript while its parent
// already holds an active logger, the parent's logger is suspended: the
// buffer so far is finalized as "part N" and a Suspension token is returned.
// After the child finishes, the token is redeemed with Registry.Resume,
// which produces a fresh logger continuing the same logical record as
// part N+1. Concatenating the parts in order reproduces the parent's full
// chronological log bracketing the child's artifact.
//
// A Registry tracks every live logger in the process. On abnormal
// termination the registry force-finalizes all open loggers exactly once so
// buffered entries are never lost.
package oplog

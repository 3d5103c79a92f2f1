// Package operation is the execution engine underneath every OpBench
// command: a unit of interactive or batch work is an Operation, operations
// chain by returning the next operation to run, and a call stack plus a
// hierarchical log-ownership protocol keep nested transcripts from
// interleaving.
//
// A concrete operation implements Perform and returns an Outcome. It never
// handles its own panics: Invoke wraps every Perform with stack
// bookkeeping, logger ownership, and a recovery barrier that converts an
// escaping panic into a failure Outcome, so callers always receive a
// well-formed result.
//
// Execution is strictly sequential. Exactly one operation is current at any
// instant; the stack models nesting depth, not parallelism. All runtime
// state lives in an explicit RunContext passed by reference, so independent
// runs can execute in isolation under test.
//
// Error handling follows a fixed taxonomy:
//
//   - business failures travel in the Outcome and are never auto-retried
//   - lifecycle violations (log-after-finalize, scripted-input kind
//     mismatch) panic, because they are composition bugs
//   - a panic inside Perform is caught exactly once by Invoke and converted
//     to a failure Outcome carrying the message and the raw value
//   - a panic escaping Invoke itself is unrecoverable: RunChain logs it and
//     halts the chain
package operation

// Package bench contains the concrete benchmark operations OpBench runs.
//
// A session is a chain: the wizard hands off to tool selection, selection
// hands off to a benchmark session, and the session optionally hands off
// to report writing. The measurement itself runs nested inside the session
// operation and isolates its own log artifact, so the session transcript
// is split into numbered parts bracketing each measurement log.
package bench

// Package input resolves user input from either a live interactive source
// or a pre-scripted queue, so identical operation code can run under
// deterministic automated tests.
//
// A script is a comma-separated list of kind:value items:
//
//	select:1,input:"hello world",toggle:yes,confirm:no
//
// Values quoted with single or double quotes may contain commas and
// backslash-escaped quote characters. Scripts are parsed once, up front;
// malformed items fail at construction, never at consumption time.
//
// Consumption is strictly FIFO with type-checked heads: asking the queue
// for a kind that does not match the head is a composition bug and panics,
// because a silently mismatched value would undermine the determinism the
// queue exists to guarantee. An exhausted queue is not an error; it signals
// fallback to the live source.
package input

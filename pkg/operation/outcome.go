package operation

import "fmt"

// Outcome is the tagged result of one operation. Exactly one branch is
// meaningful: success with a terminal value, success with the next
// operation to run, or failure with a message and optional details. The
// branch is fixed at construction; fields stay unexported so a value
// cannot drift between branches after the fact.
type Outcome struct {
	ok      bool
	value   interface{}
	next    Operation
	message string
	details error
}

// Done returns a successful terminal outcome carrying value. A nil value
// is legitimate; user cancellation, for example, is success with nil.
func Done(value interface{}) Outcome {
	return Outcome{ok: true, value: value}
}

// Continue returns a successful outcome whose result is the next operation
// to run. Chaining to nil is a composition mistake and yields a failure.
func Continue(next Operation) Outcome {
	if next == nil {
		return Fail("chained to a nil operation")
	}
	return Outcome{ok: true, next: next}
}

// Fail returns a business-failure outcome.
func Fail(message string) Outcome {
	return Outcome{message: message}
}

// Failf returns a business-failure outcome with a formatted message.
func Failf(format string, args ...interface{}) Outcome {
	return Outcome{message: fmt.Sprintf(format, args...)}
}

// FailErr returns a failure outcome carrying the raw error as details.
func FailErr(message string, details error) Outcome {
	return Outcome{message: message, details: details}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool { return o.ok }

// Value returns the terminal value of a successful outcome.
func (o Outcome) Value() interface{} { return o.value }

// Next returns the chained operation of a successful outcome, if any.
func (o Outcome) Next() (Operation, bool) {
	return o.next, o.next != nil
}

// ErrorMessage returns the failure message, empty on success.
func (o Outcome) ErrorMessage() string { return o.message }

// Details returns the raw error behind a failure, if any.
func (o Outcome) Details() error { return o.details }

// String renders the outcome for logs.
func (o Outcome) String() string {
	switch {
	case o.ok && o.next != nil:
		return fmt.Sprintf("continue(%s)", o.next.Name())
	case o.ok:
		return "success"
	default:
		return fmt.Sprintf("failure(%s)", o.message)
	}
}

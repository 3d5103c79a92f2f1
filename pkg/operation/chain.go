package operation

import "fmt"

// RunChain drives root and then every operation its outcomes chain to,
// until an outcome carries a terminal value or a failure. Each operation
// in the chain is invoked exactly once; the terminal operation is solely
// responsible for user-facing presentation.
//
// A panic escaping Invoke itself is unrecoverable at this level: it is
// logged to the mirror sink and returned as an error, and the chain halts.
// An enclosing session loop, if present, decides whether to start over.
func RunChain(rc *RunContext, root Operation) (Outcome, error) {
	op := root
	for {
		out, err := invokeStep(rc, op)
		if err != nil {
			mirror := rc.logs.Mirror()
			mirror.Error().Err(err).Str("op", op.Name()).Msg("chain execution halted")
			return out, err
		}
		if !out.OK() {
			return out, nil
		}
		next, ok := out.Next()
		if !ok {
			return out, nil
		}
		op = next
	}
}

// invokeStep guards one Invoke against catastrophic failure.
func invokeStep(rc *RunContext, op Operation) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unrecoverable failure invoking %s: %v", op.Name(), r)
		}
	}()
	return Invoke(rc, op), nil
}

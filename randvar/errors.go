package randvar

import "fmt"

// InvalidParameterError indicates a malformed distribution parameter:
// non-positive shapes or concentrations, negative probabilities, or a
// scale matrix that is not positive definite. It is surfaced immediately
// and never retried.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

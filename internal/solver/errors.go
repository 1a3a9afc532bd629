package solver

import "errors"

// NotSupportedError marks a system whose mathematical structure the
// engine does not handle (transcendental interactions, coupled
// higher-degree systems). The caller reports these as unsupported
// rather than failed.
type NotSupportedError struct {
	Reason string
}

func (e *NotSupportedError) Error() string { return "not supported: " + e.Reason }

// IsNotSupported reports whether err is a NotSupportedError.
func IsNotSupported(err error) bool {
	var t *NotSupportedError
	return errors.As(err, &t)
}

// errStuck is an internal signal that substitution could make no further
// progress. It never escapes the package; SolveSet converts it into a
// set classification or a NotSupportedError.
var errStuck = errors.New("solver: no isolatable variable")

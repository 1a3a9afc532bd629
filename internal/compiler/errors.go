package compiler

import "fmt"

// CompileError reports a failure to turn request text into symbolic form.
// Offset is a byte offset into Input, or -1 when the error is not tied to
// a position (request-level validation).
type CompileError struct {
	Input   string
	Offset  int
	Message string
}

func (e *CompileError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("equation %q: offset %d: %s", e.Input, e.Offset, e.Message)
	}
	if e.Input != "" {
		return fmt.Sprintf("equation %q: %s", e.Input, e.Message)
	}
	return e.Message
}

func errAt(input string, offset int, format string, args ...any) *CompileError {
	return &CompileError{
		Input:   input,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	}
}

func errRequest(format string, args ...any) *CompileError {
	return &CompileError{
		Offset:  -1,
		Message: fmt.Sprintf(format, args...),
	}
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/solvium-dev/solvium/pkg/algebra"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // the system was solved
	ExitFailure      = 1 // an unsolved or degenerate outcome
	ExitCommandError = 2 // command error (bad flags, missing files, database errors)
)

// ExitError carries a specific exit code out of a command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. A nil error is
// success; a non-ExitError defaults to ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// writeOutcome renders an outcome in the requested format.
func writeOutcome(w io.Writer, format string, out algebra.Outcome) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(out)
	}

	fmt.Fprintf(w, "outcome: %s\n", out.Kind)
	if out.Message != "" {
		fmt.Fprintf(w, "message: %s\n", out.Message)
	}
	for i, cand := range out.Candidates {
		fmt.Fprintf(w, "candidate %d: %s\n", i+1, formatCandidate(cand))
	}
	return nil
}

// formatCandidate renders "x = 3, y = 2" with names sorted for
// deterministic output.
func formatCandidate(c algebra.Candidate) string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s = %s", name, c[name]))
	}
	return strings.Join(parts, ", ")
}

// outcomeExitError maps a degenerate outcome to the command's error,
// nil for solved outcomes.
func outcomeExitError(out algebra.Outcome) error {
	if out.Solved() {
		return nil
	}
	msg := string(out.Kind)
	if out.Message != "" {
		msg = fmt.Sprintf("%s: %s", out.Kind, out.Message)
	}
	return NewExitError(ExitFailure, msg)
}

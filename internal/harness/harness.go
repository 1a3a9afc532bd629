package harness

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/solvium-dev/solvium/internal/compiler"
	"github.com/solvium-dev/solvium/internal/expr"
	"github.com/solvium-dev/solvium/pkg/algebra"
)

// residualTolerance bounds the residual left by substituting a numeric
// candidate back into its equations. Float-derived roots (irrational
// square roots, Cardano cubics) do not cancel exactly.
const residualTolerance = 1e-6

// Result holds the outcome of running one scenario and the validation
// failures, if any.
type Result struct {
	// Scenario is the scenario that was run.
	Scenario *Scenario

	// Outcome is the solver's tagged result.
	Outcome algebra.Outcome

	// Errors lists every expectation that failed. Empty means pass.
	Errors []string

	// Pass reports whether all expectations held.
	Pass bool
}

func (r *Result) failf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Run executes a scenario against the solve pipeline and validates the
// outcome against the scenario's expectations. The returned error covers
// harness-level failures only; expectation failures land in
// Result.Errors with Pass set to false.
func Run(scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}

	token := scenario.Token
	if token == "" {
		token = "conformance-" + scenario.Name
	}
	solver := algebra.New(
		algebra.WithTokenGenerator(algebra.NewFixedGenerator(token)),
		algebra.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	result := &Result{
		Scenario: scenario,
		Outcome:  solver.SolveSystem(scenario.Equations, scenario.Unknowns),
	}

	checkExpectations(result)
	if result.Outcome.Solved() {
		checkResiduals(result)
	}
	result.Pass = len(result.Errors) == 0
	return result, nil
}

// checkExpectations validates the outcome kind, message, and expected
// candidates.
func checkExpectations(r *Result) {
	out := r.Outcome
	want := r.Scenario.Expect

	if string(out.Kind) != want.Kind {
		r.failf("outcome kind: got %q, want %q (message: %s)", out.Kind, want.Kind, out.Message)
		return
	}
	if want.MessageContains != "" && !strings.Contains(out.Message, want.MessageContains) {
		r.failf("outcome message %q does not contain %q", out.Message, want.MessageContains)
	}

	for i, wantCand := range want.Candidates {
		if i >= len(out.Candidates) {
			r.failf("candidate %d: missing (outcome has %d candidates)", i+1, len(out.Candidates))
			continue
		}
		got := out.Candidates[i]
		for name, wantVal := range wantCand {
			val, ok := got[name]
			if !ok {
				r.failf("candidate %d: no value for %q", i+1, name)
				continue
			}
			if val.String() != wantVal {
				r.failf("candidate %d: %s = %s, want %s", i+1, name, val.String(), wantVal)
			}
		}
	}
}

// checkResiduals substitutes every fully numeric candidate back into the
// compiled equations and requires each residual to vanish within
// tolerance. Candidates with symbolic values (free variables) are
// skipped: their residuals are expressions, not numbers.
func checkResiduals(r *Result) {
	_, eqs, err := compiler.Compile(r.Scenario.Equations, r.Scenario.Unknowns)
	if err != nil {
		// A solved outcome from uncompilable input is a pipeline defect.
		r.failf("residual check: recompiling: %v", err)
		return
	}

	for i, cand := range r.Outcome.Candidates {
		numeric := true
		bindings := make(map[string]expr.Expr, len(cand))
		for name, val := range cand {
			switch v := val.(type) {
			case algebra.IntValue:
				bindings[name] = expr.N(v.V)
			case algebra.FloatValue:
				bindings[name] = expr.FromFloat(v.V)
			default:
				numeric = false
			}
		}
		if !numeric {
			continue
		}

		for j, eq := range eqs {
			for name, val := range bindings {
				eq = eq.Substitute(name, val)
			}
			v, ok := eq.Residual().Simplify().Eval()
			if !ok {
				r.failf("candidate %d: equation %d residual is not numeric after substitution", i+1, j+1)
				continue
			}
			f, _ := v.Float64()
			if math.Abs(f) > residualTolerance {
				r.failf("candidate %d: equation %d residual %g exceeds tolerance", i+1, j+1, f)
			}
		}
	}
}

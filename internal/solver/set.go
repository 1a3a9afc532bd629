package solver

import (
	"errors"
	"fmt"

	"github.com/solvium-dev/solvium/internal/expr"
)

// SetKind classifies the solution set of a system.
type SetKind int

const (
	// SetEmpty: the system provably has no solution.
	SetEmpty SetKind = iota
	// SetFinite: finitely many solutions, all extracted.
	SetFinite
	// SetParametric: an infinite, parametrized family of solutions.
	SetParametric
)

func (k SetKind) String() string {
	switch k {
	case SetEmpty:
		return "empty"
	case SetFinite:
		return "finite"
	case SetParametric:
		return "parametric"
	}
	return "unknown"
}

// SetResult is the outcome of the information-preserving solving mode.
// Solutions is populated for SetFinite, and for SetParametric when a
// partial solution over the free variables could be extracted.
type SetResult struct {
	Kind      SetKind
	Solutions []Solution
}

// SolveSet is the secondary solving mode: instead of just producing
// candidates it classifies the solution set as empty, finite, or
// parametric. Used to disambiguate an empty primary result.
func SolveSet(eqs []expr.Equation, unknowns []string) (SetResult, error) {
	residuals := residualsOf(eqs)

	if sol, outcome, handled := solveLinearSystem(residuals, unknowns); handled {
		switch outcome {
		case linearInconsistent:
			return SetResult{Kind: SetEmpty}, nil
		case linearUnique:
			return SetResult{Kind: SetFinite, Solutions: []Solution{sol}}, nil
		default:
			return SetResult{Kind: SetParametric, Solutions: []Solution{sol}}, nil
		}
	}

	sols, err := substituteBranch(residuals, unknowns, nil)
	if err != nil {
		if errors.Is(err, errStuck) {
			return classifyStuck(residuals, unknowns)
		}
		return SetResult{}, err
	}
	sols = verify(sols, residuals)
	if len(sols) == 0 {
		return SetResult{Kind: SetEmpty}, nil
	}
	sortSolutions(sols, unknowns)
	if anyFreeValue(sols) {
		return SetResult{Kind: SetParametric, Solutions: sols}, nil
	}
	return SetResult{Kind: SetFinite, Solutions: sols}, nil
}

// classifyStuck decides what a stuck substitution means. A system that
// is polynomial in every unknown but has fewer constraints than
// unknowns is a parametric family; anything else is beyond the
// supported structures.
func classifyStuck(residuals []expr.Expr, unknowns []string) (SetResult, error) {
	live := 0
	for _, r := range residuals {
		s := r.Simplify()
		if v, ok := s.Eval(); ok && v.Sign() == 0 {
			continue
		}
		live++
		for _, u := range unknowns {
			if !expr.ContainsSymbol(s, u) {
				continue
			}
			if _, ok := polyCoeffsInVar(s, u); !ok {
				return SetResult{}, &NotSupportedError{
					Reason: fmt.Sprintf("equation %q is not algebraic in %q", s.String(), u),
				}
			}
		}
	}
	if live < len(unknowns) {
		return SetResult{Kind: SetParametric}, nil
	}
	return SetResult{}, &NotSupportedError{
		Reason: "coupled polynomial system is beyond the supported structures",
	}
}

func anyFreeValue(sols []Solution) bool {
	for _, sol := range sols {
		for _, v := range sol {
			if len(expr.FreeSymbols(v)) > 0 {
				return true
			}
		}
	}
	return false
}

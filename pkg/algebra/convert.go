package algebra

import (
	"github.com/solvium-dev/solvium/internal/expr"
	"github.com/solvium-dev/solvium/internal/solver"
)

// convertValue applies the numeric conversion policy: exact integer ->
// IntValue, any other finite numeric value -> FloatValue, everything
// else -> the canonical string form. Deterministic: the same solved
// value always converts to the same representation.
func convertValue(e expr.Expr) Value {
	v, ok := e.Eval()
	if !ok {
		return ExprValue{V: e.String()}
	}
	if v.IsInt() && v.Num().IsInt64() {
		return IntValue{V: v.Num().Int64()}
	}
	f, _ := v.Float64()
	return FloatValue{V: f}
}

// toCandidates converts solver solutions into ordered candidates.
func toCandidates(sols []solver.Solution, unknowns []string) []Candidate {
	out := make([]Candidate, 0, len(sols))
	for _, sol := range sols {
		c := make(Candidate, len(unknowns))
		for _, name := range unknowns {
			val := sol[name]
			if val == nil {
				val = expr.S(name)
			}
			c[name] = convertValue(val)
		}
		out = append(out, c)
	}
	return out
}

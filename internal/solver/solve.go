package solver

import (
	"errors"
	"math"
	"math/big"
	"sort"

	"github.com/solvium-dev/solvium/internal/expr"
)

// Solution binds every requested unknown to a value expression: a plain
// number when determined, an expression over the free unknowns (or the
// unknown itself) when not.
type Solution map[string]expr.Expr

// residualTolerance bounds the acceptable residual when verifying a
// candidate that carries float-derived roots.
const residualTolerance = 1e-6

// Solve is the primary solving mode: it returns every solution
// candidate found, in deterministic order. An empty result with a nil
// error means this mode found nothing; SolveSet disambiguates whether
// that is "provably none" or "infinitely many".
func Solve(eqs []expr.Equation, unknowns []string) ([]Solution, error) {
	residuals := residualsOf(eqs)

	if sol, outcome, handled := solveLinearSystem(residuals, unknowns); handled {
		if outcome == linearInconsistent {
			return nil, nil
		}
		return []Solution{sol}, nil
	}

	sols, err := substituteBranch(residuals, unknowns, nil)
	if err != nil {
		if errors.Is(err, errStuck) {
			return nil, nil
		}
		return nil, err
	}
	sols = verify(sols, residuals)
	sortSolutions(sols, unknowns)
	return sols, nil
}

func residualsOf(eqs []expr.Equation) []expr.Expr {
	out := make([]expr.Expr, len(eqs))
	for i, eq := range eqs {
		out[i] = eq.Residual()
	}
	return out
}

type binding struct {
	name  string
	value expr.Expr
}

// substituteBranch solves a nonlinear system by repeatedly isolating
// one variable from one residual and substituting it through the rest,
// branching on multiple roots. Candidate search order is deterministic:
// residuals in input order, unknowns in declaration order.
func substituteBranch(residuals []expr.Expr, unknowns []string, bound []binding) ([]Solution, error) {
	live := make([]expr.Expr, 0, len(residuals))
	for _, r := range residuals {
		s := r.Simplify()
		if v, ok := s.Eval(); ok {
			// Float-derived roots leave sub-tolerance residue rather
			// than cancelling exactly.
			if f, _ := v.Float64(); math.Abs(f) > residualTolerance {
				return nil, nil // contradiction on this branch
			}
			continue // satisfied constraint
		}
		live = append(live, s)
	}
	if len(live) == 0 {
		return []Solution{resolve(bound, unknowns)}, nil
	}

	isBound := map[string]bool{}
	for _, b := range bound {
		isBound[b.name] = true
	}

	for _, r := range live {
		for _, u := range unknowns {
			if isBound[u] || !expr.ContainsSymbol(r, u) {
				continue
			}
			coeffs, ok := polyCoeffsInVar(r, u)
			if !ok {
				continue
			}

			if rats, numeric := numericCoeffs(coeffs); numeric {
				roots, err := realRoots(rats)
				if err != nil {
					return nil, err
				}
				var out []Solution
				for _, root := range roots {
					next := substituteInto(live, u, root)
					sols, err := substituteBranch(next, unknowns, append(bound, binding{u, root}))
					if err != nil {
						return nil, err
					}
					out = append(out, sols...)
				}
				return out, nil
			}

			// Linear in u with an invertible numeric leading coefficient:
			// isolate u symbolically over the remaining unknowns.
			if polyDegree(coeffs) == 1 {
				lead, evalOK := coeffs[1].Eval()
				if !evalOK || lead.Sign() == 0 {
					continue
				}
				c0 := coeffs[0]
				if c0 == nil {
					c0 = expr.N(0)
				}
				value := expr.MulOf(expr.Neg(c0), expr.FromRat(new(big.Rat).Inv(lead)))
				if len(expr.FreeSymbols(value)) == 0 {
					// A symbol-free value that still cannot evaluate
					// (division by zero, unfoldable power) satisfies
					// nothing; the constraint is unsatisfiable.
					if _, ok := value.Eval(); !ok {
						return nil, nil
					}
				}
				next := substituteInto(live, u, value)
				return substituteBranch(next, unknowns, append(bound, binding{u, value}))
			}
		}
	}
	return nil, errStuck
}

func substituteInto(residuals []expr.Expr, name string, value expr.Expr) []expr.Expr {
	out := make([]expr.Expr, len(residuals))
	for i, r := range residuals {
		out[i] = r.Substitute(name, value)
	}
	return out
}

// resolve turns the binding chain into a full Solution. Bindings may
// reference unknowns bound later in the chain (x = y, then y = 1), so
// values are substituted through each other until stable; a chain is
// never cyclic because a bound variable is eliminated from every
// remaining residual at bind time.
func resolve(bound []binding, unknowns []string) Solution {
	sol := make(Solution, len(unknowns))
	for _, b := range bound {
		sol[b.name] = b.value
	}
	for _, u := range unknowns {
		if _, ok := sol[u]; !ok {
			sol[u] = expr.S(u)
		}
	}
	for range unknowns {
		for name, val := range sol {
			for other, ov := range sol {
				if other == name {
					continue
				}
				val = val.Substitute(other, ov)
			}
			sol[name] = val
		}
	}
	return sol
}

// verify drops candidates whose residuals are numerically nonzero.
// Float-derived roots (cubics) cannot cancel exactly, so a small
// tolerance applies; residuals that keep free symbols pass through.
func verify(sols []Solution, residuals []expr.Expr) []Solution {
	out := sols[:0]
	for _, sol := range sols {
		ok := true
		for _, r := range residuals {
			sub := r
			for name, val := range sol {
				sub = sub.Substitute(name, val)
			}
			v, evalOK := sub.Eval()
			if !evalOK {
				continue
			}
			f, _ := v.Float64()
			if math.Abs(f) > residualTolerance {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, sol)
		}
	}
	return out
}

// sortSolutions orders candidates by comparing values unknown by
// unknown in declaration order: numeric values ascending, with numeric
// sorting before symbolic, then canonical strings.
func sortSolutions(sols []Solution, unknowns []string) {
	sort.SliceStable(sols, func(i, j int) bool {
		for _, u := range unknowns {
			a, b := sols[i][u], sols[j][u]
			av, aok := a.Eval()
			bv, bok := b.Eval()
			switch {
			case aok && bok:
				if c := av.Cmp(bv); c != 0 {
					return c < 0
				}
			case aok:
				return true
			case bok:
				return false
			default:
				if as, bs := a.String(), b.String(); as != bs {
					return as < bs
				}
			}
		}
		return false
	})
}

// polyCoeffsInVar extracts polynomial coefficients of e in one
// variable, with coefficients as expressions over everything else.
// ok is false when e is not polynomial in the variable.
func polyCoeffsInVar(e expr.Expr, name string) (map[int]expr.Expr, bool) {
	var terms []expr.Expr
	ex := expr.Expand(e)
	if a, isAdd := ex.(*expr.Add); isAdd {
		terms = a.Terms()
	} else {
		terms = []expr.Expr{ex}
	}

	parts := map[int][]expr.Expr{}
	for _, t := range terms {
		deg, cofactor, ok := termInVar(t, name)
		if !ok {
			return nil, false
		}
		parts[deg] = append(parts[deg], cofactor)
	}

	coeffs := make(map[int]expr.Expr, len(parts))
	for deg, ps := range parts {
		coeffs[deg] = expr.AddOf(ps...)
	}
	return coeffs, true
}

// termInVar decomposes a single expanded term as cofactor * name^deg.
func termInVar(t expr.Expr, name string) (int, expr.Expr, bool) {
	if !expr.ContainsSymbol(t, name) {
		return 0, t, true
	}
	switch v := t.(type) {
	case *expr.Sym:
		return 1, expr.N(1), true
	case *expr.Pow:
		s, isSym := v.Base().(*expr.Sym)
		if !isSym || s.Name() != name {
			return 0, nil, false
		}
		n, isNum := v.Exp().(*expr.Num)
		if !isNum || !n.IsInteger() || n.IsNegative() || !n.Rat().Num().IsInt64() {
			return 0, nil, false
		}
		return int(n.Rat().Num().Int64()), expr.N(1), true
	case *expr.Mul:
		deg := 0
		cofactors := make([]expr.Expr, 0, len(v.Factors()))
		for _, f := range v.Factors() {
			d, c, ok := termInVar(f, name)
			if !ok {
				return 0, nil, false
			}
			deg += d
			cofactors = append(cofactors, c)
		}
		return deg, expr.MulOf(cofactors...), true
	}
	// The variable inside a call or an exponent is not polynomial.
	return 0, nil, false
}

func polyDegree(coeffs map[int]expr.Expr) int {
	deg := 0
	for d, c := range coeffs {
		if d <= deg {
			continue
		}
		if n, ok := c.(*expr.Num); ok && n.IsZero() {
			continue
		}
		deg = d
	}
	return deg
}

func numericCoeffs(coeffs map[int]expr.Expr) (map[int]*big.Rat, bool) {
	out := make(map[int]*big.Rat, len(coeffs))
	for d, c := range coeffs {
		v, ok := c.Eval()
		if !ok {
			return nil, false
		}
		out[d] = v
	}
	return out, true
}

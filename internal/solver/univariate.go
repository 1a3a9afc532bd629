package solver

import (
	"fmt"
	"math"
	"math/big"
	"sort"

	"github.com/solvium-dev/solvium/internal/expr"
)

// maxPolyDegree is the highest univariate degree the engine solves.
const maxPolyDegree = 3

// realRoots returns the real roots of a univariate polynomial with
// rational coefficients, ascending and duplicate-free. coeffs[k]
// multiplies x^k; the caller guarantees a nonzero leading coefficient
// of degree >= 1. Roots of degree <= 2 polynomials are exact where the
// discriminant permits; irrational and cubic roots come back as
// float-approximated rationals, verified downstream against the
// residual tolerance.
func realRoots(coeffs map[int]*big.Rat) ([]expr.Expr, error) {
	at := func(d int) *big.Rat {
		if c, ok := coeffs[d]; ok {
			return new(big.Rat).Set(c)
		}
		return new(big.Rat)
	}
	deg := 0
	for d, c := range coeffs {
		if c.Sign() != 0 && d > deg {
			deg = d
		}
	}

	var roots []expr.Expr
	switch deg {
	case 1:
		// c1*x + c0 = 0
		r := at(0)
		r.Quo(r, at(1))
		r.Neg(r)
		roots = []expr.Expr{expr.FromRat(r)}
	case 2:
		roots = quadraticRoots(at(2), at(1), at(0))
	case 3:
		var err error
		roots, err = cubicRoots(at(3), at(2), at(1), at(0))
		if err != nil {
			return nil, err
		}
	default:
		return nil, &NotSupportedError{
			Reason: fmt.Sprintf("polynomial of degree %d exceeds the supported degree %d", deg, maxPolyDegree),
		}
	}
	return sortRoots(roots), nil
}

// quadraticRoots solves a*x^2 + b*x + c = 0 over the reals. A negative
// discriminant yields no roots. Perfect-square discriminants fold to
// exact rationals; otherwise the sqrt stays as a constant expression.
func quadraticRoots(a, b, c *big.Rat) []expr.Expr {
	// disc = b^2 - 4ac
	disc := new(big.Rat).Mul(b, b)
	fourAC := new(big.Rat).Mul(a, c)
	fourAC.Mul(fourAC, big.NewRat(4, 1))
	disc.Sub(disc, fourAC)

	negB := new(big.Rat).Neg(b)
	halfInvA := new(big.Rat).Inv(a)
	halfInvA.Mul(halfInvA, big.NewRat(1, 2))

	switch disc.Sign() {
	case -1:
		return nil
	case 0:
		r := new(big.Rat).Mul(negB, halfInvA)
		return []expr.Expr{expr.FromRat(r)}
	}

	sqrtDisc := expr.CallOf("sqrt", expr.FromRat(disc))
	scale := expr.FromRat(halfInvA)
	return []expr.Expr{
		expr.MulOf(expr.AddOf(expr.FromRat(negB), expr.Neg(sqrtDisc)), scale),
		expr.MulOf(expr.AddOf(expr.FromRat(negB), sqrtDisc), scale),
	}
}

// cubicRoots solves a*x^3 + b*x^2 + c*x + d = 0 over the reals. A
// rational root, when one exists, is found exactly and the remainder
// deflates to a quadratic; otherwise the real roots come from the
// trigonometric/Cardano form through float64.
func cubicRoots(a, b, c, d *big.Rat) ([]expr.Expr, error) {
	if r, ok := rationalRoot(a, b, c, d); ok {
		// Deflate: a*x^3+b*x^2+c*x+d = (x - r)(a*x^2 + e*x + f)
		e := new(big.Rat).Mul(a, r)
		e.Add(e, b)
		f := new(big.Rat).Mul(e, r)
		f.Add(f, c)
		roots := append([]expr.Expr{expr.FromRat(r)}, quadraticRoots(a, e, f)...)
		return roots, nil
	}

	af, _ := a.Float64()
	bf, _ := b.Float64()
	cf, _ := c.Float64()
	df, _ := d.Float64()

	// Depress: x = t - b/(3a), t^3 + p*t + q = 0.
	shift := bf / (3 * af)
	p := cf/af - shift*shift*3
	q := 2*shift*shift*shift - shift*cf/af + df/af

	var ts []float64
	disc := -4*p*p*p - 27*q*q
	if disc > 0 {
		// Three real roots (casus irreducibilis).
		m := 2 * math.Sqrt(-p/3)
		arg := 3 * q / (p * m)
		// Rounding can push the argument a hair outside [-1, 1].
		arg = math.Max(-1, math.Min(1, arg))
		theta := math.Acos(arg)
		for k := 0; k < 3; k++ {
			ts = append(ts, m*math.Cos(theta/3-2*math.Pi*float64(k)/3))
		}
	} else {
		// One real root via Cardano.
		half := -q / 2
		s := math.Sqrt(q*q/4 + p*p*p/27)
		ts = append(ts, math.Cbrt(half+s)+math.Cbrt(half-s))
	}

	roots := make([]expr.Expr, 0, len(ts))
	for _, t := range ts {
		roots = append(roots, expr.FromFloat(t-shift))
	}
	return roots, nil
}

// rationalRoot searches for an exact rational root p/q with p dividing
// the constant term and q the leading coefficient, after scaling the
// polynomial to integer coefficients. The search is skipped when the
// scaled terms overflow int64.
func rationalRoot(a, b, c, d *big.Rat) (*big.Rat, bool) {
	ints, ok := integerScale(a, b, c, d)
	if !ok {
		return nil, false
	}
	ia, id := ints[0], ints[3]
	if id == 0 {
		return new(big.Rat), true // x = 0
	}

	eval := func(r *big.Rat) bool {
		acc := new(big.Rat)
		x := new(big.Rat).SetInt64(1)
		for _, coef := range []int64{ints[3], ints[2], ints[1], ints[0]} {
			term := new(big.Rat).SetInt64(coef)
			term.Mul(term, x)
			acc.Add(acc, term)
			x.Mul(x, r)
		}
		return acc.Sign() == 0
	}

	for _, p := range divisors(id) {
		for _, q := range divisors(ia) {
			for _, sign := range []int64{1, -1} {
				r := big.NewRat(sign*p, q)
				if eval(r) {
					return r, true
				}
			}
		}
	}
	return nil, false
}

// integerScale clears denominators, returning [a, b, c, d] as int64.
func integerScale(coeffs ...*big.Rat) ([]int64, bool) {
	lcm := big.NewInt(1)
	for _, c := range coeffs {
		den := c.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, den)
		lcm.Div(lcm, g)
		lcm.Mul(lcm, den)
	}
	out := make([]int64, len(coeffs))
	for i, c := range coeffs {
		v := new(big.Rat).Set(c)
		v.Mul(v, new(big.Rat).SetInt(lcm))
		if !v.IsInt() || !v.Num().IsInt64() {
			return nil, false
		}
		out[i] = v.Num().Int64()
	}
	return out, true
}

func divisors(n int64) []int64 {
	if n < 0 {
		n = -n
	}
	var out []int64
	for i := int64(1); i*i <= n; i++ {
		if n%i != 0 {
			continue
		}
		out = append(out, i)
		if j := n / i; j != i {
			out = append(out, j)
		}
	}
	return out
}

// sortRoots orders constant roots ascending by value and removes
// duplicates. Every root produced above evaluates to a rational.
func sortRoots(roots []expr.Expr) []expr.Expr {
	type keyed struct {
		val  *big.Rat
		root expr.Expr
	}
	ks := make([]keyed, 0, len(roots))
	for _, r := range roots {
		v, ok := r.Eval()
		if !ok {
			v = new(big.Rat)
		}
		ks = append(ks, keyed{val: v, root: r})
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].val.Cmp(ks[j].val) < 0 })

	out := make([]expr.Expr, 0, len(ks))
	for i, k := range ks {
		if i > 0 && k.val.Cmp(ks[i-1].val) == 0 {
			continue
		}
		out = append(out, k.root)
	}
	return out
}

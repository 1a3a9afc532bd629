package expr

import (
	"math/big"
)

// maxExpandExp bounds expansion of integer powers of sums.
const maxExpandExp = 8

// Expand distributes products over sums and unrolls small integer powers,
// then simplifies. Coefficient extraction below relies on expanded form.
func Expand(e Expr) Expr { return expand(e).Simplify() }

func expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = expand(t)
		}
		return AddOf(out...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = expand(f)
		}
		for i, f := range factors {
			a, ok := f.(*Add)
			if !ok {
				continue
			}
			rest := make([]Expr, 0, len(factors)-1)
			rest = append(rest, factors[:i]...)
			rest = append(rest, factors[i+1:]...)
			terms := make([]Expr, len(a.terms))
			for k, t := range a.terms {
				terms[k] = expand(MulOf(append([]Expr{t}, rest...)...))
			}
			return AddOf(terms...)
		}
		return MulOf(factors...)
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && !n.IsNegative() {
			e := n.val.Num().Int64()
			if e <= maxExpandExp {
				base := expand(v.base)
				a, isAdd := base.(*Add)
				if !isAdd {
					return PowOf(base, v.exp)
				}
				// Multiply out term by term. Expanded sub-terms carry no
				// nested sums, so the products stay monomial.
				out := []Expr{N(1)}
				for i := int64(0); i < e; i++ {
					next := make([]Expr, 0, len(out)*len(a.terms))
					for _, t := range out {
						for _, bt := range a.terms {
							next = append(next, MulOf(t, bt))
						}
					}
					out = next
				}
				return AddOf(out...)
			}
		}
		return PowOf(expand(v.base), expand(v.exp))
	}
	return e
}

// LinearCoeffs decomposes e as sum(coeffs[name]*name) + constant over the
// given unknowns. Returns ok=false when e is not linear in the unknowns
// (higher powers, products of unknowns, or unknowns inside function calls).
func LinearCoeffs(e Expr, unknowns []string) (coeffs map[string]*big.Rat, constant *big.Rat, ok bool) {
	set := make(map[string]struct{}, len(unknowns))
	for _, u := range unknowns {
		set[u] = struct{}{}
	}

	coeffs = make(map[string]*big.Rat, len(unknowns))
	constant = new(big.Rat)
	addCoeff := func(name string, c *big.Rat) {
		if cur, seen := coeffs[name]; seen {
			cur.Add(cur, c)
			return
		}
		coeffs[name] = new(big.Rat).Set(c)
	}

	var terms []Expr
	if a, isAdd := Expand(e).(*Add); isAdd {
		terms = a.terms
	} else {
		terms = []Expr{Expand(e)}
	}

	one := new(big.Rat).SetInt64(1)
	for _, t := range terms {
		if v, evalOK := t.Eval(); evalOK {
			constant.Add(constant, v)
			continue
		}
		switch v := t.(type) {
		case *Sym:
			if _, bound := set[v.name]; !bound {
				return nil, nil, false
			}
			addCoeff(v.name, one)
		case *Mul:
			c := new(big.Rat).SetInt64(1)
			var sym *Sym
			for _, f := range v.factors {
				if fv, evalOK := f.Eval(); evalOK {
					c.Mul(c, fv)
					continue
				}
				s, isSym := f.(*Sym)
				if !isSym || sym != nil {
					return nil, nil, false
				}
				if _, bound := set[s.name]; !bound {
					return nil, nil, false
				}
				sym = s
			}
			if sym == nil {
				return nil, nil, false
			}
			addCoeff(sym.name, c)
		default:
			return nil, nil, false
		}
	}
	return coeffs, constant, true
}

// Degree returns the polynomial degree of e in the named symbol, or -1
// if e is not a polynomial in it.
func Degree(e Expr, name string) int {
	coeffs, ok := RatPolyCoeffs(e, name)
	if !ok {
		return -1
	}
	deg := 0
	for d, c := range coeffs {
		if c.Sign() != 0 && d > deg {
			deg = d
		}
	}
	return deg
}

// RatPolyCoeffs extracts numeric polynomial coefficients of e in the
// named symbol: coeffs[k] multiplies name^k. Returns ok=false when e is
// not a univariate polynomial with rational coefficients.
func RatPolyCoeffs(e Expr, name string) (map[int]*big.Rat, bool) {
	coeffs := map[int]*big.Rat{}
	add := func(deg int, c *big.Rat) {
		if cur, seen := coeffs[deg]; seen {
			cur.Add(cur, c)
			return
		}
		coeffs[deg] = new(big.Rat).Set(c)
	}

	var terms []Expr
	if a, isAdd := Expand(e).(*Add); isAdd {
		terms = a.terms
	} else {
		terms = []Expr{Expand(e)}
	}

	for _, t := range terms {
		deg, c, ok := monomial(t, name)
		if !ok {
			return nil, false
		}
		add(deg, c)
	}
	return coeffs, true
}

// monomial decomposes a single expanded term as c * name^deg.
func monomial(t Expr, name string) (int, *big.Rat, bool) {
	if v, ok := t.Eval(); ok {
		return 0, v, true
	}
	switch v := t.(type) {
	case *Sym:
		if v.name != name {
			return 0, nil, false
		}
		return 1, new(big.Rat).SetInt64(1), true
	case *Pow:
		d, ok := symPowDegree(v, name)
		if !ok {
			return 0, nil, false
		}
		return d, new(big.Rat).SetInt64(1), true
	case *Mul:
		deg := 0
		c := new(big.Rat).SetInt64(1)
		for _, f := range v.factors {
			if fv, ok := f.Eval(); ok {
				c.Mul(c, fv)
				continue
			}
			switch fv := f.(type) {
			case *Sym:
				if fv.name != name {
					return 0, nil, false
				}
				deg++
			case *Pow:
				d, ok := symPowDegree(fv, name)
				if !ok {
					return 0, nil, false
				}
				deg += d
			default:
				return 0, nil, false
			}
		}
		return deg, c, true
	}
	return 0, nil, false
}

func symPowDegree(p *Pow, name string) (int, bool) {
	s, ok := p.base.(*Sym)
	if !ok || s.name != name {
		return 0, false
	}
	n, ok := p.exp.(*Num)
	if !ok || !n.IsInteger() || n.IsNegative() || !n.val.Num().IsInt64() {
		return 0, false
	}
	return int(n.val.Num().Int64()), true
}

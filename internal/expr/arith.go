package expr

import (
	"math/big"
	"sort"
)

// Add is a sum of terms.
type Add struct{ terms []Expr }

// Mul is a product of factors.
type Mul struct{ factors []Expr }

// Pow is base raised to exp.
type Pow struct{ base, exp Expr }

// AddOf builds a simplified sum.
func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// MulOf builds a simplified product.
func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// PowOf builds a simplified power.
func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// Neg returns -e.
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

// Sub returns a - b.
func Sub(a, b Expr) Expr { return AddOf(a, Neg(b)) }

// Div returns a * b^-1.
func Div(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

func (a *Add) Terms() []Expr   { return a.terms }
func (m *Mul) Factors() []Expr { return m.factors }
func (p *Pow) Base() Expr      { return p.base }
func (p *Pow) Exp() Expr       { return p.exp }

// termDegree approximates the total symbolic degree of a term, used only
// to order sum terms (higher degree first).
func termDegree(e Expr) int {
	switch v := e.(type) {
	case *Sym, *Call:
		return 1
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && !n.IsNegative() && n.val.Num().IsInt64() {
			return int(n.val.Num().Int64()) * termDegree(v.base)
		}
		return 1
	case *Mul:
		total := 0
		for _, f := range v.factors {
			total += termDegree(f)
		}
		return total
	case *Add:
		max := 0
		for _, t := range v.terms {
			if d := termDegree(t); d > max {
				max = d
			}
		}
		return max
	}
	return 0
}

// splitCoeff separates a leading rational coefficient from a term.
// A bare Num returns (value, nil); anything else returns (coeff, rest)
// where rest carries no leading numeric factor.
func splitCoeff(e Expr) (*big.Rat, Expr) {
	switch v := e.(type) {
	case *Num:
		return v.Rat(), nil
	case *Mul:
		if len(v.factors) >= 2 {
			if n, ok := v.factors[0].(*Num); ok {
				rest := v.factors[1:]
				if len(rest) == 1 {
					return n.Rat(), rest[0]
				}
				return n.Rat(), &Mul{factors: rest}
			}
		}
	}
	return new(big.Rat).SetInt64(1), e
}

// rescale rebuilds coeff*rest without re-running full simplification.
// rest must already be simplified and free of a leading numeric factor.
func rescale(coeff *big.Rat, rest Expr) Expr {
	if rest == nil {
		return FromRat(coeff)
	}
	one := new(big.Rat).SetInt64(1)
	if coeff.Cmp(one) == 0 {
		return rest
	}
	if m, ok := rest.(*Mul); ok {
		factors := append([]Expr{FromRat(coeff)}, m.factors...)
		return &Mul{factors: factors}
	}
	return &Mul{factors: []Expr{FromRat(coeff), rest}}
}

func (a *Add) Simplify() Expr {
	// Flatten nested sums and fold constants.
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	constant := new(big.Rat)
	type group struct {
		coeff *big.Rat
		rest  Expr
	}
	groups := map[string]*group{}
	for _, t := range flat {
		coeff, rest := splitCoeff(t)
		if rest == nil {
			constant.Add(constant, coeff)
			continue
		}
		key := rest.String()
		g, seen := groups[key]
		if !seen {
			groups[key] = &group{coeff: coeff, rest: rest}
			continue
		}
		g.coeff.Add(g.coeff, coeff)
	}

	type ordered struct {
		key string
		deg int
		g   *group
	}
	byOrder := make([]ordered, 0, len(groups))
	for k, g := range groups {
		if g.coeff.Sign() == 0 {
			continue
		}
		byOrder = append(byOrder, ordered{key: k, deg: termDegree(g.rest), g: g})
	}
	// Higher-degree terms first, ties broken by the canonical key.
	sort.Slice(byOrder, func(i, j int) bool {
		if byOrder[i].deg != byOrder[j].deg {
			return byOrder[i].deg > byOrder[j].deg
		}
		return byOrder[i].key < byOrder[j].key
	})

	result := make([]Expr, 0, len(byOrder)+1)
	for _, o := range byOrder {
		result = append(result, rescale(o.g.coeff, o.g.rest))
	}
	if constant.Sign() != 0 {
		result = append(result, FromRat(constant))
	}

	switch len(result) {
	case 0:
		return N(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result}
}

func (a *Add) Substitute(name string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Substitute(name, value)
	}
	return AddOf(out...)
}

func (a *Add) Eval() (*big.Rat, bool) {
	acc := new(big.Rat)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc.Add(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) node() {}

func (m *Mul) Simplify() Expr {
	// Flatten nested products and fold the numeric coefficient.
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := new(big.Rat).SetInt64(1)
	type group struct {
		base Expr
		exps []Expr
	}
	groups := map[string]*group{}
	var order []string
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff.Mul(coeff, n.val)
			continue
		}
		base, exp := Expr(f), Expr(N(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		key := base.String()
		g, seen := groups[key]
		if !seen {
			groups[key] = &group{base: base, exps: []Expr{exp}}
			order = append(order, key)
			continue
		}
		g.exps = append(g.exps, exp)
	}
	if coeff.Sign() == 0 {
		return N(0)
	}

	pieces := make([]Expr, 0, len(order))
	for _, key := range order {
		g := groups[key]
		exp := AddOf(g.exps...)
		if n, ok := exp.(*Num); ok && n.IsZero() {
			continue
		}
		piece := PowOf(g.base, exp)
		// Exact rational powers fold into the coefficient.
		if n, ok := piece.(*Num); ok {
			coeff.Mul(coeff, n.val)
			continue
		}
		pieces = append(pieces, piece)
	}
	if coeff.Sign() == 0 {
		return N(0)
	}

	sort.Slice(pieces, func(i, j int) bool { return pieces[i].String() < pieces[j].String() })

	one := new(big.Rat).SetInt64(1)
	if len(pieces) == 0 {
		return FromRat(coeff)
	}
	if coeff.Cmp(one) == 0 {
		if len(pieces) == 1 {
			return pieces[0]
		}
		return &Mul{factors: pieces}
	}
	return &Mul{factors: append([]Expr{FromRat(coeff)}, pieces...)}
}

func (m *Mul) Substitute(name string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Substitute(name, value)
	}
	return MulOf(out...)
}

func (m *Mul) Eval() (*big.Rat, bool) {
	acc := new(big.Rat).SetInt64(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc.Mul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) node() {}

// maxFoldExp bounds exact exponentiation of rational constants.
const maxFoldExp = 64

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}

	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			if en, ok2 := exp.(*Num); ok2 && !en.IsZero() && !en.IsNegative() {
				return N(0)
			}
			// 0^0 and 0^negative stay unevaluated.
			return &Pow{base: base, exp: exp}
		}
		if bn.IsOne() {
			return N(1)
		}
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() && en.val.Num().IsInt64() {
			e := en.val.Num().Int64()
			if e >= -maxFoldExp && e <= maxFoldExp {
				return FromRat(ratPow(bn.val, e))
			}
		}
	}

	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	return &Pow{base: base, exp: exp}
}

// ratPow computes r^e exactly for integer e. r must be nonzero when e < 0.
func ratPow(r *big.Rat, e int64) *big.Rat {
	neg := e < 0
	if neg {
		e = -e
	}
	out := new(big.Rat).SetInt64(1)
	for i := int64(0); i < e; i++ {
		out.Mul(out, r)
	}
	if neg {
		out.Inv(out)
	}
	return out
}

func (p *Pow) Substitute(name string, value Expr) Expr {
	return PowOf(p.base.Substitute(name, value), p.exp.Substitute(name, value))
}

func (p *Pow) Eval() (*big.Rat, bool) {
	b, bok := p.base.Eval()
	e, eok := p.exp.Eval()
	if !bok || !eok {
		return nil, false
	}
	if e.IsInt() && e.Num().IsInt64() {
		n := e.Num().Int64()
		if n >= -maxFoldExp && n <= maxFoldExp {
			if b.Sign() == 0 && n <= 0 {
				return nil, false
			}
			return ratPow(b, n), true
		}
	}
	// Non-integer exponent: fall back to floating point.
	bf, _ := b.Float64()
	ef, _ := e.Float64()
	return floatRat(powFloat(bf, ef))
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) node() {}

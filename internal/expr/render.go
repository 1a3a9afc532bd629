package expr

import (
	"math/big"
	"strings"
)

// Canonical rendering rules:
//   - sums list symbol-bearing terms in sorted key order, constant last,
//     with negative terms folded into " - "
//   - products print the rational coefficient first, factors sorted
//   - powers use "^", parenthesizing composite bases and exponents
// Simplify establishes the term/factor order; String only renders it.

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (s *Sym) String() string { return s.name }

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		body, neg := renderSigned(t)
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
			sb.WriteString(body)
		case i == 0:
			sb.WriteString(body)
		case neg:
			sb.WriteString(" - ")
			sb.WriteString(body)
		default:
			sb.WriteString(" + ")
			sb.WriteString(body)
		}
	}
	return sb.String()
}

// renderSigned renders a term with its sign split out, so sums can fold
// negative terms into subtraction.
func renderSigned(t Expr) (string, bool) {
	switch v := t.(type) {
	case *Num:
		if v.IsNegative() {
			abs := new(big.Rat).Neg(v.val)
			return FromRat(abs).String(), true
		}
	case *Mul:
		if len(v.factors) >= 2 {
			if n, ok := v.factors[0].(*Num); ok && n.IsNegative() {
				abs := new(big.Rat).Neg(n.val)
				return rescale(abs, &Mul{factors: v.factors[1:]}).String(), true
			}
		}
	}
	return t.String(), false
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, 0, len(m.factors))
	for i, f := range m.factors {
		if i == 0 {
			if n, ok := f.(*Num); ok && n.IsNegOne() && len(m.factors) > 1 {
				// -1 coefficient folds into a sign prefix on the next factor.
				continue
			}
		}
		s := f.String()
		if _, isAdd := f.(*Add); isAdd {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	joined := strings.Join(parts, "*")
	if n, ok := m.factors[0].(*Num); ok && n.IsNegOne() && len(m.factors) > 1 {
		return "-" + joined
	}
	return joined
}

func (p *Pow) String() string {
	base := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		base = "(" + base + ")"
	}
	exp := p.exp.String()
	if !plainExponent(p.exp) {
		exp = "(" + exp + ")"
	}
	return base + "^" + exp
}

// plainExponent reports whether the exponent renders unambiguously
// without parentheses: a nonnegative integer or a bare symbol.
func plainExponent(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.IsInteger() && !v.IsNegative()
	case *Sym:
		return true
	}
	return false
}

func (c *Call) String() string { return c.name + "(" + c.arg.String() + ")" }

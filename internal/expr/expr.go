package expr

import (
	"math/big"
	"sort"
)

// Expr is the sealed interface implemented by every expression node.
// Only Num, Sym, Add, Mul, Pow, and Call implement it.
type Expr interface {
	// Simplify returns a deterministically simplified copy of the expression.
	Simplify() Expr

	// Substitute replaces every occurrence of the named symbol with value.
	// The result is simplified.
	Substitute(name string, value Expr) Expr

	// Eval attempts to reduce the expression to a rational value. Exact
	// where possible; irrational function values (e.g. sqrt(2)) come
	// back as float-approximated rationals. Returns (nil, false) if any
	// free symbol remains or no finite value exists (division by zero,
	// overflowing powers).
	Eval() (*big.Rat, bool)

	// String renders the canonical textual form. See doc.go.
	String() string

	// Equal reports structural equality with another expression.
	Equal(other Expr) bool

	node() // sealed
}

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// N builds an integer constant.
func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// Frac builds the rational p/q. Panics if q is zero.
func Frac(p, q int64) *Num {
	if q == 0 {
		panic("expr: zero denominator")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// FromRat wraps a copy of r.
func FromRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

// FromFloat builds the exact rational representation of f.
func FromFloat(f float64) *Num { return &Num{val: new(big.Rat).SetFloat64(f)} }

// ParseNum parses a decimal or fractional literal ("3", "1.5", "2/7").
func ParseNum(lit string) (*Num, bool) {
	r, ok := new(big.Rat).SetString(lit)
	if !ok {
		return nil, false
	}
	return &Num{val: r}, true
}

func (n *Num) Simplify() Expr               { return n }
func (n *Num) Substitute(string, Expr) Expr { return n }
func (n *Num) Eval() (*big.Rat, bool)       { return new(big.Rat).Set(n.val), true }
func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}
func (n *Num) node()            {}
func (n *Num) Rat() *big.Rat    { return new(big.Rat).Set(n.val) }
func (n *Num) IsZero() bool     { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool      { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool   { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool  { return n.val.IsInt() }
func (n *Num) IsNegative() bool { return n.val.Sign() < 0 }

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)
)

// Sym is a named symbolic variable.
type Sym struct{ name string }

// S builds a symbol with the given name. Names are expected to be
// pre-normalized identifiers; see internal/compiler.
func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr { return s }
func (s *Sym) Substitute(name string, value Expr) Expr {
	if s.name == name {
		return value.Simplify()
	}
	return s
}
func (s *Sym) Eval() (*big.Rat, bool) { return nil, false }
func (s *Sym) Equal(other Expr) bool  { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) node()                  {}
func (s *Sym) Name() string           { return s.name }

// FreeSymbols returns the set of symbol names occurring in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Call:
		collectSymbols(v.arg, out)
	}
}

// ContainsSymbol reports whether the named symbol occurs in e.
func sortedSymbols(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func ContainsSymbol(e Expr, name string) bool {
	_, ok := FreeSymbols(e)[name]
	return ok
}

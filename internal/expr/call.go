package expr

import (
	"math"
	"math/big"
	"sort"
)

// Call applies a named single-argument elementary function.
type Call struct {
	name string
	arg  Expr
}

// funcEval maps every allowed function name to its float implementation.
// This doubles as the compiler's allow-list: an identifier used in call
// position must appear here.
var funcEval = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"exp":   math.Exp,
	"ln":    math.Log,
	"log":   math.Log,
	"sqrt":  math.Sqrt,
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
}

// IsKnownFunc reports whether name is an allowed elementary function.
func IsKnownFunc(name string) bool {
	_, ok := funcEval[name]
	return ok
}

// KnownFuncs returns the allowed function names in sorted order.
func KnownFuncs() []string {
	out := make([]string, 0, len(funcEval))
	for name := range funcEval {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CallOf builds a simplified function application. The name must satisfy
// IsKnownFunc; the compiler enforces this before construction.
func CallOf(name string, arg Expr) Expr {
	return (&Call{name: name, arg: arg}).Simplify()
}

func (c *Call) FuncName() string { return c.name }
func (c *Call) Arg() Expr        { return c.arg }

func (c *Call) Simplify() Expr {
	arg := c.arg.Simplify()
	if n, ok := arg.(*Num); ok {
		if v, ok2 := evalFunc(c.name, n.val); ok2 {
			return FromRat(v)
		}
	}
	switch c.name {
	case "ln", "log":
		if inner, ok := arg.(*Call); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if inner, ok := arg.(*Call); ok && (inner.name == "ln" || inner.name == "log") {
			return inner.arg
		}
	}
	return &Call{name: c.name, arg: arg}
}

func (c *Call) Substitute(name string, value Expr) Expr {
	return CallOf(c.name, c.arg.Substitute(name, value))
}

func (c *Call) Eval() (*big.Rat, bool) {
	v, ok := c.arg.Eval()
	if !ok {
		return nil, false
	}
	return evalFunc(c.name, v)
}

func (c *Call) Equal(other Expr) bool {
	o, ok := other.(*Call)
	return ok && c.name == o.name && c.arg.Equal(o.arg)
}

func (c *Call) node() {}

// evalFunc applies the named function through float64 and converts back.
// sqrt of an exact rational square is computed exactly.
func evalFunc(name string, arg *big.Rat) (*big.Rat, bool) {
	if name == "abs" {
		out := new(big.Rat).Set(arg)
		if out.Sign() < 0 {
			out.Neg(out)
		}
		return out, true
	}
	if name == "sqrt" {
		if arg.Sign() < 0 {
			return nil, false
		}
		if r, ok := ratSqrt(arg); ok {
			return r, true
		}
	}
	fn, ok := funcEval[name]
	if !ok {
		return nil, false
	}
	f, _ := arg.Float64()
	return floatRat(fn(f))
}

// ratSqrt returns the exact square root of r when both numerator and
// denominator are perfect squares.
func ratSqrt(r *big.Rat) (*big.Rat, bool) {
	num := new(big.Int).Sqrt(r.Num())
	den := new(big.Int).Sqrt(r.Denom())
	check := new(big.Int).Mul(num, num)
	if check.Cmp(r.Num()) != 0 {
		return nil, false
	}
	check.Mul(den, den)
	if check.Cmp(r.Denom()) != 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

func powFloat(b, e float64) float64 { return math.Pow(b, e) }

// floatRat converts a float result back to an exact rational, rejecting
// NaN and infinities.
func floatRat(f float64) (*big.Rat, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return new(big.Rat).SetFloat64(f), true
}

package expr

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalString(t *testing.T) {
	cases := []struct {
		name string
		e    Expr
		want string
	}{
		{"integer", N(42), "42"},
		{"negative integer", N(-3), "-3"},
		{"fraction", Frac(1, 2), "1/2"},
		{"symbol", S("x"), "x"},
		{"sum sorted with constant last", AddOf(N(-5), S("y"), S("x")), "x + y - 5"},
		{"subtraction folds", Sub(S("x"), N(2)), "x - 2"},
		{"negated leading term", AddOf(Neg(S("y")), N(1)), "-y + 1"},
		{"coefficient first", MulOf(S("x"), N(2)), "2*x"},
		{"negative coefficient", MulOf(N(-2), S("x")), "-2*x"},
		{"minus one coefficient folds", Neg(S("y")), "-y"},
		{"power", PowOf(S("x"), N(2)), "x^2"},
		{"negative exponent parenthesized", PowOf(S("x"), N(-1)), "x^(-1)"},
		{"fractional exponent parenthesized", PowOf(S("x"), Frac(1, 2)), "x^(1/2)"},
		{"composite base parenthesized", PowOf(AddOf(S("x"), N(1)), N(2)), "(x + 1)^2"},
		{"division renders as inverse power", Div(N(1), S("x")), "x^(-1)"},
		{"sum factor parenthesized in product", MulOf(N(2), AddOf(S("x"), N(1))), "2*(x + 1)"},
		{"call", CallOf("sin", S("x")), "sin(x)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.e.String())
		})
	}
}

func TestSimplifyCombinesLikeTerms(t *testing.T) {
	cases := []struct {
		name string
		e    Expr
		want string
	}{
		{"coefficients add", AddOf(MulOf(N(2), S("x")), MulOf(N(3), S("x"))), "5*x"},
		{"terms cancel", AddOf(S("x"), Neg(S("x"))), "0"},
		{"constants fold", AddOf(N(2), N(3), S("x")), "x + 5"},
		{"exponents add", MulOf(S("x"), S("x")), "x^2"},
		{"power of power", PowOf(PowOf(S("x"), N(2)), N(3)), "x^6"},
		{"zero annihilates product", MulOf(N(0), S("x")), "0"},
		{"unit exponent drops", PowOf(S("x"), N(1)), "x"},
		{"zero exponent folds", PowOf(S("x"), N(0)), "1"},
		{"inverse factors cancel", MulOf(S("x"), PowOf(S("x"), N(-1))), "1"},
		{"rational power folds", PowOf(N(2), N(10)), "1024"},
		{"nested sums flatten", AddOf(AddOf(S("x"), N(1)), AddOf(S("y"), N(2))), "x + y + 3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.e.Simplify().String())
		})
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	exprs := []Expr{
		AddOf(MulOf(N(2), S("x")), S("y"), N(-5)),
		MulOf(N(-1), S("y")),
		PowOf(AddOf(S("x"), N(1)), N(2)),
		CallOf("cos", MulOf(N(2), S("t"))),
	}
	for _, e := range exprs {
		once := e.Simplify()
		twice := once.Simplify()
		assert.Equal(t, once.String(), twice.String())
		assert.True(t, once.Equal(twice))
	}
}

func TestSubstitute(t *testing.T) {
	e := AddOf(S("x"), MulOf(N(2), S("y")))

	got := e.Substitute("x", N(3))
	assert.Equal(t, "2*y + 3", got.String())

	got = got.Substitute("y", N(2))
	v, ok := got.Eval()
	require.True(t, ok)
	assert.Equal(t, 0, v.Cmp(big.NewRat(7, 1)))
}

func TestSubstituteExpression(t *testing.T) {
	// x -> y+1 in x^2 keeps the power unexpanded.
	e := PowOf(S("x"), N(2))
	got := e.Substitute("x", AddOf(S("y"), N(1)))
	assert.Equal(t, "(y + 1)^2", got.String())
	assert.Equal(t, "y^2 + 2*y + 1", Expand(got).String())
}

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		e    Expr
		want *big.Rat
	}{
		{"arithmetic", AddOf(N(2), MulOf(N(3), N(4))), big.NewRat(14, 1)},
		{"fraction", Div(N(1), N(4)), big.NewRat(1, 4)},
		{"exact sqrt", CallOf("sqrt", N(9)), big.NewRat(3, 1)},
		{"abs", CallOf("abs", N(-7)), big.NewRat(7, 1)},
		{"negative power", PowOf(N(2), N(-2)), big.NewRat(1, 4)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := tc.e.Eval()
			require.True(t, ok)
			assert.Equal(t, 0, v.Cmp(tc.want))
		})
	}
}

func TestEvalFailsOnFreeSymbols(t *testing.T) {
	_, ok := AddOf(S("x"), N(1)).Eval()
	assert.False(t, ok)

	_, ok = CallOf("sin", S("x")).Eval()
	assert.False(t, ok)
}

func TestEvalRejectsDivisionByZero(t *testing.T) {
	_, ok := PowOf(N(0), N(-1)).Eval()
	assert.False(t, ok)
}

// Exponents wider than int64 must not truncate into the foldable range.
func TestPowExponentBeyondInt64(t *testing.T) {
	// 2^64 + 2 truncates to 2 through an unguarded Int64().
	huge, ok := ParseNum("18446744073709551618")
	require.True(t, ok)

	p := PowOf(N(2), huge)
	pow, isPow := p.(*Pow)
	require.True(t, isPow, "2^(2^64+2) must stay unevaluated, got %s", p)
	assert.True(t, pow.exp.Equal(huge))

	_, ok = p.Eval()
	assert.False(t, ok)
}

func TestFreeSymbols(t *testing.T) {
	e := AddOf(MulOf(S("a"), S("b")), CallOf("sin", S("c")), N(4))
	set := FreeSymbols(e)
	assert.Equal(t, map[string]struct{}{
		"a": {}, "b": {}, "c": {},
	}, set)

	assert.True(t, ContainsSymbol(e, "b"))
	assert.False(t, ContainsSymbol(e, "x"))
}

func TestParseNum(t *testing.T) {
	n, ok := ParseNum("1.5")
	require.True(t, ok)
	assert.Equal(t, "3/2", n.String())

	_, ok = ParseNum("nope")
	assert.False(t, ok)
}

func TestEquation(t *testing.T) {
	eq := Equation{LHS: S("a"), RHS: MulOf(S("b"), N(2))}

	assert.Equal(t, "a = 2*b", eq.String())
	assert.Equal(t, "a - 2*b", eq.Residual().String())
	assert.Equal(t, []string{"a", "b"}, eq.FreeSymbols())

	sub := eq.Substitute("b", N(3))
	assert.Equal(t, "a = 6", sub.String())
	v, ok := sub.Substitute("a", N(6)).Residual().Eval()
	require.True(t, ok)
	assert.Equal(t, 0, v.Sign())
}

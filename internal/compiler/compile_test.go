package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvium-dev/solvium/internal/expr"
)

func TestCompileImplicitZero(t *testing.T) {
	table, eqs, err := Compile(
		[]string{"x + y - 5", "x - y - 1"},
		[]string{"x", "y"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, table.Names())
	require.Len(t, eqs, 2)
	assert.Equal(t, "x + y - 5 = 0", eqs[0].String())
	assert.Equal(t, "x - y - 1 = 0", eqs[1].String())
}

func TestCompileExplicitEquality(t *testing.T) {
	_, eqs, err := Compile(
		[]string{"Eq(a, b * 2)", "Eq(b, 3)"},
		[]string{"a", "b"},
	)
	require.NoError(t, err)
	require.Len(t, eqs, 2)
	assert.Equal(t, "a = 2*b", eqs[0].String())
	assert.Equal(t, "b = 3", eqs[1].String())
}

func TestCompileGrammar(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		unknowns []string
		want     string
	}{
		{"coefficient", "2*z - 10", []string{"z"}, "2*z - 10 = 0"},
		{"caret power", "x^2 - 4", []string{"x"}, "x^2 - 4 = 0"},
		{"double star power", "x**2 - 4", []string{"x"}, "x^2 - 4 = 0"},
		{"unary minus binds tighter than division", "-x/2", []string{"x"}, "-1/2*x = 0"},
		{"nested parens", "((x + 1)) * 2", []string{"x"}, "2*(x + 1) = 0"},
		{"right associative power", "x^2^3", []string{"x"}, "x^8 = 0"},
		{"function call", "sin(x) - 1", []string{"x"}, "sin(x) - 1 = 0"},
		{"float literal", "0.5*x - 1.5", []string{"x"}, "1/2*x - 3/2 = 0"},
		{"leading dot literal", ".5*x", []string{"x"}, "1/2*x = 0"},
		{"exponent literal", "1e2 - x", []string{"x"}, "-x + 100 = 0"},
		{"double negation", "--x", []string{"x"}, "x = 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, eqs, err := Compile([]string{tc.text}, tc.unknowns)
			require.NoError(t, err)
			require.Len(t, eqs, 1)
			assert.Equal(t, tc.want, eqs[0].String())
		})
	}
}

func TestCompileParseErrors(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		unknowns []string
		wantMsg  string
	}{
		{"dangling operator", "x + = 3", []string{"x"}, "unexpected character"},
		{"trailing operator", "x +", []string{"x"}, "expected expression"},
		{"unbalanced paren", "(x + 1", []string{"x"}, "expected ')'"},
		{"unknown identifier", "x + q", []string{"x"}, "unknown identifier \"q\""},
		{"unknown function", "foo(x)", []string{"x"}, `unknown function "foo"`},
		{"nested Eq", "1 + Eq(x, 2)", []string{"x"}, "only allowed at the top level"},
		{"trailing garbage after Eq", "Eq(x, 1) + 2", []string{"x"}, "expected end of input"},
		{"bare function name", "sin + 1", []string{"x"}, "requires an argument"},
		{"empty text", "", []string{"x"}, "expected expression"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Compile([]string{tc.text}, tc.unknowns)
			require.Error(t, err)

			var cerr *CompileError
			require.ErrorAs(t, err, &cerr)
			assert.Contains(t, cerr.Error(), tc.wantMsg)
			if tc.text != "" {
				assert.Equal(t, tc.text, cerr.Input)
			}
		})
	}
}

// The unknown-function error spells out the allow-list so callers can
// see what the grammar accepts.
func TestCompileUnknownFunctionListsAllowList(t *testing.T) {
	_, _, err := Compile([]string{"foo(x)"}, []string{"x"})
	require.Error(t, err)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Error(), "known functions: "+strings.Join(expr.KnownFuncs(), ", "))
	assert.Contains(t, cerr.Error(), "sqrt")
}

func TestCompileRequestValidation(t *testing.T) {
	cases := []struct {
		name     string
		texts    []string
		unknowns []string
		wantMsg  string
	}{
		{"no equations", nil, []string{"x"}, "no equations"},
		{"no unknowns", []string{"x - 1"}, nil, "no unknowns"},
		{"duplicate unknown", []string{"x - 1"}, []string{"x", "x"}, "duplicate unknown"},
		{"two names in one", []string{"x - 1"}, []string{"x y"}, "binds 2 identifiers"},
		{"number prefix", []string{"x - 1"}, []string{"2x"}, "not a single identifier"},
		{"operator in name", []string{"x - 1"}, []string{"a+b"}, "not a single identifier"},
		{"reserved function name", []string{"sin - 1"}, []string{"sin"}, "reserved function name"},
		{"equality marker as name", []string{"Eq - 1"}, []string{"Eq"}, "reserved function name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Compile(tc.texts, tc.unknowns)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestCompileAllOrNothing(t *testing.T) {
	table, eqs, err := Compile(
		[]string{"x - 1", "x + ="},
		[]string{"x"},
	)
	require.Error(t, err)
	assert.Nil(t, table)
	assert.Nil(t, eqs)
}

func TestCompileNormalizesIdentifiers(t *testing.T) {
	// Decomposed name in the unknown list, precomposed in the equation.
	decomposed := "é"
	composed := "é"

	table, eqs, err := Compile([]string{composed + " - 1"}, []string{decomposed})
	require.NoError(t, err)
	assert.Equal(t, []string{composed}, table.Names())
	assert.Equal(t, composed+" - 1 = 0", eqs[0].String())
}

func TestCompileUnknownAbsentFromEquations(t *testing.T) {
	// Binding succeeds; whether the system determines y is the solver's
	// concern, not the compiler's.
	table, eqs, err := Compile([]string{"x - 1"}, []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	require.Len(t, eqs, 1)
}

package expr

// Equation is a single equality between two expressions.
type Equation struct {
	LHS Expr
	RHS Expr
}

// Residual returns LHS - RHS simplified. A solution of the equation
// makes the residual evaluate to zero.
func (eq Equation) Residual() Expr {
	return Sub(eq.LHS, eq.RHS)
}

// Substitute replaces a symbol in both sides.
func (eq Equation) Substitute(name string, value Expr) Equation {
	return Equation{
		LHS: eq.LHS.Substitute(name, value),
		RHS: eq.RHS.Substitute(name, value),
	}
}

// FreeSymbols collects the symbols appearing on either side.
func (eq Equation) FreeSymbols() []string {
	set := map[string]struct{}{}
	collectSymbols(eq.LHS, set)
	collectSymbols(eq.RHS, set)
	return sortedSymbols(set)
}

func (eq Equation) String() string {
	return eq.LHS.String() + " = " + eq.RHS.String()
}

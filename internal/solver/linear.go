package solver

import (
	"math/big"

	"github.com/solvium-dev/solvium/internal/expr"
)

// linearOutcome classifies what exact elimination found.
type linearOutcome int

const (
	linearInconsistent linearOutcome = iota
	linearUnique
	linearUnderdetermined
)

// solveLinearSystem runs exact Gaussian elimination over big.Rat.
// handled is false when any residual is not linear in the unknowns, in
// which case the caller falls back to substitution.
//
// For a consistent system the single returned solution binds every
// pivot variable to an expression over the free variables (a plain
// number when the system is fully determined) and every free variable
// to itself.
func solveLinearSystem(residuals []expr.Expr, unknowns []string) (sol Solution, outcome linearOutcome, handled bool) {
	n := len(unknowns)
	rows := make([][]*big.Rat, 0, len(residuals))
	for _, r := range residuals {
		coeffs, constant, ok := expr.LinearCoeffs(r, unknowns)
		if !ok {
			return nil, 0, false
		}
		row := make([]*big.Rat, n+1)
		for j, name := range unknowns {
			if c, has := coeffs[name]; has {
				row[j] = new(big.Rat).Set(c)
			} else {
				row[j] = new(big.Rat)
			}
		}
		// residual = sum(c_j * x_j) + constant = 0, so the augmented
		// column carries -constant.
		row[n] = new(big.Rat).Neg(constant)
		rows = append(rows, row)
	}

	pivotCol := make([]int, 0, n) // column of each pivot row, in order
	rank := 0
	for col := 0; col < n && rank < len(rows); col++ {
		pivot := -1
		for i := rank; i < len(rows); i++ {
			if rows[i][col].Sign() != 0 {
				pivot = i
				break
			}
		}
		if pivot == -1 {
			continue
		}
		rows[rank], rows[pivot] = rows[pivot], rows[rank]

		inv := new(big.Rat).Inv(rows[rank][col])
		for j := col; j <= n; j++ {
			rows[rank][j].Mul(rows[rank][j], inv)
		}
		for i := 0; i < len(rows); i++ {
			if i == rank || rows[i][col].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Set(rows[i][col])
			for j := col; j <= n; j++ {
				delta := new(big.Rat).Mul(factor, rows[rank][j])
				rows[i][j].Sub(rows[i][j], delta)
			}
		}
		pivotCol = append(pivotCol, col)
		rank++
	}

	// A zero row with a nonzero augmented entry is a contradiction.
	for i := rank; i < len(rows); i++ {
		if rows[i][n].Sign() != 0 {
			return nil, linearInconsistent, true
		}
	}

	isPivot := make([]bool, n)
	for _, col := range pivotCol {
		isPivot[col] = true
	}

	sol = make(Solution, n)
	for j, name := range unknowns {
		if !isPivot[j] {
			sol[name] = expr.S(name)
		}
	}
	for i, col := range pivotCol {
		// x_col = rhs - sum(coeff_j * x_j) over free columns.
		terms := []expr.Expr{expr.FromRat(rows[i][n])}
		for j := 0; j < n; j++ {
			if j == col || rows[i][j].Sign() == 0 {
				continue
			}
			coeff := new(big.Rat).Neg(rows[i][j])
			terms = append(terms, expr.MulOf(expr.FromRat(coeff), expr.S(unknowns[j])))
		}
		sol[unknowns[col]] = expr.AddOf(terms...)
	}

	if rank == n {
		return sol, linearUnique, true
	}
	return sol, linearUnderdetermined, true
}

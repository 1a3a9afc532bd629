// Package expr implements the symbolic expression representation used by
// the equation compiler and solver.
//
// Expressions are immutable trees over exact rational numbers (math/big.Rat),
// named symbols, sums, products, powers, and single-argument elementary
// function calls. Simplification is deterministic: the same input tree always
// simplifies to the same output tree, and String() renders a canonical,
// reproducible form. This determinism is load-bearing - solved values that
// stay symbolic are reported to callers as their canonical string form.
//
// The package has no solving logic of its own; see internal/solver.
package expr

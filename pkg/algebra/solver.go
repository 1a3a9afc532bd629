// Package algebra solves systems of algebraic equations given as text.
//
// The single entry point is SolveSystem: equation strings plus unknown
// names in, one tagged Outcome out. Each equation is either a bare
// expression implicitly equal to zero ("x + y - 5") or an explicit
// equality ("Eq(a, b * 2)"). The pipeline never panics outward and
// never returns more than one outcome per request; every failure path
// is a typed outcome kind.
//
// Requests are stateless and self-contained, so a Solver is safe for
// concurrent use.
package algebra

import (
	"fmt"
	"log/slog"

	"github.com/solvium-dev/solvium/internal/compiler"
	"github.com/solvium-dev/solvium/internal/solver"
)

// Solver runs the compile-then-classify pipeline. The zero configuration
// (via New) uses UUIDv7 request tokens and the default slog logger.
type Solver struct {
	tokens TokenGenerator
	logger *slog.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithTokenGenerator replaces the request token source. Tests pass a
// FixedGenerator for deterministic logs and stored history.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(s *Solver) { s.tokens = g }
}

// WithLogger replaces the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) { s.logger = l }
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{
		tokens: UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSolver = New()

// SolveSystem solves the given equation system with the default Solver.
func SolveSystem(equations []string, unknowns []string) Outcome {
	return defaultSolver.SolveSystem(equations, unknowns)
}

// SolveSystem compiles the request, drives the symbolic solve, and
// classifies the result. Exactly one Outcome comes back for every
// request; panics in the engine are recovered into KindInternalError.
func (s *Solver) SolveSystem(equations []string, unknowns []string) (out Outcome) {
	token := s.tokens.Generate()
	log := s.logger.With("request", token)

	defer func() {
		if r := recover(); r != nil {
			log.Error("solve panicked", "panic", r)
			out = Outcome{
				Kind:    KindInternalError,
				Message: fmt.Sprintf("internal failure: %v", r),
			}
		}
	}()

	log.Debug("compiling request",
		"equations", len(equations),
		"unknowns", len(unknowns))

	table, eqs, err := compiler.Compile(equations, unknowns)
	if err != nil {
		log.Info("request rejected", "error", err)
		return Outcome{Kind: KindInputError, Message: err.Error()}
	}
	names := table.Names()

	sols, err := solver.Solve(eqs, names)
	if err != nil {
		return s.classifyError(err, log)
	}
	if len(sols) > 0 {
		log.Debug("solved", "candidates", len(sols))
		return Outcome{Kind: KindSolved, Candidates: toCandidates(sols, names)}
	}

	// An empty primary result is ambiguous: provably no solution, or
	// the primary mode gave up. Re-query through the set-classifying
	// mode to disambiguate.
	res, err := solver.SolveSet(eqs, names)
	if err != nil {
		return s.classifyError(err, log)
	}
	switch res.Kind {
	case solver.SetEmpty:
		log.Debug("classified", "set", res.Kind)
		return Outcome{Kind: KindNoSolution, Message: "the system has no solution"}
	case solver.SetFinite:
		// The primary mode should have produced these; extract what is
		// extractable rather than dropping a finite set on the floor.
		if len(res.Solutions) > 0 {
			log.Debug("recovered finite set", "candidates", len(res.Solutions))
			return Outcome{Kind: KindSolved, Candidates: toCandidates(res.Solutions, names)}
		}
		return Outcome{Kind: KindNoSolution, Message: "the system has no solution"}
	default:
		log.Debug("classified", "set", res.Kind)
		return Outcome{
			Kind:    KindIndeterminate,
			Message: "the system admits infinitely many solutions",
		}
	}
}

func (s *Solver) classifyError(err error, log *slog.Logger) Outcome {
	if solver.IsNotSupported(err) {
		log.Info("unsupported system", "error", err)
		return Outcome{Kind: KindUnsupported, Message: err.Error()}
	}
	log.Error("solve failed", "error", err)
	return Outcome{Kind: KindInternalError, Message: err.Error()}
}

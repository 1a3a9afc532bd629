package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/solvium-dev/solvium/internal/store"
	"github.com/solvium-dev/solvium/pkg/algebra"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	Equations []string
	Unknowns  []string
	System    string // CUE system file, alternative to --eq/--unknown
	DBPath    string // optional solve-history database
}

// NewSolveCommand creates the solve command.
//
//	solvium solve --eq "x + y - 5" --eq "x - y - 1" --unknown x --unknown y
//	solvium solve --system sys.cue --format json
//	solvium solve --eq "2*z - 10" --unknown z --db history.db
func NewSolveCommand(root *RootOptions) *cobra.Command {
	opts := &SolveOptions{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve an equation system",
		Long: "Solves the given equation system and prints the outcome.\n" +
			"Equations are either bare expressions implicitly equal to zero\n" +
			"(\"x + y - 5\") or explicit equalities (\"Eq(a, b * 2)\").\n\n" +
			"Exit codes: 0 solved, 1 unsolved or degenerate outcome, 2 command error.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, root, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Equations, "eq", nil, "equation text (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Unknowns, "unknown", nil, "unknown variable name (repeatable)")
	cmd.Flags().StringVar(&opts.System, "system", "", "CUE system definition file")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "record the request in a solve-history database")

	return cmd
}

func runSolve(cmd *cobra.Command, root *RootOptions, opts *SolveOptions) error {
	equations, unknowns := opts.Equations, opts.Unknowns
	if opts.System != "" {
		if len(equations) > 0 || len(unknowns) > 0 {
			return NewExitError(ExitCommandError, "--system cannot be combined with --eq/--unknown")
		}
		spec, err := LoadSystem(opts.System)
		if err != nil {
			return WrapExitError(ExitCommandError, "loading system", err)
		}
		equations, unknowns = spec.Equations, spec.Unknowns
	}
	if len(equations) == 0 || len(unknowns) == 0 {
		return NewExitError(ExitCommandError, "supply --eq and --unknown flags, or a --system file")
	}

	token := algebra.UUIDv7Generator{}.Generate()
	solver := algebra.New(
		algebra.WithTokenGenerator(algebra.NewFixedGenerator(token)),
		algebra.WithLogger(commandLogger(cmd, root)),
	)
	out := solver.SolveSystem(equations, unknowns)

	if opts.DBPath != "" {
		s, err := store.Open(opts.DBPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "opening history database", err)
		}
		defer s.Close()
		if err := s.WriteRequest(cmd.Context(), token, equations, unknowns, out); err != nil {
			return WrapExitError(ExitCommandError, "recording request", err)
		}
	}

	if err := writeOutcome(cmd.OutOrStdout(), root.Format, out); err != nil {
		return WrapExitError(ExitCommandError, "writing outcome", err)
	}
	return outcomeExitError(out)
}

// commandLogger builds the request logger: debug-level text on stderr
// with --verbose, discard-level otherwise.
func commandLogger(cmd *cobra.Command, root *RootOptions) *slog.Logger {
	level := slog.LevelWarn
	if root.Verbose {
		level = slog.LevelDebug
	}
	w := cmd.ErrOrStderr()
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solvium-dev/solvium/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	DBPath string
	Kind   string // filter by outcome kind, empty for all
}

// NewHistoryCommand creates the history command, which lists recorded
// solve requests in chronological order.
func NewHistoryCommand(root *RootOptions) *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded solve requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "solve-history database (required)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "only show outcomes of this kind")

	return cmd
}

// historyEntry is the JSON shape of one listed request.
type historyEntry struct {
	Token     string          `json:"token"`
	CreatedAt string          `json:"created_at"`
	Equations []string        `json:"equations"`
	Unknowns  []string        `json:"unknowns"`
	Outcome   json.RawMessage `json:"outcome"`
}

func runHistory(cmd *cobra.Command, root *RootOptions, opts *HistoryOptions) error {
	if opts.DBPath == "" {
		return NewExitError(ExitCommandError, "--db is required")
	}
	if _, err := os.Stat(opts.DBPath); err != nil {
		return WrapExitError(ExitCommandError, "history database not found", err)
	}

	s, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening history database", err)
	}
	defer s.Close()

	requests, err := s.ListRequests(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "listing requests", err)
	}
	if opts.Kind != "" {
		filtered := requests[:0]
		for _, req := range requests {
			if req.OutcomeKind == opts.Kind {
				filtered = append(filtered, req)
			}
		}
		requests = filtered
	}

	w := cmd.OutOrStdout()
	if root.Format == "json" {
		entries := make([]historyEntry, 0, len(requests))
		for _, req := range requests {
			entries = append(entries, historyEntry{
				Token:     req.Token,
				CreatedAt: req.CreatedAt,
				Equations: req.Equations,
				Unknowns:  req.Unknowns,
				Outcome:   req.Outcome,
			})
		}
		return json.NewEncoder(w).Encode(entries)
	}

	for _, req := range requests {
		fmt.Fprintf(w, "%s  %s  %-14s  %s ; unknowns: %s\n",
			req.Token,
			req.CreatedAt,
			req.OutcomeKind,
			strings.Join(req.Equations, " ; "),
			strings.Join(req.Unknowns, ", "))
	}
	if len(requests) == 0 {
		fmt.Fprintln(w, "no recorded requests")
	}
	return nil
}

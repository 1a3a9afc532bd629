package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/solvium-dev/solvium/pkg/algebra"
)

// ErrNotFound is returned when no request exists for a token.
var ErrNotFound = errors.New("store: request not found")

// Request is one recorded solve request. Outcome carries the outcome's
// JSON rendering verbatim; OutcomeKind is denormalized for filtering
// and listing without decoding the payload.
type Request struct {
	Token       string
	CreatedAt   string
	Equations   []string
	Unknowns    []string
	OutcomeKind string
	Outcome     json.RawMessage
}

// WriteRequest appends one solve request and its outcome. Idempotent on
// token: a duplicate write is silently ignored.
func (s *Store) WriteRequest(ctx context.Context, token string, equations, unknowns []string, out algebra.Outcome) error {
	eqJSON, err := json.Marshal(equations)
	if err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	unJSON, err := json.Marshal(unknowns)
	if err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	outJSON, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("write request: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO requests (token, equations, unknowns, outcome_kind, outcome)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`, token, string(eqJSON), string(unJSON), string(out.Kind), string(outJSON))
	if err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	return nil
}

// GetRequest fetches one recorded request by token.
func (s *Store) GetRequest(ctx context.Context, token string) (*Request, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT token, created_at, equations, unknowns, outcome_kind, outcome
		FROM requests
		WHERE token = ?
	`, token)

	req, err := scanRequest(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// ListRequests returns recorded requests in chronological order.
// UUIDv7 tokens sort by creation time, so token order is time order.
func (s *Store) ListRequests(ctx context.Context) ([]Request, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, created_at, equations, unknowns, outcome_kind, outcome
		FROM requests
		ORDER BY token ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list requests: %w", err)
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return out, nil
}

func scanRequest(scan func(...any) error) (*Request, error) {
	var req Request
	var eqJSON, unJSON, outJSON string
	if err := scan(&req.Token, &req.CreatedAt, &eqJSON, &unJSON, &req.OutcomeKind, &outJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(eqJSON), &req.Equations); err != nil {
		return nil, fmt.Errorf("decode equations: %w", err)
	}
	if err := json.Unmarshal([]byte(unJSON), &req.Unknowns); err != nil {
		return nil, fmt.Errorf("decode unknowns: %w", err)
	}
	req.Outcome = json.RawMessage(outJSON)
	return &req, nil
}

// Package store provides SQLite-backed persistence for solve history.
//
// The core solving pipeline is stateless; persistence is an opt-in
// concern of the CLI. The store keeps an append-only log of requests
// (equations, unknowns) and their outcomes, keyed by the UUIDv7 request
// token. Tokens embed a timestamp, so ordering by token yields
// chronological listings without any sequence column.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// SQLite supports a single writer, so the connection pool is capped at
// one connection.
package store

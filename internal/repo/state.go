// Package repo contains the Persistence Adapter for the planner state.
// Every backend stores the same JSON payload under one namespace key and
// returns it whole; no business logic lives here, only encoding and I/O.
package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// StateRepo loads and saves the full planner state.
// The service layer depends on this interface, not on a concrete backend,
// which allows the Store to be unit-tested with a mock.
type StateRepo interface {
	// Load returns the persisted state. A missing or empty payload is the
	// empty state, not an error. An undecodable payload returns an error
	// wrapping domain.ErrMalformedState.
	Load(ctx context.Context) (domain.State, error)

	// Save replaces the persisted state. Concurrent writers are
	// last-writer-wins.
	Save(ctx context.Context, state domain.State) error
}

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func encodeState(s domain.State) ([]byte, error) {
	return json.Marshal(s)
}

func decodeState(data []byte) (domain.State, error) {
	if len(data) == 0 {
		return domain.EmptyState(), nil
	}
	var s domain.State
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.State{}, fmt.Errorf("%w: %v", domain.ErrMalformedState, err)
	}
	s.Normalize()
	return s, nil
}

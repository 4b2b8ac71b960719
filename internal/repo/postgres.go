package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// pgStateRepo stores the payload as one jsonb row per namespace in the
// planner_state table.
type pgStateRepo struct {
	db        db
	namespace string
}

// NewPostgresStateRepo constructs a StateRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresStateRepo(db db, namespace string) StateRepo {
	return &pgStateRepo{db: db, namespace: namespace}
}

func (r *pgStateRepo) Load(ctx context.Context) (domain.State, error) {
	const q = `SELECT payload FROM planner_state WHERE namespace = @namespace`

	var payload []byte
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"namespace": r.namespace}).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.EmptyState(), nil
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("repo.StateRepo.Load: %w", err)
	}

	s, err := decodeState(payload)
	if err != nil {
		return domain.State{}, fmt.Errorf("repo.StateRepo.Load: %w", err)
	}
	return s, nil
}

// Save upserts the namespace row. The last writer wins.
func (r *pgStateRepo) Save(ctx context.Context, state domain.State) error {
	const q = `
		INSERT INTO planner_state (namespace, payload, updated_at)
		VALUES (@namespace, @payload, now())
		ON CONFLICT (namespace) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`

	payload, err := encodeState(state)
	if err != nil {
		return fmt.Errorf("repo.StateRepo.Save: %w", err)
	}

	args := pgx.NamedArgs{
		"namespace": r.namespace,
		"payload":   payload,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.StateRepo.Save: %w", err)
	}
	return nil
}

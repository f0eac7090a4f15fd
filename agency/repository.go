package agency

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"caseflow/actor"
)

var (
	// ErrNotFound signals that no agency matches the id within the network.
	ErrNotFound = errors.New("agency: not found")
)

// Store handles agency data access. Lookups are always scoped to a network;
// callers are expected to pass the canonical reference network.
type Store interface {
	Get(ctx context.Context, id string, network actor.Network) (Agency, error)
}

// PGStore implements Store backed by PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Get(ctx context.Context, id string, network actor.Network) (Agency, error) {
	const query = `
		SELECT id, name, network, created_at
		FROM agencies
		WHERE id = $1 AND network = $2
	`

	var a Agency
	err := s.pool.QueryRow(ctx, query, id, network).Scan(&a.ID, &a.Name, &a.Network, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Agency{}, ErrNotFound
		}
		return Agency{}, fmt.Errorf("agency: get: %w", err)
	}
	return a, nil
}

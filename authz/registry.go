package authz

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"caseflow/actor"
)

// SupervisorRegistry answers supervisory-status questions per network. A
// responsible supervisor holds network-wide power; an ordinary supervisor is
// scoped to their own network.
type SupervisorRegistry interface {
	IsResponsibleSupervisor(ctx context.Context, actorID string, network actor.Network) (bool, error)
	IsSupervisor(ctx context.Context, actorID string) (bool, error)
}

// PGSupervisorRegistry implements SupervisorRegistry backed by PostgreSQL.
type PGSupervisorRegistry struct {
	pool *pgxpool.Pool
}

func NewSupervisorRegistry(pool *pgxpool.Pool) *PGSupervisorRegistry {
	return &PGSupervisorRegistry{pool: pool}
}

func (r *PGSupervisorRegistry) IsResponsibleSupervisor(ctx context.Context, actorID string, network actor.Network) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM supervisors
			WHERE counselor_id = $1 AND network = $2 AND responsible
		)
	`

	var ok bool
	if err := r.pool.QueryRow(ctx, query, actorID, network).Scan(&ok); err != nil {
		return false, fmt.Errorf("authz: responsible supervisor lookup: %w", err)
	}
	return ok, nil
}

func (r *PGSupervisorRegistry) IsSupervisor(ctx context.Context, actorID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM supervisors WHERE counselor_id = $1)`

	var ok bool
	if err := r.pool.QueryRow(ctx, query, actorID).Scan(&ok); err != nil {
		return false, fmt.Errorf("authz: supervisor lookup: %w", err)
	}
	return ok, nil
}

package broadcastlist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles broadcast-list data access for the transfer flow. Only the
// membership-strip operation is needed here; list CRUD lives with the
// owning counselor's tooling.
type Store interface {
	RemoveBeneficiariesFromCounselorLists(ctx context.Context, counselorID string, beneficiaryIDs []string) error
}

// PGStore implements Store backed by PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) RemoveBeneficiariesFromCounselorLists(ctx context.Context, counselorID string, beneficiaryIDs []string) error {
	if len(beneficiaryIDs) == 0 {
		return nil
	}

	const query = `
		DELETE FROM broadcast_list_members m
		USING broadcast_lists l
		WHERE m.list_id = l.id
		  AND l.owner_counselor_id = $1
		  AND m.beneficiary_id = ANY($2)
	`

	if _, err := s.pool.Exec(ctx, query, counselorID, beneficiaryIDs); err != nil {
		return fmt.Errorf("broadcastlist: remove beneficiaries from counselor lists: %w", err)
	}
	return nil
}

package beneficiary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound signals that the beneficiary does not exist.
	ErrNotFound = errors.New("beneficiary: not found")
)

// Store handles beneficiary data access.
type Store interface {
	// FindAllByIDsAndCounselor returns the subset of ids currently owned by
	// the given counselor. Ids owned by someone else are silently dropped;
	// the caller compares counts to detect a stale command.
	FindAllByIDsAndCounselor(ctx context.Context, ids []string, counselorID string) ([]Beneficiary, error)
	// TransferAndSaveAll persists the already-mutated beneficiaries and one
	// transfer-history row in a single batch write.
	TransferAndSaveAll(ctx context.Context, bens []Beneficiary, targetID, sourceID, actorID string, kind TransferKind) error
}

// PGStore implements Store backed by PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Get(ctx context.Context, id string) (Beneficiary, error) {
	const query = `
		SELECT id, first_name, last_name, counselor_id, initial_counselor_id, created_at, updated_at
		FROM beneficiaries
		WHERE id = $1
	`

	b, err := scanBeneficiary(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Beneficiary{}, ErrNotFound
		}
		return Beneficiary{}, fmt.Errorf("beneficiary: get: %w", err)
	}
	return b, nil
}

func (s *PGStore) FindAllByIDsAndCounselor(ctx context.Context, ids []string, counselorID string) ([]Beneficiary, error) {
	const query = `
		SELECT id, first_name, last_name, counselor_id, initial_counselor_id, created_at, updated_at
		FROM beneficiaries
		WHERE id = ANY($1) AND counselor_id = $2
		ORDER BY last_name, first_name
	`

	rows, err := s.pool.Query(ctx, query, ids, counselorID)
	if err != nil {
		return nil, fmt.Errorf("beneficiary: find by ids and counselor: %w", err)
	}
	defer rows.Close()

	bens := make([]Beneficiary, 0, len(ids))
	for rows.Next() {
		b, err := scanBeneficiary(rows)
		if err != nil {
			return nil, fmt.Errorf("beneficiary: scan: %w", err)
		}
		bens = append(bens, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("beneficiary: iterate: %w", err)
	}
	return bens, nil
}

func (s *PGStore) TransferAndSaveAll(ctx context.Context, bens []Beneficiary, targetID, sourceID, actorID string, kind TransferKind) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beneficiary: begin transfer batch: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	transferred := make([]string, 0, len(bens))
	for _, b := range bens {
		batch.Queue(`
			UPDATE beneficiaries
			SET counselor_id = $2,
			    initial_counselor_id = $3,
			    updated_at = now()
			WHERE id = $1
		`, b.ID, b.CounselorID, b.InitialCounselorID)
		transferred = append(transferred, b.ID)
	}
	batch.Queue(`
		INSERT INTO beneficiary_transfers (source_counselor_id, target_counselor_id, actor_id, kind, beneficiary_ids)
		VALUES ($1, $2, $3, $4, $5)
	`, sourceID, targetID, actorID, kind, transferred)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("beneficiary: transfer batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("beneficiary: commit transfer batch: %w", err)
	}
	return nil
}

func scanBeneficiary(row pgx.Row) (Beneficiary, error) {
	var (
		b       Beneficiary
		initial *string
	)
	err := row.Scan(
		&b.ID,
		&b.FirstName,
		&b.LastName,
		&b.CounselorID,
		&initial,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return Beneficiary{}, err
	}
	b.InitialCounselorID = initial
	return b, nil
}

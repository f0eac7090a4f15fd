package counselor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound signals that the counselor does not exist.
	ErrNotFound = errors.New("counselor: not found")
)

// Store handles counselor data access.
type Store interface {
	Get(ctx context.Context, id string) (Counselor, error)
	Save(ctx context.Context, c Counselor) error
}

// PGStore implements Store backed by PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Get(ctx context.Context, id string) (Counselor, error) {
	const query = `
		SELECT id, first_name, last_name, email, network, agency_id, created_at, updated_at
		FROM counselors
		WHERE id = $1
	`

	c, err := scanCounselor(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Counselor{}, ErrNotFound
		}
		return Counselor{}, fmt.Errorf("counselor: get: %w", err)
	}
	return c, nil
}

// ListByAgency returns the agency's counselors ordered by name. Not part of
// the Store contract; the bootstrap and back-office listings use it directly.
func (s *PGStore) ListByAgency(ctx context.Context, agencyID string) ([]Counselor, error) {
	const query = `
		SELECT id, first_name, last_name, email, network, agency_id, created_at, updated_at
		FROM counselors
		WHERE agency_id = $1
		ORDER BY last_name, first_name
	`

	rows, err := s.pool.Query(ctx, query, agencyID)
	if err != nil {
		return nil, fmt.Errorf("counselor: list by agency: %w", err)
	}
	defer rows.Close()

	var out []Counselor
	for rows.Next() {
		c, err := scanCounselor(rows)
		if err != nil {
			return nil, fmt.Errorf("counselor: list by agency: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("counselor: list by agency: %w", err)
	}
	return out, nil
}

func (s *PGStore) Save(ctx context.Context, c Counselor) error {
	const query = `
		UPDATE counselors
		SET first_name = $2,
		    last_name = $3,
		    email = $4,
		    network = $5,
		    agency_id = $6,
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query, c.ID, c.FirstName, c.LastName, c.Email, c.Network, c.AgencyID)
	if err != nil {
		return fmt.Errorf("counselor: save: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCounselor(row pgx.Row) (Counselor, error) {
	var (
		c        Counselor
		agencyID *string
	)
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Network,
		&agencyID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return Counselor{}, err
	}
	c.AgencyID = agencyID
	return c, nil
}

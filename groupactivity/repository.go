package groupactivity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound signals that the activity does not exist.
	ErrNotFound = errors.New("groupactivity: not found")
)

// Store handles group-activity data access. Save persists the whole
// aggregate, roster included; there is no partial roster update.
type Store interface {
	GetAllByAgency(ctx context.Context, agencyID string, includeClosed bool) ([]Activity, error)
	Save(ctx context.Context, a Activity) error
}

// PGStore implements Store backed by PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) GetAllByAgency(ctx context.Context, agencyID string, includeClosed bool) ([]Activity, error) {
	query := `
		SELECT id, title, agency_id, creator_id, starts_at, closed_at, created_at, updated_at
		FROM group_activities
		WHERE agency_id = $1
	`
	if !includeClosed {
		query += ` AND closed_at IS NULL`
	}
	query += ` ORDER BY starts_at`

	rows, err := s.pool.Query(ctx, query, agencyID)
	if err != nil {
		return nil, fmt.Errorf("groupactivity: list by agency: %w", err)
	}
	defer rows.Close()

	activities := []Activity{}
	index := map[string]int{}
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.AgencyID, &a.CreatorID, &a.StartsAt, &a.ClosedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("groupactivity: scan activity: %w", err)
		}
		a.Roster = []Enrollment{}
		index[a.ID] = len(activities)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("groupactivity: iterate activities: %w", err)
	}
	if len(activities) == 0 {
		return activities, nil
	}

	ids := make([]string, 0, len(activities))
	for _, a := range activities {
		ids = append(ids, a.ID)
	}

	const rosterQuery = `
		SELECT activity_id, beneficiary_id, counselor_id
		FROM group_activity_enrollments
		WHERE activity_id = ANY($1)
		ORDER BY enrolled_at
	`
	rosterRows, err := s.pool.Query(ctx, rosterQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("groupactivity: list rosters: %w", err)
	}
	defer rosterRows.Close()

	for rosterRows.Next() {
		var (
			activityID string
			e          Enrollment
		)
		if err := rosterRows.Scan(&activityID, &e.BeneficiaryID, &e.CounselorID); err != nil {
			return nil, fmt.Errorf("groupactivity: scan enrollment: %w", err)
		}
		i := index[activityID]
		activities[i].Roster = append(activities[i].Roster, e)
	}
	if err := rosterRows.Err(); err != nil {
		return nil, fmt.Errorf("groupactivity: iterate rosters: %w", err)
	}

	return activities, nil
}

func (s *PGStore) Save(ctx context.Context, a Activity) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("groupactivity: begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE group_activities
		SET title = $2,
		    agency_id = $3,
		    creator_id = $4,
		    starts_at = $5,
		    closed_at = $6,
		    updated_at = now()
		WHERE id = $1
	`, a.ID, a.Title, a.AgencyID, a.CreatorID, a.StartsAt, a.ClosedAt)
	if err != nil {
		return fmt.Errorf("groupactivity: save: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM group_activity_enrollments WHERE activity_id = $1`, a.ID); err != nil {
		return fmt.Errorf("groupactivity: clear roster: %w", err)
	}
	for _, e := range a.Roster {
		if _, err := tx.Exec(ctx, `
			INSERT INTO group_activity_enrollments (activity_id, beneficiary_id, counselor_id)
			VALUES ($1, $2, $3)
		`, a.ID, e.BeneficiaryID, e.CounselorID); err != nil {
			return fmt.Errorf("groupactivity: save roster entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("groupactivity: commit save: %w", err)
	}
	return nil
}

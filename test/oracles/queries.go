package oracles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Oracle struct {
	Name string
	SQL  string
}

func All() []Oracle {
	return []Oracle{
		{
			Name: "O1_transfer_kind_valid",
			SQL: `SELECT id, kind FROM beneficiary_transfers
                  WHERE kind NOT IN ('temporary_by_counselor','permanent_by_counselor',
                                     'temporary_by_support','permanent_by_support')`,
		},
		{
			Name: "O2_transfer_not_self",
			SQL: `SELECT id FROM beneficiary_transfers
                  WHERE source_counselor_id = target_counselor_id`,
		},
		{
			Name: "O3_transfer_batch_nonempty",
			SQL: `SELECT id FROM beneficiary_transfers
                  WHERE coalesce(array_length(beneficiary_ids, 1), 0) = 0`,
		},
		{
			Name: "O4_counselor_agency_network",
			SQL: `SELECT c.id FROM counselors c
                  JOIN agencies a ON a.id = c.agency_id
                  WHERE a.network <> CASE
                      WHEN c.network LIKE 'employment_office%' THEN 'employment_office'
                      ELSE c.network END`,
		},
		{
			Name: "O5_loan_points_at_counselor",
			SQL: `SELECT b.id FROM beneficiaries b
                  WHERE b.initial_counselor_id IS NOT NULL
                    AND NOT EXISTS (SELECT 1 FROM counselors c WHERE c.id = b.initial_counselor_id)`,
		},
		{
			Name: "O6_audit_commands_known",
			SQL: `SELECT id, command FROM command_audit
                  WHERE command NOT IN ('reassign_counselor_agency','transfer_beneficiaries')`,
		},
		{
			Name: "O7_audit_actor_kind_valid",
			SQL: `SELECT id FROM command_audit
                  WHERE actor_kind NOT IN ('beneficiary','counselor','support')`,
		},
		{
			Name: "O8_enrollment_counselor_exists",
			SQL: `SELECT e.activity_id, e.beneficiary_id FROM group_activity_enrollments e
                  WHERE NOT EXISTS (SELECT 1 FROM counselors c WHERE c.id = e.counselor_id)`,
		},
	}
}

// Run executes all oracles and returns the first failure (name and sample row text) or empty name if all pass.
func Run(ctx context.Context, pool *pgxpool.Pool) (string, string, error) {
	for _, o := range All() {
		rows, err := pool.Query(ctx, o.SQL)
		if err != nil {
			return o.Name, "", fmt.Errorf("oracle %s: %w", o.Name, err)
		}
		has := rows.Next()
		if has {
			vals, err := rows.Values()
			rows.Close()
			if err != nil {
				return o.Name, "", err
			}
			return o.Name, fmt.Sprintf("%v", vals), nil
		}
		rows.Close()
	}
	return "", "", nil
}

package monitor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"caseflow/actor"
)

// Recorder captures one audit row per successfully handled command. It is
// invoked from the pipeline's detached monitor step only; failures here are
// logged by the pipeline and never reach the command's caller.
type Recorder interface {
	RecordCommand(ctx context.Context, command string, act actor.Actor, payload map[string]any) error
}

// PGRecorder implements Recorder backed by PostgreSQL.
type PGRecorder struct {
	pool *pgxpool.Pool
}

func NewRecorder(pool *pgxpool.Pool) *PGRecorder {
	return &PGRecorder{pool: pool}
}

func (r *PGRecorder) RecordCommand(ctx context.Context, command string, act actor.Actor, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("monitor: marshal payload: %w", err)
	}

	const query = `
		INSERT INTO command_audit (command, actor_id, actor_kind, actor_network, payload)
		VALUES ($1, $2, $3, $4, $5::jsonb)
	`

	if _, err := r.pool.Exec(ctx, query, command, act.ID, act.Kind, act.Network, body); err != nil {
		return fmt.Errorf("monitor: record command: %w", err)
	}
	return nil
}

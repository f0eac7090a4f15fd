package command

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"caseflow/actor"
	"caseflow/result"
)

// Handler is the contract every mutating command implements. Expected
// failures travel as result values; the error return is reserved for
// infrastructure faults (storage unreachable, etc.) that the caller must
// treat as fatal.
type Handler[C any, T any] interface {
	// Authorize decides whether the actor may invoke the command. It runs
	// strictly before Handle and must not mutate state.
	Authorize(ctx context.Context, cmd C, act actor.Actor) (result.Result[result.Unit], error)
	// Handle applies the command.
	Handle(ctx context.Context, cmd C, act actor.Actor) (result.Result[T], error)
	// Monitor observes a successfully handled command. It runs detached;
	// its outcome never reaches the caller.
	Monitor(ctx context.Context, cmd C, act actor.Actor) error
}

// Execute runs a command through the authorize -> handle -> monitor
// pipeline. Authorization failures short-circuit before Handle runs, and
// Monitor fires only after a successful Handle, on a context detached from
// the request's cancellation.
func Execute[C any, T any](ctx context.Context, log *zap.Logger, h Handler[C, T], cmd C, act actor.Actor) (result.Result[T], error) {
	log = log.With(zap.String("execution_id", uuid.NewString()))

	auth, err := h.Authorize(ctx, cmd, act)
	if err != nil {
		return result.Result[T]{}, err
	}
	if auth.Failed() {
		return result.Recast[result.Unit, T](auth), nil
	}

	res, err := h.Handle(ctx, cmd, act)
	if err != nil {
		return result.Result[T]{}, err
	}
	if res.Failed() {
		return res, nil
	}

	mctx := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("command monitor panicked", zap.Any("panic", r))
			}
		}()
		if err := h.Monitor(mctx, cmd, act); err != nil {
			log.Warn("command monitor failed", zap.Error(err))
		}
	}()

	return res, nil
}

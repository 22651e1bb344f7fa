package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeSweepExpiredSubmissions = "submissions:sweep"

// SweepPayload optionally pins the sweep time (epoch seconds). Zero means the
// worker's clock at execution.
type SweepPayload struct {
	Now int64 `json:"now,omitempty"`
}

func NewSweepTask(now int64) (*asynq.Task, error) {
	payload, err := json.Marshal(SweepPayload{Now: now})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSweepExpiredSubmissions, payload), nil
}

// Sweeper is the retention sweep the task triggers.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// HandleSweepTask builds the asynq handler. Failed deletions make the task
// fail so asynq retries it; records already removed are skipped on retry.
func HandleSweepTask(sweeper Sweeper, clock func() time.Time) asynq.HandlerFunc {
	if clock == nil {
		clock = time.Now
	}
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SweepPayload
		if len(t.Payload()) > 0 {
			if err := json.Unmarshal(t.Payload(), &payload); err != nil {
				return fmt.Errorf("decode sweep payload: %v: %w", err, asynq.SkipRetry)
			}
		}
		now := clock()
		if payload.Now > 0 {
			now = time.Unix(payload.Now, 0)
		}
		_, err := sweeper.Sweep(ctx, now)
		return err
	}
}

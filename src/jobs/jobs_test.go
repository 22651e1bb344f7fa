package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSweeper struct {
	at  time.Time
	err error
}

func (r *recordingSweeper) Sweep(_ context.Context, now time.Time) (int, error) {
	r.at = now
	return 3, r.err
}

func TestNewSweepTask(t *testing.T) {
	task, err := NewSweepTask(1234)
	require.NoError(t, err)
	assert.Equal(t, TypeSweepExpiredSubmissions, task.Type())

	var p SweepPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, int64(1234), p.Now)
}

func TestHandleSweepTaskUsesClock(t *testing.T) {
	clock := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	sweeper := &recordingSweeper{}
	task, err := NewSweepTask(0)
	require.NoError(t, err)

	err = HandleSweepTask(sweeper, func() time.Time { return clock })(context.Background(), task)

	require.NoError(t, err)
	assert.Equal(t, clock, sweeper.at)
}

func TestHandleSweepTaskPayloadOverride(t *testing.T) {
	sweeper := &recordingSweeper{}
	task, err := NewSweepTask(1_700_000_000)
	require.NoError(t, err)

	require.NoError(t, HandleSweepTask(sweeper, nil)(context.Background(), task))
	assert.Equal(t, int64(1_700_000_000), sweeper.at.Unix())
}

func TestHandleSweepTaskErrors(t *testing.T) {
	sweeper := &recordingSweeper{err: errors.New("delete failed")}
	task, err := NewSweepTask(0)
	require.NoError(t, err)
	assert.Error(t, HandleSweepTask(sweeper, nil)(context.Background(), task))

	bad := asynq.NewTask(TypeSweepExpiredSubmissions, []byte("{not json"))
	err = HandleSweepTask(&recordingSweeper{}, nil)(context.Background(), bad)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

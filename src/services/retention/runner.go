package retention

import (
	"context"
	"time"
)

// SleepFunc blocks for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the real SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Runner sweeps, sleeps for Interval, and repeats until its context ends. It is
// used when no asynq scheduler is available.
type Runner struct {
	Sweeper  *Sweeper
	Interval time.Duration
	Clock    func() time.Time
	Sleep    SleepFunc
}

// Run returns ctx.Err() once cancelled. Sweep failures do not stop the loop;
// the remaining records are picked up by the next sweep.
func (r *Runner) Run(ctx context.Context) error {
	clock := r.Clock
	if clock == nil {
		clock = time.Now
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	interval := r.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := r.Sweeper.Sweep(ctx, clock()); err != nil {
			r.Sweeper.log.Error().Err(err).Msg("❌ retention sweep failed")
		}
		if err := sleep(ctx, interval); err != nil {
			return err
		}
	}
}

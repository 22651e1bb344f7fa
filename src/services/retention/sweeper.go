// Package retention deletes submissions whose expiration time has passed.
package retention

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Bizonii-Backend/src/logger"
	"Bizonii-Backend/src/metrics"

	"github.com/rs/zerolog"
)

// Store is the slice of the submission store a sweep needs. Delete reports
// false, without error, when the record is already gone.
type Store interface {
	ListExpired(ctx context.Context, now time.Time) ([]string, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Sweeper struct {
	store   Store
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewSweeper(store Store, m *metrics.Metrics) *Sweeper {
	return &Sweeper{store: store, metrics: m, log: logger.Component("retention")}
}

// Sweep deletes every submission with an expiration time at or before now and
// returns how many this call removed. Each deletion stands on its own: a
// failure is logged and the sweep moves on, and a cancelled context stops it
// between records.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	deleted, err := s.sweep(ctx, now)
	s.metrics.RecordSweep(deleted, err)
	return deleted, err
}

func (s *Sweeper) sweep(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.store.ListExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list expired submissions: %w", err)
	}

	deleted := 0
	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		ok, err := s.store.Delete(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("submission_id", id).Msg("⚠️ failed to delete expired submission")
			errs = append(errs, fmt.Errorf("delete submission %s: %w", id, err))
			continue
		}
		if ok {
			deleted++
		}
	}

	s.log.Info().
		Int("expired", len(ids)).
		Int("deleted", deleted).
		Int64("now", now.Unix()).
		Msg("🧹 retention sweep finished")
	return deleted, errors.Join(errs...)
}

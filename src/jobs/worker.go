package jobs

import (
	"fmt"
	"time"

	"Bizonii-Backend/src/logger"

	"github.com/hibiken/asynq"
)

const sweepQueue = "retention"

// WorkerConfig configures the asynq server and the periodic sweep.
type WorkerConfig struct {
	Redis    asynq.RedisClientOpt
	Cron     string
	Location *time.Location
}

// StartWorker runs the asynq server handling sweep tasks and a scheduler that
// enqueues one every Cron tick. The returned func stops both.
func StartWorker(cfg WorkerConfig, sweeper Sweeper, clock func() time.Time) (func(), error) {
	log := logger.Component("jobs")

	srv := asynq.NewServer(cfg.Redis, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{sweepQueue: 1},
		Logger:      asynqLogger{log: log},
	})
	mux := asynq.NewServeMux()
	mux.Handle(TypeSweepExpiredSubmissions, HandleSweepTask(sweeper, clock))
	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("start asynq server: %w", err)
	}

	scheduler := asynq.NewScheduler(cfg.Redis, &asynq.SchedulerOpts{
		Location: cfg.Location,
		Logger:   asynqLogger{log: log},
	})
	task, err := NewSweepTask(0)
	if err != nil {
		srv.Shutdown()
		return nil, err
	}
	// Unique drops a second enqueue of the same tick, e.g. from another replica.
	entryID, err := scheduler.Register(cfg.Cron, task, asynq.Queue(sweepQueue), asynq.Unique(time.Minute))
	if err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("register sweep schedule %q: %w", cfg.Cron, err)
	}
	if err := scheduler.Start(); err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("start asynq scheduler: %w", err)
	}

	log.Info().Str("cron", cfg.Cron).Str("entry_id", entryID).Msg("✅ retention sweep scheduled")
	return func() {
		scheduler.Shutdown()
		srv.Shutdown()
	}, nil
}

// EnqueueSweep asks the worker to sweep as soon as possible.
func EnqueueSweep(client *asynq.Client, now int64) (*asynq.TaskInfo, error) {
	task, err := NewSweepTask(now)
	if err != nil {
		return nil, err
	}
	return client.Enqueue(task, asynq.Queue(sweepQueue), asynq.Unique(time.Minute))
}

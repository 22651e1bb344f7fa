package controllers

import (
	"context"
	"errors"
	"time"

	"Bizonii-Backend/src/jobs"
	"Bizonii-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

// JobsController triggers retention sweeps outside their schedule.
type JobsController struct {
	client  *asynq.Client
	sweeper jobs.Sweeper
	now     func() time.Time
}

// NewJobsController - client may be nil when Redis is not configured.
func NewJobsController(client *asynq.Client, sweeper jobs.Sweeper, clock func() time.Time) *JobsController {
	if clock == nil {
		clock = time.Now
	}
	return &JobsController{client: client, sweeper: sweeper, now: clock}
}

// TriggerSweep godoc
// @Summary      Enqueue a retention sweep
// @Description  Requires Asynq (Redis) configured
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  map[string]interface{}
// @Failure      409  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /jobs/sweep [post]
func (jc *JobsController) TriggerSweep(c *fiber.Ctx) error {
	if jc.client == nil {
		return utils.HandleError(c, fiber.StatusServiceUnavailable, "asynq client not initialized")
	}
	info, err := jobs.EnqueueSweep(jc.client, 0)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return utils.HandleError(c, fiber.StatusConflict, "a sweep is already queued")
		}
		return HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "enqueued", "task_id": info.ID, "queue": info.Queue})
}

// RunSweepNow godoc
// @Summary      Run a retention sweep in-process
// @Description  Does not require Redis; runs the same sweep as the background worker
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  models.ErrorResponse
// @Router       /jobs/sweep/run-now [post]
func (jc *JobsController) RunSweepNow(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), time.Minute)
	defer cancel()

	deleted, err := jc.sweeper.Sweep(ctx, jc.now())
	if err != nil {
		return HandleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "executed", "deleted": deleted})
}

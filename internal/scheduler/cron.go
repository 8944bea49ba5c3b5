package scheduler

import (
	"context"
	"fmt"

	"salescrm_backend/platform/config"
	"salescrm_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Cron registers the periodic release run on the asynq scheduler.
type Cron struct {
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

func NewCron(cfg config.SchedulerConfig, log *logger.Logger) (*Cron, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{})

	task, err := NewReleaseInactiveTask(ReleaseInactivePayload{TriggeredBy: "schedule"})
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(cfg.GetReclamationCron(), task, asynq.Queue(queue)); err != nil {
		return nil, fmt.Errorf("register release schedule: %w", err)
	}

	return &Cron{scheduler: scheduler, log: log}, nil
}

// Run blocks until ctx is cancelled.
func (c *Cron) Run(ctx context.Context) {
	if c == nil || c.scheduler == nil {
		return
	}

	go func() {
		<-ctx.Done()
		c.scheduler.Shutdown()
	}()

	if err := c.scheduler.Run(); err != nil {
		c.log.Error("cron scheduler stopped", "error", err)
	}
}

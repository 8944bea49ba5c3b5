package scheduler

import (
	"context"
	"fmt"

	"salescrm_backend/internal/reclamation/service"
	"salescrm_backend/platform/config"
	"salescrm_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// ReleaseRunner executes one reclamation pass.
type ReleaseRunner interface {
	Run(ctx context.Context) (service.Result, error)
}

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	release ReleaseRunner
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, release ReleaseRunner, log *logger.Logger) (*Worker, error) {
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

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		release: release,
		log:     log,
	}

	mux.HandleFunc(TaskReleaseInactiveProspects, w.handleReleaseInactive)

	return w, nil
}

func (w *Worker) handleReleaseInactive(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseReleaseInactivePayload(task)
	if err != nil {
		return err
	}

	result, err := w.release.Run(ctx)
	w.log.CronRun("release_inactive_prospects", result.ReleasedCount, err)
	if err != nil {
		return err
	}

	w.log.Info("release run complete",
		"triggered_by", payload.TriggeredBy,
		"released", result.ReleasedCount,
	)
	return nil
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

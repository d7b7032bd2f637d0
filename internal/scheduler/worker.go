package scheduler

import (
	"context"
	"fmt"

	"sales_portal_backend/platform/config"
	"sales_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultEnqueued      = "enqueued"
	resultEnqueueFailed = "enqueue_failed"
	resultProcessed     = "processed"
	resultFailed        = "failed"
)

var tasksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "scheduler_tasks_total",
		Help: "Scheduler tasks by task type and result",
	},
	[]string{"task", "result"},
)

// ConversionRecorder writes the onboarding activity for a converted account.
type ConversionRecorder interface {
	RecordConversion(ctx context.Context, accountID, leadID uuid.UUID, company, owner string) error
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	recorder ConversionRecorder
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, recorder ConversionRecorder, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		recorder: recorder,
		log:      log,
	}

	mux.HandleFunc(TaskAccountOnboarding, w.handleAccountOnboarding)

	return w, nil
}

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

func (w *Worker) handleAccountOnboarding(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAccountOnboardingPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	accountID, err := uuid.Parse(payload.AccountID)
	if err != nil {
		return fmt.Errorf("%w: invalid account id", asynq.SkipRetry)
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return fmt.Errorf("%w: invalid lead id", asynq.SkipRetry)
	}

	if err := w.recorder.RecordConversion(ctx, accountID, leadID, payload.Company, payload.Owner); err != nil {
		tasksTotal.WithLabelValues(TaskAccountOnboarding, resultFailed).Inc()
		return err
	}

	tasksTotal.WithLabelValues(TaskAccountOnboarding, resultProcessed).Inc()
	w.log.Info("account onboarding recorded", "accountId", accountID, "company", payload.Company)
	return nil
}

package jobs

import (
	"context"
	"log/slog"

	"campusdelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type matchSearchingOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.MatchSearchingOrdersCommand) (commands.MatchBatchResult, error)
}

// OrderMatchingJob retries matching for paid orders still waiting for a
// courier, e.g. after automatic matching found nobody available.
type OrderMatchingJob struct {
	handler   matchSearchingOrdersHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOrderMatchingJob(
	handler matchSearchingOrdersHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *OrderMatchingJob {
	return &OrderMatchingJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "order_matching_job"),
	}
}

// Start schedules the job. An empty schedule leaves it disabled.
func (j *OrderMatchingJob) Start() error {
	if j.schedule == "" {
		j.logger.InfoContext(context.Background(), "Order matching job disabled")
		return nil
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order matching job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single matching pass.
func (j *OrderMatchingJob) RunOnce(ctx context.Context) {
	cmd, err := commands.NewMatchSearchingOrdersCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order matching job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order matching job failed", "error", err)
		return
	}
	if result.Matched > 0 || result.Pending > 0 {
		j.logger.InfoContext(ctx, "Order matching pass finished", "matched", result.Matched, "pending", result.Pending)
	}
}

// Stop waits for a running pass to finish.
func (j *OrderMatchingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order matching job stopped")
}

package jobs

import (
	"context"
	"log/slog"
	"time"

	"campusdelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type expirePendingPaymentsHandler interface {
	Handle(ctx context.Context, cmd commands.ExpirePendingPaymentsCommand) (int, error)
}

// PaymentExpiryJob marks payments older than ttl that the gateway never
// settled as expired, so the requester can retry.
type PaymentExpiryJob struct {
	handler   expirePendingPaymentsHandler
	schedule  string
	ttl       time.Duration
	batchSize int
	now       func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewPaymentExpiryJob(
	handler expirePendingPaymentsHandler,
	schedule string,
	ttl time.Duration,
	batchSize int,
	logger *slog.Logger,
) *PaymentExpiryJob {
	return &PaymentExpiryJob{
		handler:   handler,
		schedule:  schedule,
		ttl:       ttl,
		batchSize: batchSize,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "payment_expiry_job"),
	}
}

// Start schedules the job. An empty schedule or a non-positive ttl leaves it
// disabled.
func (j *PaymentExpiryJob) Start() error {
	if j.schedule == "" || j.ttl <= 0 {
		j.logger.InfoContext(context.Background(), "Payment expiry job disabled")
		return nil
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment expiry job started", "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

func (j *PaymentExpiryJob) RunOnce(ctx context.Context) {
	cmd, err := commands.NewExpirePendingPaymentsCommand(j.now().UTC().Add(-j.ttl), j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment expiry job misconfigured", "error", err)
		return
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment expiry job failed", "error", err)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired stale payments", "count", expired)
	}
}

func (j *PaymentExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Payment expiry job stopped")
}

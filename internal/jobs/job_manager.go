package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderMatchingJob *OrderMatchingJob
	paymentExpiryJob *PaymentExpiryJob
}

func NewJobManager(orderMatchingJob *OrderMatchingJob, paymentExpiryJob *PaymentExpiryJob) *JobManager {
	return &JobManager{
		orderMatchingJob: orderMatchingJob,
		paymentExpiryJob: paymentExpiryJob,
	}
}

// StartAll starts all scheduled jobs. If one fails to start, the jobs
// already running are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.orderMatchingJob.Start(); err != nil {
		return fmt.Errorf("failed to start order matching job: %w", err)
	}

	if err := jm.paymentExpiryJob.Start(); err != nil {
		jm.orderMatchingJob.Stop()
		return fmt.Errorf("failed to start payment expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running passes.
func (jm *JobManager) StopAll() {
	jm.paymentExpiryJob.Stop()
	jm.orderMatchingJob.Stop()
}

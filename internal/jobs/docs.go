// Package jobs provides scheduled background tasks for the delivery system.
//
// Jobs are cron-based (github.com/robfig/cron/v3, with a seconds field) and
// each wraps one batch command:
//
//  1. OrderMatchingJob - retries the matching engine for searching_courier
//     orders, oldest first.
//  2. PaymentExpiryJob - expires pending payments the gateway never settled.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewOrderMatchingJob(matchHandler, "*/30 * * * * *", 50, logger),
//		jobs.NewPaymentExpiryJob(expireHandler, "0 * * * * *", 30*time.Minute, 100, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// An empty schedule disables a job.
//
// # Error Handling
//
// A failed pass is logged and retried on the next tick. Running out of
// couriers is not a failure: the batch stops and the orders wait.
package jobs

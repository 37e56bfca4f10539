// Package jobs provides scheduled background tasks for the fulfillment
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for courier settlement.
//
// # Available Jobs
//
// 1. CourierSettlementJob - Runs hourly to settle couriers with open balances
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(unsettledHandler, settleHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed settlement run for one courier is logged and skipped; the
// remaining couriers still settle, and the next run retries whatever is
// left open.
package jobs

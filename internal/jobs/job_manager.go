package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	courierSettlementJob *CourierSettlementJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the query and command handlers as dependencies to wire up job
// execution.
func NewJobManager(
	unsettledHandler queries.GetUnsettledCouriersQueryHandler,
	settleHandler commands.SettleCourierCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		courierSettlementJob: NewCourierSettlementJob(unsettledHandler, settleHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.courierSettlementJob.Start(); err != nil {
		return fmt.Errorf("failed to start courier settlement job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.courierSettlementJob.Stop()
}

package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// CourierSettlementJob periodically settles every courier that carries
// unsettled transactions. Runs at the top of each hour.
type CourierSettlementJob struct {
	unsettledHandler queries.GetUnsettledCouriersQueryHandler
	settleHandler    commands.SettleCourierCommandHandler
	cron             *cron.Cron
	logger           *slog.Logger
}

// NewCourierSettlementJob creates the scheduled settlement job.
func NewCourierSettlementJob(
	unsettledHandler queries.GetUnsettledCouriersQueryHandler,
	settleHandler commands.SettleCourierCommandHandler,
	logger *slog.Logger,
) *CourierSettlementJob {
	return &CourierSettlementJob{
		unsettledHandler: unsettledHandler,
		settleHandler:    settleHandler,
		cron:             cron.New(cron.WithSeconds()),
		logger:           logger.With("component", "courier_settlement_job"),
	}
}

// Start schedules the settlement run at the top of each hour.
func (j *CourierSettlementJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Courier settlement job started (running hourly)")
	return nil
}

// Stop stops the settlement job.
func (j *CourierSettlementJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Courier settlement job stopped")
}

// run settles each open courier independently. A failure on one courier
// is logged and does not stop the others: every run picks up whatever
// the previous one left behind.
func (j *CourierSettlementJob) run() {
	ctx := context.Background()

	couriers, err := j.unsettledHandler.Handle(ctx, queries.NewGetUnsettledCouriersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list couriers with open balances", "error", err)
		return
	}

	for _, c := range couriers {
		cmd, cmdErr := commands.NewSettleCourierCommand(c.CourierID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build settlement command",
				"courier_id", c.CourierID.String(), "error", cmdErr)
			continue
		}

		result, settleErr := j.settleHandler.Handle(ctx, cmd)
		if settleErr != nil {
			j.logger.ErrorContext(ctx, "Courier settlement run failed",
				"courier_id", c.CourierID.String(), "error", settleErr)
			continue
		}

		j.logger.InfoContext(ctx, "Courier settlement run completed",
			"courier_id", c.CourierID.String(),
			"settled_count", result.SettledCount,
			"net", result.Net.String(),
		)
	}
}

package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/notifier"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/accountrepo"
	"fulfillment/internal/adapters/out/postgres/partnerrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	accounts      ports.AccountResolver
	partnerConfig ports.PartnerConfigProvider
	notifier      ports.Notifier
	logger        *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		accounts:      accountrepo.NewGormAccountResolver(gormDB),
		partnerConfig: partnerrepo.NewGormPartnerConfigProvider(gormDB),
		notifier:      notifier.NewSlogNotifier(logger),
		logger:        logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(
		c.settlementUoWFactory(), c.accounts, c.partnerConfig, c.notifier)
}

func (c *CompositionRoot) CreateSettleOrderCommandHandler() commands.SettleOrderCommandHandler {
	return commands.NewSettleOrderCommandHandler(c.settlementUoWFactory(), c.accounts, c.notifier)
}

func (c *CompositionRoot) CreateSettleCourierCommandHandler() commands.SettleCourierCommandHandler {
	return commands.NewSettleCourierCommandHandler(c.settlementUoWFactory(), c.accounts, c.notifier)
}

func (c *CompositionRoot) CreateGetCourierBalancesQueryHandler() queries.GetCourierBalancesQueryHandler {
	return queries.NewGetCourierBalancesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnsettledCouriersQueryHandler() queries.GetUnsettledCouriersQueryHandler {
	return queries.NewGetUnsettledCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetUnsettledCouriersQueryHandler(),
		c.CreateSettleCourierCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) settlementUoWFactory() commands.SettlementUoWFactory {
	return FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

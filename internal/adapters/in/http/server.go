// Package http exposes the fulfillment use cases over a REST API.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Server handles HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	dispatchOrderHandler   commands.DispatchOrderCommandHandler
	settleOrderHandler     commands.SettleOrderCommandHandler
	settleCourierHandler   commands.SettleCourierCommandHandler

	// Query handlers
	courierBalancesHandler   queries.GetCourierBalancesQueryHandler
	unsettledCouriersHandler queries.GetUnsettledCouriersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	settleOrderHandler commands.SettleOrderCommandHandler,
	settleCourierHandler commands.SettleCourierCommandHandler,
	courierBalancesHandler queries.GetCourierBalancesQueryHandler,
	unsettledCouriersHandler queries.GetUnsettledCouriersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		transitionOrderHandler:   transitionOrderHandler,
		dispatchOrderHandler:     dispatchOrderHandler,
		settleOrderHandler:       settleOrderHandler,
		settleCourierHandler:     settleCourierHandler,
		courierBalancesHandler:   courierBalancesHandler,
		unsettledCouriersHandler: unsettledCouriersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders", s.CreateOrder)
	e.POST("/api/v1/orders/:id/transition", s.TransitionOrder)
	e.POST("/api/v1/orders/:id/settlement", s.DispatchOrder)
	e.POST("/api/v1/orders/:id/settle", s.SettleOrder)
	e.POST("/api/v1/couriers/:id/settle", s.SettleCourier)
	e.GET("/api/v1/couriers/:id/balances", s.GetCourierBalance)
	e.GET("/api/v1/couriers/unsettled", s.GetUnsettledCouriers)
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := buildCreateOrderCommand(newOrder)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: cmd.OrderID().Bytes()})
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - moves an
// order through the fulfillment pipeline. A Dispatched target routes to
// the dispatch use case, which creates the settlement artifacts; every
// other target is a plain state change.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var transition Transition
	if err = ctx.Bind(&transition); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StateFromString(transition.State)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid target state: " + transition.State,
		})
	}

	if target == order.Dispatched {
		return s.dispatch(ctx, orderID, Dispatch{
			CourierID: transition.CourierID,
			Timing:    transition.Timing,
		})
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid transition: " + err.Error(),
		})
	}

	if handleErr := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// DispatchOrder handles POST /api/v1/orders/:id/settlement - dispatches
// an order without going through the generic transition body.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var dispatch Dispatch
	if err = ctx.Bind(&dispatch); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	return s.dispatch(ctx, orderID, dispatch)
}

// dispatch builds and runs the dispatch use case. Timing defaults to
// deferred settlement when the caller does not choose.
func (s *Server) dispatch(ctx echo.Context, orderID kernel.UUID, dispatch Dispatch) error {
	timing := services.SettleLater
	if dispatch.Timing != "" {
		var err error
		timing, err = services.TimingFromString(dispatch.Timing)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid settlement timing: " + dispatch.Timing,
			})
		}
	}

	var courierID *kernel.UUID
	if dispatch.CourierID != nil {
		id, err := kernel.UUIDFromBytes(dispatch.CourierID[:])
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid courier id",
			})
		}
		courierID = &id
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID, courierID, timing)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid dispatch request: " + err.Error(),
		})
	}

	result, handleErr := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, Dispatched{
		Strategy:     result.Strategy.String(),
		NetToCollect: result.NetToCollect,
	})
}

// SettleOrder handles POST /api/v1/orders/:id/settle - settles the
// courier transaction of a single order.
func (s *Server) SettleOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewSettleOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid settlement request: " + err.Error(),
		})
	}

	if handleErr := s.settleOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, map[string]bool{"settled": true})
}

// SettleCourier handles POST /api/v1/couriers/:id/settle - settles every
// open transaction of a courier in one run.
func (s *Server) SettleCourier(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid courier id",
		})
	}

	cmd, err := commands.NewSettleCourierCommand(courierID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid settlement request: " + err.Error(),
		})
	}

	result, handleErr := s.settleCourierHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, SettlementRun{
		CourierID:    courierID.Bytes(),
		SettledCount: result.SettledCount,
		Net:          result.Net,
	})
}

// GetCourierBalance handles GET /api/v1/couriers/:id/balances - returns a
// courier's open position.
func (s *Server) GetCourierBalance(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid courier id",
		})
	}

	query, err := queries.NewGetCourierBalancesQuery(courierID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid balance request: " + err.Error(),
		})
	}

	balance, handleErr := s.courierBalancesHandler.Handle(ctx.Request().Context(), query)
	if handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	lines := make([]CourierBalanceLine, len(balance.Lines))
	for i, line := range balance.Lines {
		lines[i] = CourierBalanceLine{OrderID: line.OrderID.Bytes(), Net: line.Net}
	}

	return ctx.JSON(http.StatusOK, CourierBalance{
		CourierID:        balance.CourierID.Bytes(),
		OrderTotal:       balance.OrderTotal,
		ShippingTotal:    balance.ShippingTotal,
		Net:              balance.Net,
		TransactionCount: balance.TransactionCount,
		Transactions:     lines,
	})
}

// GetUnsettledCouriers handles GET /api/v1/couriers/unsettled - lists
// every courier carrying open transactions.
func (s *Server) GetUnsettledCouriers(ctx echo.Context) error {
	couriers, err := s.unsettledCouriersHandler.Handle(
		ctx.Request().Context(), queries.NewGetUnsettledCouriersQuery())
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]UnsettledCourier, len(couriers))
	for i, c := range couriers {
		response[i] = UnsettledCourier{
			CourierID:        c.CourierID.Bytes(),
			Net:              c.Net,
			TransactionCount: c.TransactionCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func buildCreateOrderCommand(newOrder NewOrder) (commands.CreateOrderCommand, error) {
	customerID, err := kernel.UUIDFromBytes(newOrder.CustomerID[:])
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	companyID, err := kernel.UUIDFromBytes(newOrder.CompanyID[:])
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	var partnerID *kernel.UUID
	if newOrder.PartnerID != nil {
		id, partnerErr := kernel.UUIDFromBytes(newOrder.PartnerID[:])
		if partnerErr != nil {
			return commands.CreateOrderCommand{}, partnerErr
		}
		partnerID = &id
	}

	channel, err := channelFromString(newOrder.Channel)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	grandTotal, err := kernel.NewMoney(newOrder.GrandTotal)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	outstanding, err := kernel.NewMoney(newOrder.Outstanding)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	shipping, err := kernel.NewMoney(newOrder.ShippingExpense)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]order.LineItem, 0, len(newOrder.Items))
	for _, it := range newOrder.Items {
		amount, itemErr := kernel.NewMoney(it.Amount)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, itemErr
		}
		li, itemErr := order.NewLineItem(it.ItemCode, it.Quantity, amount)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, itemErr
		}
		items = append(items, li)
	}

	return commands.NewCreateOrderCommand(
		kernel.NewUUID(), customerID, companyID, partnerID, channel,
		grandTotal, outstanding, shipping,
		order.PickupSignals{
			Explicit: newOrder.Pickup,
			Legacy:   newOrder.LegacyPickup,
			Remarks:  newOrder.Remarks,
		},
		items,
	)
}

func channelFromString(name string) (order.PaymentChannel, error) {
	switch name {
	case "cash", "Cash", "CASH":
		return order.ChannelCash, nil
	case "online", "Online", "ONLINE":
		return order.ChannelOnline, nil
	default:
		return order.ChannelCash, errs.NewValueIsInvalidError("channel must be 'cash' or 'online'")
	}
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// errorResponse maps use-case failures to HTTP statuses. Missing
// account or partner configuration surfaces as 422 rather than 500 so
// setup gaps stand apart from genuine server faults.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrCourierIsRequired):
		code = http.StatusBadRequest
	case errors.Is(err, ports.ErrStateConflict),
		errors.Is(err, courier.ErrAlreadySettled):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrMissingAccount),
		errors.Is(err, errs.ErrMissingPartnerConfig):
		code = http.StatusUnprocessableEntity
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

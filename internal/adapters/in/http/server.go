// Package http exposes the engine over REST. The surface mirrors the use
// cases one to one: reads come from the synchronization store, writes go
// through the optimistic mutation commands.
package http

import (
	"errors"
	"net/http"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/services"
	"ordersync/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	claimOrderHandler      commands.ClaimOrderCommandHandler
	rejectOrderHandler     commands.RejectOrderCommandHandler
	assignCourierHandler   commands.AssignCourierCommandHandler
	proposePriceHandler    commands.ProposePriceCommandHandler
	confirmPriceHandler    commands.ConfirmPriceCommandHandler
	resolveConflictHandler commands.ResolveConflictCommandHandler
	endOrderHandler        commands.EndOrderCommandHandler
	refreshOrdersHandler   commands.RefreshOrdersCommandHandler

	// Query handlers
	getProjectionHandler  queries.GetProjectionQueryHandler
	getOrderHandler       queries.GetOrderQueryHandler
	getNegotiationHandler queries.GetNegotiationQueryHandler
}

// NewServer creates an HTTP server over the given use case handlers.
func NewServer(
	claimOrderHandler commands.ClaimOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	proposePriceHandler commands.ProposePriceCommandHandler,
	confirmPriceHandler commands.ConfirmPriceCommandHandler,
	resolveConflictHandler commands.ResolveConflictCommandHandler,
	endOrderHandler commands.EndOrderCommandHandler,
	refreshOrdersHandler commands.RefreshOrdersCommandHandler,
	getProjectionHandler queries.GetProjectionQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getNegotiationHandler queries.GetNegotiationQueryHandler,
) *Server {
	return &Server{
		claimOrderHandler:      claimOrderHandler,
		rejectOrderHandler:     rejectOrderHandler,
		assignCourierHandler:   assignCourierHandler,
		proposePriceHandler:    proposePriceHandler,
		confirmPriceHandler:    confirmPriceHandler,
		resolveConflictHandler: resolveConflictHandler,
		endOrderHandler:        endOrderHandler,
		refreshOrdersHandler:   refreshOrdersHandler,
		getProjectionHandler:   getProjectionHandler,
		getOrderHandler:        getOrderHandler,
		getNegotiationHandler:  getNegotiationHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/negotiation", s.GetNegotiation)

	api.POST("/orders/refresh", s.RefreshOrders)
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.POST("/orders/:id/reject", s.RejectOrder)
	api.POST("/orders/:id/assign", s.AssignCourier)
	api.POST("/orders/:id/propose-price", s.ProposePrice)
	api.POST("/orders/:id/confirm-price", s.ConfirmPrice)
	api.POST("/orders/:id/resolve-conflict", s.ResolveConflict)
	api.POST("/orders/:id/end", s.EndOrder)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type actorRequest struct {
	CourierID string `json:"courier_id"`
}

type assignRequest struct {
	CourierID string `json:"courier_id"`
	Auto      bool   `json:"auto"`
}

type proposePriceRequest struct {
	CourierID string `json:"courier_id"`
	Amount    int64  `json:"amount"`
}

type confirmPriceRequest struct {
	ClientID string `json:"client_id"`
	Amount   int64  `json:"amount"`
	Method   string `json:"method"`
}

type resolveConflictRequest struct {
	Amount int64 `json:"amount"`
}

type refreshRequest struct {
	Force bool   `json:"force"`
	Scope string `json:"scope"`
}

// GetOrders handles GET /api/v1/orders - the role- and tab-scoped projection.
// Query parameters: role (admin|operator|courier|client), tab (new|active|
// done) and actor (required for courier and client scopes).
func (s *Server) GetOrders(ctx echo.Context) error {
	role, err := services.RoleFromString(ctx.QueryParam("role"))
	if err != nil {
		return s.fail(ctx, err)
	}

	tab, err := services.TabFromString(ctx.QueryParam("tab"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var actorID kernel.UUID
	if raw := ctx.QueryParam("actor"); raw != "" {
		if actorID, err = kernel.UUIDFromString(raw); err != nil {
			return s.fail(ctx, err)
		}
	}

	query, err := queries.NewGetProjectionQuery(role, actorID, tab)
	if err != nil {
		return s.fail(ctx, err)
	}

	rows, err := s.getProjectionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, rows)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetNegotiation handles GET /api/v1/orders/:id/negotiation.
func (s *Server) GetNegotiation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetNegotiationQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.getNegotiationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// ClaimOrder handles POST /api/v1/orders/:id/claim.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var req actorRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx)
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, courierID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /api/v1/orders/:id/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRejectOrderCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignCourier handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var req assignRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx)
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID, req.Auto)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProposePrice handles POST /api/v1/orders/:id/propose-price.
func (s *Server) ProposePrice(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var req proposePriceRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx)
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return s.fail(ctx, err)
	}

	amount, err := kernel.NewPrice(req.Amount)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewProposePriceCommand(orderID, courierID, amount)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.proposePriceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmPrice handles POST /api/v1/orders/:id/confirm-price.
func (s *Server) ConfirmPrice(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var req confirmPriceRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx)
	}

	clientID, err := kernel.UUIDFromString(req.ClientID)
	if err != nil {
		return s.fail(ctx, err)
	}

	amount, err := kernel.NewPrice(req.Amount)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewConfirmPriceCommand(orderID, clientID, amount, req.Method)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.confirmPriceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveConflict handles POST /api/v1/orders/:id/resolve-conflict.
func (s *Server) ResolveConflict(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var req resolveConflictRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx)
	}

	amount, err := kernel.NewPrice(req.Amount)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewResolveConflictCommand(orderID, amount)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.resolveConflictHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// EndOrder handles POST /api/v1/orders/:id/end.
func (s *Server) EndOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var req actorRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx)
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewEndOrderCommand(orderID, courierID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.endOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RefreshOrders handles POST /api/v1/orders/refresh.
func (s *Server) RefreshOrders(ctx echo.Context) error {
	var req refreshRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx)
	}

	scope := syncstore.ScopeAll
	if req.Scope == "actor" {
		scope = syncstore.ScopeActor
	}

	cmd := commands.NewRefreshOrdersCommand(scope, req.Force)
	if err := s.refreshOrdersHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

func (s *Server) badRequest(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}

// fail maps a categorized error onto its HTTP status.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrTransientNetwork):
		status = http.StatusBadGateway
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

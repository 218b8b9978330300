package commands

import (
	"context"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
)

// AssignCourierCommandHandler applies a courier assignment through the
// optimistic mutation protocol.
type AssignCourierCommandHandler struct {
	store   Mutator
	gateway ports.OrderGateway
}

// NewAssignCourierCommandHandler creates a handler for assignment operations.
func NewAssignCourierCommandHandler(store Mutator, gateway ports.OrderGateway) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		store:   store,
		gateway: gateway,
	}
}

// Handle processes the assignment command.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.store.Mutate(ctx, command.OrderID(), syncstore.Mutation{
		Name: "assign courier",
		Patch: func(o *order.Order) error {
			return o.Assign(command.CourierID())
		},
		Call: func(ctx context.Context) error {
			_, err := h.gateway.Assign(ctx, command.OrderID(), command.CourierID(), command.Auto())
			return err
		},
	})
}

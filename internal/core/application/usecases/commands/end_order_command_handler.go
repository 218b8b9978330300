package commands

import (
	"context"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
)

// EndOrderCommandHandler terminates a delivery as completed through the
// optimistic mutation protocol.
type EndOrderCommandHandler struct {
	store   Mutator
	gateway ports.OrderGateway
}

// NewEndOrderCommandHandler creates a handler for delivery completion.
func NewEndOrderCommandHandler(store Mutator, gateway ports.OrderGateway) EndOrderCommandHandler {
	return EndOrderCommandHandler{
		store:   store,
		gateway: gateway,
	}
}

// Handle processes the completion command.
func (h EndOrderCommandHandler) Handle(ctx context.Context, command EndOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.store.Mutate(ctx, command.OrderID(), syncstore.Mutation{
		Name: "end order",
		Patch: func(o *order.Order) error {
			return o.Complete(command.CourierID())
		},
		Call: func(ctx context.Context) error {
			_, err := h.gateway.EndOrder(ctx, command.OrderID())
			return err
		},
	})
}

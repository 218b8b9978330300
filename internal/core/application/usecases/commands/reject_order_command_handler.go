package commands

import (
	"context"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
)

// RejectOrderCommandHandler terminates an order as failed through the
// optimistic mutation protocol.
type RejectOrderCommandHandler struct {
	store   Mutator
	gateway ports.OrderGateway
}

// NewRejectOrderCommandHandler creates a handler for rejection operations.
func NewRejectOrderCommandHandler(store Mutator, gateway ports.OrderGateway) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		store:   store,
		gateway: gateway,
	}
}

// Handle processes the rejection. A previously recorded assignee is retained
// on the failed order for audit.
func (h RejectOrderCommandHandler) Handle(ctx context.Context, command RejectOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.store.Mutate(ctx, command.OrderID(), syncstore.Mutation{
		Name: "reject",
		Patch: func(o *order.Order) error {
			return o.Reject()
		},
		Call: func(ctx context.Context) error {
			_, err := h.gateway.Reject(ctx, command.OrderID())
			return err
		},
	})
}

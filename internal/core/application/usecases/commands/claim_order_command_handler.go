package commands

import (
	"context"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
)

// ClaimOrderCommandHandler applies a courier's claim optimistically and makes
// it authoritative through the gateway. The order flips to Assigned locally
// before the remote acknowledgement; the store rolls the flip back if the
// claim loses the race.
//
// Example:
//
//	handler := NewClaimOrderCommandHandler(store, gateway)
//	cmd, _ := NewClaimOrderCommand(orderID, courierID)
//	switch err := handler.Handle(ctx, cmd); {
//	case errors.Is(err, errs.ErrConflict):
//	    log.Println("Order already taken")
//	case err != nil:
//	    log.Printf("Claim failed: %v", err)
//	}
type ClaimOrderCommandHandler struct {
	store   Mutator
	gateway ports.OrderGateway
}

// NewClaimOrderCommandHandler creates a handler for claim operations.
func NewClaimOrderCommandHandler(store Mutator, gateway ports.OrderGateway) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		store:   store,
		gateway: gateway,
	}
}

// Handle processes the claim command through the optimistic mutation protocol.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, command ClaimOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.store.Mutate(ctx, command.OrderID(), syncstore.Mutation{
		Name: "claim",
		Patch: func(o *order.Order) error {
			return o.Assign(command.CourierID())
		},
		Call: func(ctx context.Context) error {
			_, err := h.gateway.Claim(ctx, command.OrderID())
			return err
		},
	})
}

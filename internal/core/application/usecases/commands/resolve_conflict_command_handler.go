package commands

import (
	"context"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
)

// ResolveConflictCommandHandler settles a conflicted negotiation by admin
// arbitration. The order moves to PriceConfirmed optimistically, bypassing
// the creating-client check that applies to ordinary confirmations.
type ResolveConflictCommandHandler struct {
	store   Mutator
	gateway ports.OrderGateway
}

// NewResolveConflictCommandHandler creates a handler for arbitration.
func NewResolveConflictCommandHandler(store Mutator, gateway ports.OrderGateway) ResolveConflictCommandHandler {
	return ResolveConflictCommandHandler{
		store:   store,
		gateway: gateway,
	}
}

// Handle processes the arbitration command.
func (h ResolveConflictCommandHandler) Handle(ctx context.Context, command ResolveConflictCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.store.Mutate(ctx, command.OrderID(), syncstore.Mutation{
		Name: "resolve conflict",
		Patch: func(o *order.Order) error {
			return o.ApplyArbitration()
		},
		Call: func(ctx context.Context) error {
			_, err := h.gateway.ResolveConflict(ctx, command.OrderID(), command.Amount())
			return err
		},
	})
}

package commands

import (
	"context"
	"fmt"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"
)

// ConfirmPriceCommandHandler settles the price negotiation from the client
// side. The order moves to PriceConfirmed optimistically; if the confirmed
// amount diverges from the courier's proposal the authority marks the
// negotiation conflicted, the handler surfaces a conflict error and the
// optimistic transition is rolled back. An admin then resolves the conflict.
type ConfirmPriceCommandHandler struct {
	store   Mutator
	gateway ports.OrderGateway
}

// NewConfirmPriceCommandHandler creates a handler for price confirmations.
func NewConfirmPriceCommandHandler(store Mutator, gateway ports.OrderGateway) ConfirmPriceCommandHandler {
	return ConfirmPriceCommandHandler{
		store:   store,
		gateway: gateway,
	}
}

// Handle processes the confirmation. Only the creating client may confirm.
func (h ConfirmPriceCommandHandler) Handle(ctx context.Context, command ConfirmPriceCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.store.Mutate(ctx, command.OrderID(), syncstore.Mutation{
		Name: "confirm price",
		Patch: func(o *order.Order) error {
			return o.ConfirmPrice(command.ClientID())
		},
		Call: func(ctx context.Context) error {
			settled, err := h.gateway.ConfirmPrice(
				ctx, command.OrderID(), command.Amount(), command.Method())
			if err != nil {
				return err
			}
			if !settled.ResolvedStatus().IsAccepted() {
				return errs.NewConflictErrorWithCause("confirm price",
					fmt.Errorf("proposed and confirmed amounts diverge for order %s",
						command.OrderID()))
			}
			return nil
		},
	})
}

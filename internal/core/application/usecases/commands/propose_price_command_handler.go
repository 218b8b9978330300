package commands

import (
	"context"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
)

// ProposePriceCommandHandler opens the price negotiation on an order. The
// order moves to Negotiating optimistically; the proposal amount itself lives
// in the negotiation record on the authority side and is fetched on demand.
type ProposePriceCommandHandler struct {
	store   Mutator
	gateway ports.OrderGateway
}

// NewProposePriceCommandHandler creates a handler for price proposals.
func NewProposePriceCommandHandler(store Mutator, gateway ports.OrderGateway) ProposePriceCommandHandler {
	return ProposePriceCommandHandler{
		store:   store,
		gateway: gateway,
	}
}

// Handle processes the proposal. Only the assigned courier may propose; a
// proposal by anyone else fails with an authorization error before any
// gateway call is issued.
func (h ProposePriceCommandHandler) Handle(ctx context.Context, command ProposePriceCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.store.Mutate(ctx, command.OrderID(), syncstore.Mutation{
		Name: "propose price",
		Patch: func(o *order.Order) error {
			return o.OpenNegotiation(command.CourierID())
		},
		Call: func(ctx context.Context) error {
			_, err := h.gateway.ProposePrice(ctx, command.OrderID(), command.Amount())
			return err
		},
	})
}

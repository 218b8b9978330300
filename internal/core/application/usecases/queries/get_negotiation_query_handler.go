package queries

import (
	"context"

	"ordersync/internal/core/ports"
)

// GetNegotiationQueryHandler fetches an order's negotiation straight from the
// gateway. Returns the gateway's not-found error when no courier has proposed
// a price yet.
type GetNegotiationQueryHandler struct {
	gateway ports.OrderGateway
}

// NewGetNegotiationQueryHandler creates a handler for negotiation queries.
func NewGetNegotiationQueryHandler(gateway ports.OrderGateway) GetNegotiationQueryHandler {
	return GetNegotiationQueryHandler{gateway: gateway}
}

// Handle executes the negotiation query.
func (h GetNegotiationQueryHandler) Handle(
	ctx context.Context,
	query GetNegotiationQuery,
) (GetNegotiationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNegotiationQueryResponse{}, err
	}

	neg, err := h.gateway.GetNegotiation(ctx, query.OrderID())
	if err != nil {
		return GetNegotiationQueryResponse{}, err
	}

	return GetNegotiationQueryResponse{
		OrderID:                 neg.OrderID(),
		ProposedByCourier:       neg.ProposedByCourier(),
		ConfirmedByClient:       neg.ConfirmedByClient(),
		ResolvedStatus:          neg.ResolvedStatus().String(),
		Arbitrated:              neg.Arbitrated(),
		NeedsClientConfirmation: neg.NeedsClientConfirmation(),
	}, nil
}

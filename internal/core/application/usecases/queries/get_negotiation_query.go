package queries

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/guard"
)

var ErrGetNegotiationQueryIsNotConstructed = errors.New(
	"GetNegotiationQuery must be created via NewGetNegotiationQuery constructor",
)

// GetNegotiationQuery retrieves the price negotiation attached to an order.
// Negotiations are fetched lazily from the remote authority rather than
// cached: their state changes on every proposal round and a stale amount
// shown to the wrong party is worse than a round trip.
type GetNegotiationQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetNegotiationQuery creates a query for an order's negotiation.
func NewGetNegotiationQuery(orderID kernel.UUID) (GetNegotiationQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetNegotiationQuery{}, err
	}

	return GetNegotiationQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNegotiationQuery) Validate() error {
	return q.guard.Validate(ErrGetNegotiationQueryIsNotConstructed)
}

// OrderID returns the id of the order whose negotiation is requested.
func (q GetNegotiationQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetNegotiationQueryResponse carries the negotiation state for display.
// NeedsClientConfirmation is recomputed from the fetched state on every call;
// it decides whether the client is shown the price-confirmation form.
type GetNegotiationQueryResponse struct {
	OrderID                 kernel.UUID
	ProposedByCourier       *kernel.Price
	ConfirmedByClient       *kernel.Price
	ResolvedStatus          string
	Arbitrated              bool
	NeedsClientConfirmation bool
}

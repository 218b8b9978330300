package ports

import (
	"context"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/negotiation"
	"ordersync/internal/core/domain/model/order"
)

// OrderGateway defines the request/response contract with the remote order
// authority. Every call returns the updated Order or Negotiation as the
// authority sees it, or a categorized error from the errs package:
// transient network, conflict, authorization, validation or not-found.
//
// The acting party is carried by the credential the gateway was built with;
// operations such as Claim infer the courier from it.
type OrderGateway interface {
	// ListOrders retrieves the full order set visible to the credential.
	// Used by admin and operator scopes.
	ListOrders(ctx context.Context) ([]*order.Order, error)

	// ListOrdersForActor retrieves the orders relevant to one actor:
	// orders they created, orders assigned to them, and pending orders
	// open for claiming.
	ListOrdersForActor(ctx context.Context, actorID kernel.UUID) ([]*order.Order, error)

	// Claim assigns the pending order to the calling courier.
	Claim(ctx context.Context, orderID kernel.UUID) (*order.Order, error)

	// Reject terminates a non-terminal order as failed.
	Reject(ctx context.Context, orderID kernel.UUID) (*order.Order, error)

	// Assign assigns the order to a specific courier. When auto is true the
	// authority picked the courier itself and the call only acknowledges it.
	Assign(ctx context.Context, orderID, courierID kernel.UUID, auto bool) (*order.Order, error)

	// EndOrder marks an in-delivery order as delivered.
	EndOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error)

	// ProposePrice records the calling courier's price proposal.
	ProposePrice(ctx context.Context, orderID kernel.UUID, amount kernel.Price) (*negotiation.Negotiation, error)

	// ConfirmPrice records the calling client's confirmation. The method names
	// the payment channel chosen by the client.
	ConfirmPrice(
		ctx context.Context, orderID kernel.UUID, amount kernel.Price, method string,
	) (*negotiation.Negotiation, error)

	// GetNegotiation fetches the negotiation attached to an order.
	// Returns a not-found error if no courier has proposed yet.
	GetNegotiation(ctx context.Context, orderID kernel.UUID) (*negotiation.Negotiation, error)

	// ResolveConflict applies an admin arbitration amount to a conflicted
	// negotiation.
	ResolveConflict(ctx context.Context, orderID kernel.UUID, amount kernel.Price) (*negotiation.Negotiation, error)
}

package commands

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand terminates an order as failed. Rejection is allowed while
// the order is pending or assigned; later stages must run to completion or be
// resolved by an operator.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand creates a command to reject an order.
func NewRejectOrderCommand(orderID kernel.UUID) (RejectOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RejectOrderCommand{}, err
	}

	return RejectOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being rejected.
func (c RejectOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

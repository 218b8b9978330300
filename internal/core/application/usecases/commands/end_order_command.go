package commands

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/guard"
)

var ErrEndOrderCommandIsNotConstructed = errors.New(
	"EndOrderCommand must be created via NewEndOrderCommand constructor",
)

// EndOrderCommand marks an in-delivery order as delivered. Only the assigned
// courier may end their own delivery.
type EndOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewEndOrderCommand creates a command for a courier to complete a delivery.
func NewEndOrderCommand(orderID, courierID kernel.UUID) (EndOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
	); err != nil {
		return EndOrderCommand{}, err
	}

	return EndOrderCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c EndOrderCommand) Validate() error {
	return c.guard.Validate(ErrEndOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being completed.
func (c EndOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the delivering courier.
func (c EndOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

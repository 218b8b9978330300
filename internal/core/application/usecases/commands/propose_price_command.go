package commands

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/guard"
)

var ErrProposePriceCommandIsNotConstructed = errors.New(
	"ProposePriceCommand must be created via NewProposePriceCommand constructor",
)

// ProposePriceCommand records the assigned courier's price proposal for an
// order, opening the negotiation. Re-proposing while the discussion is open
// replaces the outstanding amount.
type ProposePriceCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	amount    kernel.Price

	guard guard.ConstructorGuard
}

// NewProposePriceCommand creates a command for a courier to propose a price.
// The amount must be a constructed, positive whole-unit price.
func NewProposePriceCommand(orderID, courierID kernel.UUID, amount kernel.Price) (ProposePriceCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
		amount.Validate(),
	); err != nil {
		return ProposePriceCommand{}, err
	}

	return ProposePriceCommand{
		orderID:   orderID,
		courierID: courierID,
		amount:    amount,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProposePriceCommand) Validate() error {
	return c.guard.Validate(ErrProposePriceCommandIsNotConstructed)
}

// OrderID returns the identifier of the order under negotiation.
func (c ProposePriceCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the proposing courier.
func (c ProposePriceCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Amount returns the proposed price.
func (c ProposePriceCommand) Amount() kernel.Price {
	return c.amount
}

package commands

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/guard"
)

var ErrResolveConflictCommandIsNotConstructed = errors.New(
	"ResolveConflictCommand must be created via NewResolveConflictCommand constructor",
)

// ResolveConflictCommand applies an admin arbitration amount to a conflicted
// negotiation. Both parties' amounts are overwritten with the arbitrated one
// and the negotiation settles as accepted.
type ResolveConflictCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  kernel.Price

	guard guard.ConstructorGuard
}

// NewResolveConflictCommand creates a command to arbitrate a price conflict.
func NewResolveConflictCommand(orderID kernel.UUID, amount kernel.Price) (ResolveConflictCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		amount.Validate(),
	); err != nil {
		return ResolveConflictCommand{}, err
	}

	return ResolveConflictCommand{
		orderID: orderID,
		amount:  amount,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveConflictCommand) Validate() error {
	return c.guard.Validate(ErrResolveConflictCommandIsNotConstructed)
}

// OrderID returns the identifier of the order whose negotiation is arbitrated.
func (c ResolveConflictCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the arbitrated price.
func (c ResolveConflictCommand) Amount() kernel.Price {
	return c.amount
}

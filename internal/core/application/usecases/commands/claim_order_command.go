package commands

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a courier claiming a pending order for
// themselves. Claiming is first-come-first-served: the remote authority
// arbitrates between couriers racing for the same order.
//
// Example:
//
//	cmd, err := NewClaimOrderCommand(orderID, courierID)
//	if err != nil {
//	    return fmt.Errorf("invalid claim: %w", err)
//	}
//
//	handler := NewClaimOrderCommandHandler(store, gateway)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errs.ErrConflict: someone else claimed it first
//	    return err
//	}
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command for a courier to claim an order.
// Both identifiers must be valid UUIDs.
func NewClaimOrderCommand(orderID, courierID kernel.UUID) (ClaimOrderCommand, error) {
	claimCommand := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		claimCommand.setOrderID(orderID),
		claimCommand.setCourierID(courierID),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return claimCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the claiming courier.
func (c ClaimOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

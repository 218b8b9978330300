package commands

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand assigns a specific courier to a pending order. Used by
// operators for manual dispatch, and with auto set when the remote authority
// picked the courier itself and the mirror only acknowledges the choice.
//
// Example:
//
//	cmd, err := NewAssignCourierCommand(orderID, courierID, false)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment: %w", err)
//	}
//	handler := NewAssignCourierCommandHandler(store, gateway)
//	err = handler.Handle(ctx, cmd)
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	auto      bool

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to assign a courier to an order.
func NewAssignCourierCommand(orderID, courierID kernel.UUID, auto bool) (AssignCourierCommand, error) {
	assignCommand := AssignCourierCommand{
		auto:  auto,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setOrderID(orderID),
		assignCommand.setCourierID(courierID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignCourierCommandIsNotConstructed if validation fails.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being assigned.
func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the courier receiving the order.
func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Auto reports whether the assignment was decided by the remote authority.
func (c AssignCourierCommand) Auto() bool {
	return c.auto
}

func (c *AssignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

package commands

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/guard"
)

var (
	ErrConfirmPriceCommandIsNotConstructed = errors.New(
		"ConfirmPriceCommand must be created via NewConfirmPriceCommand constructor",
	)
	ErrPaymentMethodIsRequired = errors.New("payment method is required")
)

// ConfirmPriceCommand records the client's confirmation of the courier's
// price proposal, together with the payment channel the client chose.
//
// Example:
//
//	amount, _ := kernel.NewPrice(2500)
//	cmd, err := NewConfirmPriceCommand(orderID, clientID, amount, "OM")
//	if err != nil {
//	    return fmt.Errorf("invalid confirmation: %w", err)
//	}
//	handler := NewConfirmPriceCommandHandler(store, gateway)
//	err = handler.Handle(ctx, cmd)
type ConfirmPriceCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	clientID kernel.UUID
	amount   kernel.Price
	method   string

	guard guard.ConstructorGuard
}

// NewConfirmPriceCommand creates a command for a client to confirm a price.
func NewConfirmPriceCommand(
	orderID, clientID kernel.UUID, amount kernel.Price, method string,
) (ConfirmPriceCommand, error) {
	confirmCommand := ConfirmPriceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		clientID.Validate(),
		amount.Validate(),
		confirmCommand.setMethod(method),
	); err != nil {
		return ConfirmPriceCommand{}, err
	}

	confirmCommand.orderID = orderID
	confirmCommand.clientID = clientID
	confirmCommand.amount = amount
	return confirmCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPriceCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPriceCommandIsNotConstructed)
}

// OrderID returns the identifier of the order under negotiation.
func (c ConfirmPriceCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the identifier of the confirming client.
func (c ConfirmPriceCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Amount returns the confirmed price.
func (c ConfirmPriceCommand) Amount() kernel.Price {
	return c.amount
}

// Method returns the payment channel chosen by the client.
func (c ConfirmPriceCommand) Method() string {
	return c.method
}

func (c *ConfirmPriceCommand) setMethod(method string) error {
	if method == "" {
		return ErrPaymentMethodIsRequired
	}

	c.method = method
	return nil
}

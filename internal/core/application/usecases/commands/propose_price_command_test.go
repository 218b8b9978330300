package commands_test

import (
	"testing"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrice(t *testing.T, amount int64) kernel.Price {
	t.Helper()
	price, err := kernel.NewPrice(amount)
	require.NoError(t, err)
	return price
}

func TestNewProposePriceCommand_Success(t *testing.T) {
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	amount := newPrice(t, 2500)

	cmd, err := commands.NewProposePriceCommand(orderID, courierID, amount)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.Amount().IsEqual(amount))
}

func TestNewProposePriceCommand_InvalidAmount(t *testing.T) {
	var unconstructed kernel.Price

	_, err := commands.NewProposePriceCommand(kernel.NewUUID(), kernel.NewUUID(), unconstructed)

	require.Error(t, err)
}

func TestProposePriceCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.ProposePriceCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrProposePriceCommandIsNotConstructed)
}

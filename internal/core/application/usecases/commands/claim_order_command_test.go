package commands_test

import (
	"testing"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaimOrderCommand_Success(t *testing.T) {
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	cmd, err := commands.NewClaimOrderCommand(orderID, courierID)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.True(t, cmd.CourierID().IsEqual(courierID))
}

func TestNewClaimOrderCommand_InvalidIDs(t *testing.T) {
	var zero kernel.UUID

	_, err := commands.NewClaimOrderCommand(zero, kernel.NewUUID())
	require.Error(t, err)

	_, err = commands.NewClaimOrderCommand(kernel.NewUUID(), zero)
	require.Error(t, err)
}

func TestClaimOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.ClaimOrderCommand // zero value, not constructed via constructor

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrClaimOrderCommandIsNotConstructed)
}

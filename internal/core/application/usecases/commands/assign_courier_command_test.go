package commands_test

import (
	"testing"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignCourierCommand_Success(t *testing.T) {
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID, true)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.True(t, cmd.CourierID().IsEqual(courierID))
	assert.True(t, cmd.Auto())
}

func TestNewAssignCourierCommand_InvalidIDs(t *testing.T) {
	var zero kernel.UUID

	_, err := commands.NewAssignCourierCommand(zero, kernel.NewUUID(), false)
	require.Error(t, err)

	_, err = commands.NewAssignCourierCommand(kernel.NewUUID(), zero, false)
	require.Error(t, err)
}

func TestAssignCourierCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.AssignCourierCommand // zero value, not constructed via constructor

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignCourierCommandIsNotConstructed)
}

package commands_test

import (
	"testing"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	courier := kernel.NewUUID()
	pending := newPendingOrder(t, kernel.NewUUID())

	store := newStoreStub(pending)
	gateway := new(MockOrderGateway)
	gateway.On("Assign", ctx, pending.ID(), courier, false).Return(pending, nil).Once()

	cmd, err := commands.NewAssignCourierCommand(pending.ID(), courier, false)
	require.NoError(t, err)

	h := commands.NewAssignCourierCommandHandler(store, gateway)
	require.NoError(t, h.Handle(ctx, cmd))

	assigned := store.get(t, pending.ID())
	assert.Equal(t, order.Assigned, assigned.Status())
	require.NotNil(t, assigned.AssignedTo())
	assert.True(t, assigned.AssignedTo().IsEqual(courier))
	gateway.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_NotPending(t *testing.T) {
	courier := kernel.NewUUID()
	claimed := newPendingOrder(t, kernel.NewUUID())
	require.NoError(t, claimed.Assign(kernel.NewUUID()))

	store := newStoreStub(claimed)
	gateway := new(MockOrderGateway) // must not be called

	cmd, err := commands.NewAssignCourierCommand(claimed.ID(), courier, false)
	require.NoError(t, err)

	h := commands.NewAssignCourierCommandHandler(store, gateway)
	err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	gateway.AssertExpectations(t)
}

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

func inDeliveryOrder(t *testing.T, client, courier kernel.UUID) *order.Order {
	t.Helper()
	o := negotiatingOrder(t, client, courier)
	require.NoError(t, o.ConfirmPrice(client))
	require.NoError(t, o.StartDelivery())
	return o
}

func TestEndOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	client := kernel.NewUUID()
	courier := kernel.NewUUID()
	o := inDeliveryOrder(t, client, courier)

	store := newStoreStub(o)
	gateway := new(MockOrderGateway)
	gateway.On("EndOrder", ctx, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewEndOrderCommand(o.ID(), courier)
	require.NoError(t, err)

	h := commands.NewEndOrderCommandHandler(store, gateway)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Delivered, store.get(t, o.ID()).Status())
	gateway.AssertExpectations(t)
}

func TestEndOrderCommandHandler_Handle_NotTheAssignee(t *testing.T) {
	client := kernel.NewUUID()
	courier := kernel.NewUUID()
	o := inDeliveryOrder(t, client, courier)

	store := newStoreStub(o)
	gateway := new(MockOrderGateway) // must not be called

	cmd, err := commands.NewEndOrderCommand(o.ID(), kernel.NewUUID())
	require.NoError(t, err)

	h := commands.NewEndOrderCommandHandler(store, gateway)
	err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, order.InDelivery, store.get(t, o.ID()).Status())
	gateway.AssertExpectations(t)
}

func TestEndOrderCommandHandler_Handle_NotInDelivery(t *testing.T) {
	courier := kernel.NewUUID()
	o := newPendingOrder(t, kernel.NewUUID())
	require.NoError(t, o.Assign(courier))

	store := newStoreStub(o)
	gateway := new(MockOrderGateway) // must not be called

	cmd, err := commands.NewEndOrderCommand(o.ID(), courier)
	require.NoError(t, err)

	h := commands.NewEndOrderCommandHandler(store, gateway)
	err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	gateway.AssertExpectations(t)
}

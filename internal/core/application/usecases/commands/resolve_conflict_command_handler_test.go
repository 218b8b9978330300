package commands_test

import (
	"testing"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/negotiation"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conflictedNegotiation(t *testing.T, orderID kernel.UUID) *negotiation.Negotiation {
	t.Helper()
	neg, err := negotiation.NewNegotiation(orderID)
	require.NoError(t, err)
	require.NoError(t, neg.Propose(newPrice(t, 3000)))
	require.NoError(t, neg.Confirm(newPrice(t, 2500)))
	return neg
}

func TestResolveConflictCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	client := kernel.NewUUID()
	courier := kernel.NewUUID()
	o := negotiatingOrder(t, client, courier)
	arbitrated := newPrice(t, 2750)

	neg := conflictedNegotiation(t, o.ID())
	require.NoError(t, neg.Arbitrate(arbitrated))

	store := newStoreStub(o)
	gateway := new(MockOrderGateway)
	gateway.On("ResolveConflict", ctx, o.ID(), arbitrated).Return(neg, nil).Once()

	cmd, err := commands.NewResolveConflictCommand(o.ID(), arbitrated)
	require.NoError(t, err)

	h := commands.NewResolveConflictCommandHandler(store, gateway)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.PriceConfirmed, store.get(t, o.ID()).Status())
	gateway.AssertExpectations(t)
}

func TestResolveConflictCommandHandler_Handle_OrderNotNegotiating(t *testing.T) {
	o := newPendingOrder(t, kernel.NewUUID())

	store := newStoreStub(o)
	gateway := new(MockOrderGateway) // must not be called

	cmd, err := commands.NewResolveConflictCommand(o.ID(), newPrice(t, 2750))
	require.NoError(t, err)

	h := commands.NewResolveConflictCommandHandler(store, gateway)
	err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	gateway.AssertExpectations(t)
}

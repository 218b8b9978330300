package negotiation_test

import (
	"testing"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/negotiation"
	"ordersync/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(t *testing.T, amount int64) kernel.Price {
	t.Helper()
	p, err := kernel.NewPrice(amount)
	require.NoError(t, err)
	return p
}

func TestNewNegotiation(t *testing.T) {
	t.Run("should start pending with no amounts", func(t *testing.T) {
		n, err := negotiation.NewNegotiation(kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.Equal(t, negotiation.StatusPending, n.ResolvedStatus())
		assert.Nil(t, n.ProposedByCourier())
		assert.Nil(t, n.ConfirmedByClient())
		assert.False(t, n.Arbitrated())
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		var invalid kernel.UUID

		n, err := negotiation.NewNegotiation(invalid)

		require.Error(t, err)
		assert.Nil(t, n)
	})
}

func TestNegotiation_Propose(t *testing.T) {
	t.Run("first proposal opens discussion", func(t *testing.T) {
		n, _ := negotiation.NewNegotiation(kernel.NewUUID())

		require.NoError(t, n.Propose(price(t, 5000)))

		assert.Equal(t, negotiation.StatusDiscussing, n.ResolvedStatus())
		require.NotNil(t, n.ProposedByCourier())
		assert.Equal(t, int64(5000), n.ProposedByCourier().Amount())
	})

	t.Run("revised proposal replaces outstanding amount", func(t *testing.T) {
		n, _ := negotiation.NewNegotiation(kernel.NewUUID())
		require.NoError(t, n.Propose(price(t, 5000)))

		require.NoError(t, n.Propose(price(t, 5500)))

		assert.Equal(t, int64(5500), n.ProposedByCourier().Amount())
		assert.Equal(t, negotiation.StatusDiscussing, n.ResolvedStatus())
	})

	t.Run("proposing on settled negotiation conflicts", func(t *testing.T) {
		n, _ := negotiation.NewNegotiation(kernel.NewUUID())
		require.NoError(t, n.Propose(price(t, 5000)))
		require.NoError(t, n.Confirm(price(t, 5000)))

		err := n.Propose(price(t, 6000))

		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestNegotiation_Confirm(t *testing.T) {
	t.Run("matching amount settles the price", func(t *testing.T) {
		n, _ := negotiation.NewNegotiation(kernel.NewUUID())
		require.NoError(t, n.Propose(price(t, 5000)))

		require.NoError(t, n.Confirm(price(t, 5000)))

		assert.Equal(t, negotiation.StatusAccepted, n.ResolvedStatus())
		assert.False(t, n.NeedsClientConfirmation())
	})

	t.Run("mismatching amount records a conflict", func(t *testing.T) {
		n, _ := negotiation.NewNegotiation(kernel.NewUUID())
		require.NoError(t, n.Propose(price(t, 5000)))

		require.NoError(t, n.Confirm(price(t, 4500)))

		assert.Equal(t, negotiation.StatusConflicted, n.ResolvedStatus())
		assert.Equal(t, int64(5000), n.ProposedByCourier().Amount())
		assert.Equal(t, int64(4500), n.ConfirmedByClient().Amount())
	})

	t.Run("confirming without proposal conflicts", func(t *testing.T) {
		n, _ := negotiation.NewNegotiation(kernel.NewUUID())

		err := n.Confirm(price(t, 5000))

		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestNegotiation_Arbitrate(t *testing.T) {
	t.Run("arbitration overwrites both sides and settles", func(t *testing.T) {
		n, _ := negotiation.NewNegotiation(kernel.NewUUID())
		require.NoError(t, n.Propose(price(t, 5000)))
		require.NoError(t, n.Confirm(price(t, 4500)))

		require.NoError(t, n.Arbitrate(price(t, 4800)))

		assert.Equal(t, negotiation.StatusAccepted, n.ResolvedStatus())
		assert.Equal(t, int64(4800), n.ProposedByCourier().Amount())
		assert.Equal(t, int64(4800), n.ConfirmedByClient().Amount())
		assert.True(t, n.Arbitrated())
		assert.False(t, n.NeedsClientConfirmation())
	})

	t.Run("arbitrating without conflict conflicts", func(t *testing.T) {
		n, _ := negotiation.NewNegotiation(kernel.NewUUID())
		require.NoError(t, n.Propose(price(t, 5000)))

		err := n.Arbitrate(price(t, 4800))

		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestNegotiation_NeedsClientConfirmation(t *testing.T) {
	t.Run("true before any proposal", func(t *testing.T) {
		n, _ := negotiation.NewNegotiation(kernel.NewUUID())
		assert.True(t, n.NeedsClientConfirmation())
	})

	t.Run("true while proposal is outstanding", func(t *testing.T) {
		n, _ := negotiation.NewNegotiation(kernel.NewUUID())
		require.NoError(t, n.Propose(price(t, 5000)))
		assert.True(t, n.NeedsClientConfirmation())
	})

	t.Run("true while amounts disagree", func(t *testing.T) {
		n, _ := negotiation.NewNegotiation(kernel.NewUUID())
		require.NoError(t, n.Propose(price(t, 5000)))
		require.NoError(t, n.Confirm(price(t, 4500)))
		assert.True(t, n.NeedsClientConfirmation())
	})

	t.Run("false for arbitrated wire status", func(t *testing.T) {
		amount := price(t, 4800)
		n, err := negotiation.RestoreNegotiation(
			kernel.NewUUID(), &amount, &amount, negotiation.StatusArbitrated, true)
		require.NoError(t, err)
		assert.False(t, n.NeedsClientConfirmation())
	})
}

func TestResolvedStatusFromString(t *testing.T) {
	for _, name := range []string{"EN_ATTENTE", "EN_DISCUSSION", "PRIX_VALIDE", "EN_CONFLIT", "ARBITRE"} {
		status, err := negotiation.ResolvedStatusFromString(name)
		require.NoError(t, err)
		assert.Equal(t, name, status.String())
	}

	_, err := negotiation.ResolvedStatusFromString("INVALID")
	require.Error(t, err)
}

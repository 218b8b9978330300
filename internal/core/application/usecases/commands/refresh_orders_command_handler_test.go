package commands_test

import (
	"context"
	"errors"
	"testing"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetcherStub struct {
	fetches      int
	forceFetches int
	err          error
}

func (f *fetcherStub) Fetch(_ context.Context, _ syncstore.Scope) (syncstore.Snapshot, error) {
	f.fetches++
	return syncstore.Snapshot{}, f.err
}

func (f *fetcherStub) ForceFetch(_ context.Context, _ syncstore.Scope) (syncstore.Snapshot, error) {
	f.forceFetches++
	return syncstore.Snapshot{}, f.err
}

func TestRefreshOrdersCommandHandler_Handle(t *testing.T) {
	t.Run("conditional refresh consults the staleness rule", func(t *testing.T) {
		fetcher := &fetcherStub{}
		h := commands.NewRefreshOrdersCommandHandler(fetcher)

		cmd := commands.NewRefreshOrdersCommand(syncstore.ScopeAll, false)
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, 1, fetcher.fetches)
		assert.Equal(t, 0, fetcher.forceFetches)
	})

	t.Run("forced refresh bypasses the staleness rule", func(t *testing.T) {
		fetcher := &fetcherStub{}
		h := commands.NewRefreshOrdersCommandHandler(fetcher)

		cmd := commands.NewRefreshOrdersCommand(syncstore.ScopeActor, true)
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, 0, fetcher.fetches)
		assert.Equal(t, 1, fetcher.forceFetches)
	})

	t.Run("fetch failure is surfaced", func(t *testing.T) {
		fetcher := &fetcherStub{err: errors.New("gateway unreachable")}
		h := commands.NewRefreshOrdersCommandHandler(fetcher)

		cmd := commands.NewRefreshOrdersCommand(syncstore.ScopeAll, true)

		require.Error(t, h.Handle(t.Context(), cmd))
	})

	t.Run("zero-value command fails validation", func(t *testing.T) {
		var cmd commands.RefreshOrdersCommand
		h := commands.NewRefreshOrdersCommandHandler(&fetcherStub{})

		require.Error(t, h.Handle(t.Context(), cmd))
	})
}

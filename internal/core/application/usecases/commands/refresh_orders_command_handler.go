package commands

import (
	"context"
)

// RefreshOrdersCommandHandler triggers a reconciling fetch. A fetch failure is
// returned to the caller but is never destructive: the store keeps serving the
// last good cache alongside the recorded error.
type RefreshOrdersCommandHandler struct {
	store Fetcher
}

// NewRefreshOrdersCommandHandler creates a handler for refresh operations.
func NewRefreshOrdersCommandHandler(store Fetcher) RefreshOrdersCommandHandler {
	return RefreshOrdersCommandHandler{
		store: store,
	}
}

// Handle processes the refresh command.
func (h RefreshOrdersCommandHandler) Handle(ctx context.Context, command RefreshOrdersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if command.Force() {
		_, err := h.store.ForceFetch(ctx, command.Scope())
		return err
	}

	_, err := h.store.Fetch(ctx, command.Scope())
	return err
}

package commands

import (
	"errors"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/pkg/guard"
)

var ErrRefreshOrdersCommandIsNotConstructed = errors.New(
	"RefreshOrdersCommand must be created via NewRefreshOrdersCommand constructor",
)

// RefreshOrdersCommand reconciles the cached order set with the remote
// authority. By default the store's staleness rule decides whether a fetch is
// actually issued; with force set the fetch is unconditional, which is what
// pull-to-refresh style interactions use.
type RefreshOrdersCommand struct {
	scope syncstore.Scope
	force bool

	guard guard.ConstructorGuard
}

// NewRefreshOrdersCommand creates a command to refresh the cached order set.
func NewRefreshOrdersCommand(scope syncstore.Scope, force bool) RefreshOrdersCommand {
	return RefreshOrdersCommand{
		scope: scope,
		force: force,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *RefreshOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRefreshOrdersCommandIsNotConstructed)
}

// Scope returns the fetch scope.
func (c RefreshOrdersCommand) Scope() syncstore.Scope {
	return c.scope
}

// Force reports whether the fetch bypasses the staleness rule.
func (c RefreshOrdersCommand) Force() bool {
	return c.force
}

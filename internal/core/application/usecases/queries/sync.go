package queries

import (
	"context"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/domain/services"
)

// SnapshotReader is the synchronization-store surface queries read from.
// A read first lets the store apply its staleness rule, then derives the
// requested view from the cache.
type SnapshotReader interface {
	Fetch(ctx context.Context, scope syncstore.Scope) (syncstore.Snapshot, error)
	Projection(role services.Role, actorID kernel.UUID, tab services.Tab) ([]services.ViewRow, error)
	GetOrderByID(id kernel.UUID) (*order.Order, bool)
}

// scopeFor maps a viewing role to its fetch scope: admin and operator pull
// the full set, courier and client pull the actor-relevant slice.
func scopeFor(role services.Role) syncstore.Scope {
	if role == services.RoleAdmin || role == services.RoleOperator {
		return syncstore.ScopeAll
	}
	return syncstore.ScopeActor
}

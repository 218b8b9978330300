package commands

import (
	"context"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/domain/model/kernel"
)

// Mutator is the synchronization-store surface command handlers use to apply
// an optimistic order transition backed by a gateway call. The store owns the
// rollback and single-in-flight guarantees; handlers only describe the
// transition.
type Mutator interface {
	Mutate(ctx context.Context, orderID kernel.UUID, m syncstore.Mutation) error
}

// Fetcher reconciles the cached order set with the remote authority.
type Fetcher interface {
	Fetch(ctx context.Context, scope syncstore.Scope) (syncstore.Snapshot, error)
	ForceFetch(ctx context.Context, scope syncstore.Scope) (syncstore.Snapshot, error)
}

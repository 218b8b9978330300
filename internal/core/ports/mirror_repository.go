package ports

import (
	"context"

	"ordersync/internal/core/domain/model/order"
)

// MirrorRepository persists the reconciled order set so the mirror survives
// restarts and can serve a warm snapshot before the first fetch completes.
//
// The mirror is a read model, not an authority: rows are replaced wholesale on
// each reconciliation and never edited in place.
type MirrorRepository interface {
	// ReplaceAll atomically replaces the persisted mirror with the given set.
	ReplaceAll(ctx context.Context, orders []*order.Order) error

	// LoadAll returns the persisted mirror, possibly empty.
	LoadAll(ctx context.Context) ([]*order.Order, error)
}

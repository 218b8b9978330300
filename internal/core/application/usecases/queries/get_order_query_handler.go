package queries

import (
	"context"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/domain/services"
	"ordersync/internal/pkg/errs"
)

// GetOrderQueryHandler retrieves a single order from the synchronization
// store, letting the staleness rule decide whether to reconcile first.
type GetOrderQueryHandler struct {
	store SnapshotReader
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(store SnapshotReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{store: store}
}

// Handle executes the query. Returns a not-found error when the order is
// absent from the reconciled cache.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	snap, err := h.store.Fetch(ctx, syncstore.ScopeAll)
	if err != nil && len(snap.Orders) == 0 {
		return GetOrderQueryResponse{}, err
	}

	o, ok := h.store.GetOrderByID(query.OrderID())
	if !ok {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError(
			"order", query.OrderID().String())
	}

	details := o.Details()
	return GetOrderQueryResponse{
		OrderID:         o.ID(),
		Reference:       services.Reference(o.ID()),
		Status:          o.Status().String(),
		ServiceType:     details.ServiceType,
		ArticleType:     details.ArticleType,
		TransportMode:   details.TransportMode,
		DeliveryType:    details.DeliveryType,
		Weight:          details.Weight,
		PickupAddress:   details.PickupAddress,
		DeliveryAddress: details.DeliveryAddress,
		EstimatedPrice:  details.EstimatedPrice,
		AssignedTo:      o.AssignedTo(),
		CreatedBy:       o.CreatedBy(),
		CreatedAt:       services.FormatDate(o.CreatedAt()),
		UpdatedAt:       services.FormatDate(o.UpdatedAt()),
	}, nil
}

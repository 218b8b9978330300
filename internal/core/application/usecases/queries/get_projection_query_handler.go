package queries

import (
	"context"
)

// GetProjectionQueryHandler derives a role's tabbed view from the
// synchronization store. The store decides whether a reconciling fetch is
// needed first; reads stay cache-backed, so a fetch failure over a warm cache
// degrades to serving the last good data instead of failing the query.
type GetProjectionQueryHandler struct {
	store SnapshotReader
}

// NewGetProjectionQueryHandler creates a handler for projection queries.
func NewGetProjectionQueryHandler(store SnapshotReader) GetProjectionQueryHandler {
	return GetProjectionQueryHandler{store: store}
}

// Handle executes the projection query.
func (h GetProjectionQueryHandler) Handle(
	ctx context.Context,
	query GetProjectionQuery,
) ([]GetProjectionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snap, err := h.store.Fetch(ctx, scopeFor(query.Role()))
	if err != nil && len(snap.Orders) == 0 {
		return nil, err
	}

	rows, err := h.store.Projection(query.Role(), query.ActorID(), query.Tab())
	if err != nil {
		return nil, err
	}

	responses := make([]GetProjectionQueryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, GetProjectionQueryResponse{
			OrderID:     row.OrderID,
			Reference:   row.Reference,
			Status:      row.Status.String(),
			Route:       row.Route,
			Weight:      row.Weight,
			AssignedTo:  row.AssignedTo,
			CreatedBy:   row.CreatedBy,
			DisplayDate: row.DisplayDate,
		})
	}

	return responses, nil
}

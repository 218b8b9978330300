package queries

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/services"
	"ordersync/internal/pkg/guard"
)

var ErrGetProjectionQueryIsNotConstructed = errors.New(
	"GetProjectionQuery must be created via NewGetProjectionQuery constructor",
)

// GetProjectionQuery retrieves the role- and tab-scoped view of the order set.
// Admin and operator scopes see everything; courier and client scopes are
// filtered to the acting party, so those roles must carry an actor id.
//
// Example:
//
//	query, err := NewGetProjectionQuery(services.RoleCourier, courierID, services.TabNew)
//	if err != nil {
//	    return fmt.Errorf("invalid projection request: %w", err)
//	}
//
//	handler := NewGetProjectionQueryHandler(store)
//	rows, err := handler.Handle(ctx, query)
type GetProjectionQuery struct { //nolint:recvcheck //using for validation
	role    services.Role
	actorID kernel.UUID
	tab     services.Tab

	guard guard.ConstructorGuard
}

// NewGetProjectionQuery creates a query for one role's view of one tab.
// The actor id may be zero for admin and operator scopes.
func NewGetProjectionQuery(
	role services.Role, actorID kernel.UUID, tab services.Tab,
) (GetProjectionQuery, error) {
	if err := errors.Join(
		role.Validate(),
		tab.Validate(),
	); err != nil {
		return GetProjectionQuery{}, err
	}

	return GetProjectionQuery{
		role:    role,
		actorID: actorID,
		tab:     tab,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProjectionQuery) Validate() error {
	return q.guard.Validate(ErrGetProjectionQueryIsNotConstructed)
}

// Role returns the viewing role.
func (q GetProjectionQuery) Role() services.Role {
	return q.role
}

// ActorID returns the acting party's id, zero for admin and operator scopes.
func (q GetProjectionQuery) ActorID() kernel.UUID {
	return q.actorID
}

// Tab returns the requested tab.
func (q GetProjectionQuery) Tab() services.Tab {
	return q.tab
}

// GetProjectionQueryResponse is one row of the projected view, ready for
// display: wire status name, human reference and localized date.
type GetProjectionQueryResponse struct {
	OrderID     kernel.UUID
	Reference   string
	Status      string
	Route       string
	Weight      int
	AssignedTo  *kernel.UUID
	CreatedBy   kernel.UUID
	DisplayDate string
}

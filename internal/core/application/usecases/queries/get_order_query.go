package queries

import (
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order from the cached set.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order by id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's id.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse carries one order's display-ready state.
type GetOrderQueryResponse struct {
	OrderID         kernel.UUID
	Reference       string
	Status          string
	ServiceType     string
	ArticleType     string
	TransportMode   string
	DeliveryType    string
	Weight          int
	PickupAddress   string
	DeliveryAddress string
	EstimatedPrice  *kernel.Price
	AssignedTo      *kernel.UUID
	CreatedBy       kernel.UUID
	CreatedAt       string
	UpdatedAt       string
}

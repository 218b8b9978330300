// Package mirrorrepo persists the reconciled order snapshot to PostgreSQL.
// The mirror is not an authority: it only warm-starts the cache after a
// restart, so the engine can render the last known state before the first
// reconciling fetch completes.
package mirrorrepo

import (
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for one mirrored order. Statuses are stored
// under their wire names so rows stay readable in psql.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;index"`
	AssignedTo      *uuid.UUID `gorm:"type:uuid;index"`
	Status          string     `gorm:"index"`
	ServiceType     string
	ArticleType     string
	TransportMode   string
	DeliveryType    string
	Weight          int
	PickupAddress   string
	DeliveryAddress string
	EstimatedPrice  *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides GORM's default naming to use "order_mirror".
func (OrderDTO) TableName() string {
	return "order_mirror"
}

// fromDomain converts an order aggregate to its database row.
func fromDomain(o *order.Order) OrderDTO {
	var assignedTo *uuid.UUID
	if id := o.AssignedTo(); id != nil {
		raw := id.Bytes()
		assignedTo = &raw
	}

	details := o.Details()
	var estimatedPrice *int64
	if details.EstimatedPrice != nil {
		amount := details.EstimatedPrice.Amount()
		estimatedPrice = &amount
	}

	return OrderDTO{
		ID:              o.ID().Bytes(),
		CreatedBy:       o.CreatedBy().Bytes(),
		AssignedTo:      assignedTo,
		Status:          o.Status().String(),
		ServiceType:     details.ServiceType,
		ArticleType:     details.ArticleType,
		TransportMode:   details.TransportMode,
		DeliveryType:    details.DeliveryType,
		Weight:          details.Weight,
		PickupAddress:   details.PickupAddress,
		DeliveryAddress: details.DeliveryAddress,
		EstimatedPrice:  estimatedPrice,
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

// toDomain reconstructs the order aggregate from its database row.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var assignedTo *kernel.UUID
	if dto.AssignedTo != nil {
		courierID, courierErr := kernel.UUIDFromBytes((*dto.AssignedTo)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		assignedTo = &courierID
	}

	details := order.Details{
		ServiceType:     dto.ServiceType,
		ArticleType:     dto.ArticleType,
		TransportMode:   dto.TransportMode,
		DeliveryType:    dto.DeliveryType,
		Weight:          dto.Weight,
		PickupAddress:   dto.PickupAddress,
		DeliveryAddress: dto.DeliveryAddress,
	}
	if dto.EstimatedPrice != nil {
		price, priceErr := kernel.NewPrice(*dto.EstimatedPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		details.EstimatedPrice = &price
	}

	return order.RestoreOrder(
		id, createdBy, details, status, assignedTo, dto.CreatedAt, dto.UpdatedAt)
}

// Package gatewayhttp implements the order gateway against the remote
// authority's JSON API. Every response is mapped onto domain aggregates and
// every failure onto a categorized error, so the core never sees HTTP.
package gatewayhttp

import (
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/negotiation"
	"ordersync/internal/core/domain/model/order"
)

// orderDTO mirrors the authority's order representation on the wire. Statuses
// travel under their French wire names and are parsed into domain statuses.
type orderDTO struct {
	ID              string    `json:"id"`
	CreatedBy       string    `json:"created_by"`
	Status          string    `json:"status"`
	AssignedTo      *string   `json:"assigned_to,omitempty"`
	ServiceType     string    `json:"service_type"`
	ArticleType     string    `json:"article_type"`
	TransportMode   string    `json:"transport_mode"`
	DeliveryType    string    `json:"delivery_type"`
	Weight          int       `json:"weight"`
	PickupAddress   string    `json:"pickup_address"`
	DeliveryAddress string    `json:"delivery_address"`
	EstimatedPrice  *int64    `json:"estimated_price,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// negotiationDTO mirrors the authority's negotiation representation.
type negotiationDTO struct {
	OrderID           string `json:"order_id"`
	ProposedByCourier *int64 `json:"proposed_by_courier,omitempty"`
	ConfirmedByClient *int64 `json:"confirmed_by_client,omitempty"`
	ResolvedStatus    string `json:"resolved_status"`
	Arbitrated        bool   `json:"arbitrated"`
}

// assignRequest carries a manual or acknowledged courier assignment.
type assignRequest struct {
	CourierID string `json:"courier_id"`
	Auto      bool   `json:"auto"`
}

// amountRequest carries a bare negotiation amount.
type amountRequest struct {
	Amount int64 `json:"amount"`
}

// confirmRequest carries the client's confirmation with the payment channel.
type confirmRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

// toDomain reconstructs the order aggregate from its wire representation.
func (dto orderDTO) toDomain() (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromString(dto.CreatedBy)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var assignedTo *kernel.UUID
	if dto.AssignedTo != nil {
		courierID, courierErr := kernel.UUIDFromString(*dto.AssignedTo)
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

// toDomain reconstructs the negotiation from its wire representation.
func (dto negotiationDTO) toDomain() (*negotiation.Negotiation, error) {
	orderID, err := kernel.UUIDFromString(dto.OrderID)
	if err != nil {
		return nil, err
	}

	resolvedStatus, err := negotiation.ResolvedStatusFromString(dto.ResolvedStatus)
	if err != nil {
		return nil, err
	}

	var proposed *kernel.Price
	if dto.ProposedByCourier != nil {
		price, priceErr := kernel.NewPrice(*dto.ProposedByCourier)
		if priceErr != nil {
			return nil, priceErr
		}
		proposed = &price
	}

	var confirmed *kernel.Price
	if dto.ConfirmedByClient != nil {
		price, priceErr := kernel.NewPrice(*dto.ConfirmedByClient)
		if priceErr != nil {
			return nil, priceErr
		}
		confirmed = &price
	}

	return negotiation.RestoreNegotiation(
		orderID, proposed, confirmed, resolvedStatus, dto.Arbitrated)
}

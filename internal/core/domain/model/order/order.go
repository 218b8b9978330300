package order

import (
	"errors"
	"fmt"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Details carries the descriptive attributes of a delivery order. They are set
// at creation and never change through the lifecycle.
type Details struct {
	ServiceType     string
	ArticleType     string
	TransportMode   string
	DeliveryType    string
	Weight          int
	PickupAddress   string
	DeliveryAddress string
	EstimatedPrice  *kernel.Price
}

// Order is the aggregate root for a delivery order mirrored from the remote
// authority. It manages the lifecycle from creation through claim, price
// negotiation and delivery to a terminal state.
//
// Order maintains these invariants:
//   - assignedTo is set if and only if the status is at or beyond Assigned,
//     except a Failed order that was assigned before rejection, where the
//     assignee is retained for audit
//   - status transitions follow the rules enforced by Status
//   - orders are never deleted, only terminated (Delivered or Failed)
//
// Orders use private fields to ensure encapsulation; all mutation goes through
// validated transition methods.
type Order struct {
	id         kernel.UUID
	createdBy  kernel.UUID
	details    Details
	status     Status
	assignedTo *kernel.UUID
	createdAt  time.Time
	updatedAt  time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - createdBy: the client actor who placed the order
//   - details: descriptive attributes (weight must be positive, both
//     addresses are required)
//
// Returns a validation error if any parameter is invalid.
func NewOrder(id kernel.UUID, createdBy kernel.UUID, details Details) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCreatedBy(createdBy),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from authoritative data, for example a
// gateway response or a mirror row. Unlike NewOrder it accepts any valid
// status, but still enforces consistency between status and assignee.
func RestoreOrder(
	id kernel.UUID,
	createdBy kernel.UUID,
	details Details,
	status Status,
	assignedTo *kernel.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCreatedBy(createdBy),
		o.setDetails(details),
		status.Validate(),
		status.ValidateCanHaveAssignee(assignedTo != nil),
	); err != nil {
		return nil, err
	}

	o.status = status
	if assignedTo != nil {
		if err := assignedTo.Validate(); err != nil {
			return nil, err
		}
		assignee := *assignedTo
		o.assignedTo = &assignee
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CreatedBy returns the id of the client actor who placed the order.
func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

// Details returns the descriptive attributes of the order.
func (o *Order) Details() Details {
	return o.details
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// AssignedTo returns the assigned courier's id, or nil if unassigned.
func (o *Order) AssignedTo() *kernel.UUID {
	return o.assignedTo
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Clone returns an independent deep copy of the order. The synchronization
// store snapshots orders before optimistic mutation and hands copies to
// readers, so aliasing the canonical instance is never allowed.
func (o *Order) Clone() *Order {
	clone := *o
	if o.assignedTo != nil {
		assignee := *o.assignedTo
		clone.assignedTo = &assignee
	}
	if o.details.EstimatedPrice != nil {
		price := *o.details.EstimatedPrice
		clone.details.EstimatedPrice = &price
	}
	return &clone
}

// Assign assigns the order to a courier and moves it to Assigned. Used both
// for a courier claiming a pending order and for dispatcher-driven assignment.
//
// Returns a conflict error if the order is no longer pending.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assignedTo = &courierID
	o.touch()
	return nil
}

// Reject terminates the order with Failed status. An assignee recorded before
// the rejection is retained for audit but is no longer actionable.
func (o *Order) Reject() error {
	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// OpenNegotiation moves the order to Negotiating on a price proposal.
// Only the assigned courier may propose a price.
func (o *Order) OpenNegotiation(courierID kernel.UUID) error {
	if err := o.validateAssignee("propose price", courierID); err != nil {
		return err
	}

	newStatus, err := o.status.OpenNegotiation()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// ConfirmPrice moves the order to PriceConfirmed once the negotiation is
// accepted. Only the creating client may confirm.
func (o *Order) ConfirmPrice(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	if !o.createdBy.IsEqual(clientID) {
		return errs.NewAuthorizationErrorWithCause("confirm price",
			fmt.Errorf("actor %s did not create order %s", clientID, o.id))
	}

	newStatus, err := o.status.ConfirmPrice()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// ApplyArbitration moves the order to PriceConfirmed after an admin settled a
// conflicted negotiation. Arbitration is an admin action, so the creating-client
// check of ConfirmPrice does not apply.
func (o *Order) ApplyArbitration() error {
	newStatus, err := o.status.ConfirmPrice()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// StartDelivery moves the order to InDelivery. This transition is driven by
// the remote authority's dispatch acknowledgement; the mirror only applies it.
func (o *Order) StartDelivery() error {
	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Complete terminates the order with Delivered status.
// Only the assigned courier may end the order.
func (o *Order) Complete(courierID kernel.UUID) error {
	if err := o.validateAssignee("end order", courierID); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

func (o *Order) validateAssignee(operation string, courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.assignedTo == nil || !o.assignedTo.IsEqual(courierID) {
		return errs.NewAuthorizationErrorWithCause(operation,
			fmt.Errorf("actor %s is not assigned to order %s", courierID, o.id))
	}
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCreatedBy validates and sets the creating actor.
func (o *Order) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}
	o.createdBy = createdBy
	return nil
}

// setDetails validates and sets the descriptive attributes.
func (o *Order) setDetails(details Details) error {
	if details.Weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%d is not greater than 0", details.Weight))
	}
	if details.PickupAddress == "" {
		return errs.NewValueIsRequiredError("pickup address")
	}
	if details.DeliveryAddress == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	if details.EstimatedPrice != nil {
		if err := details.EstimatedPrice.Validate(); err != nil {
			return err
		}
		price := *details.EstimatedPrice
		details.EstimatedPrice = &price
	}

	o.details = details
	return nil
}

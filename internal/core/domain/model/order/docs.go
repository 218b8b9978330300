// Package order provides the domain model for delivery orders mirrored from
// the remote authority. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root managing identity, attributes and lifecycle
//   - Status: A state machine enforcing valid order status transitions
//   - Details: The immutable descriptive attributes of an order
//
// Key business rules:
//   - Orders start Pending and advance through Assigned, Negotiating,
//     PriceConfirmed and InDelivery to Delivered
//   - Rejection from Pending or Assigned terminates an order as Failed
//   - An assignee is recorded exactly when the order is claimed, and survives
//     a subsequent failure for audit purposes
//   - Only the assigned courier may propose a price or end the order; only the
//     creating client may confirm a price
//
// The package is pure data plus transition rules and performs no I/O.
package order

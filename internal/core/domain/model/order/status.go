package order

import (
	"fmt"

	"ordersync/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions to ensure orders follow the correct
// business workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> Negotiating ──> PriceConfirmed ──> InDelivery ──> Delivered
//	   │            │
//	   └────────────┴──> Failed
//
// Delivered and Failed are terminal. The string form of each status is the
// wire name used by the remote authority (EN_ATTENTE, ASSIGNEE, ...).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders in this status are waiting to be claimed by a courier.
	Pending

	// Assigned indicates the order has been claimed by or assigned to a courier.
	Assigned

	// Negotiating indicates the assigned courier has proposed a price and the
	// client has not yet agreed.
	Negotiating

	// PriceConfirmed indicates courier and client agree on the price
	// (possibly after admin arbitration) and the order awaits dispatch.
	PriceConfirmed

	// InDelivery indicates dispatch was acknowledged by the remote authority
	// and the courier is under way.
	InDelivery

	// Delivered indicates the order has been successfully delivered.
	// This is a final state with no further transitions allowed.
	Delivered

	// Failed indicates the order was rejected before delivery started.
	// This is a final state. An assignee recorded before the failure is
	// retained for audit.
	Failed
)

// getStatusStrings returns the wire names for all Status values, as reported
// by the remote authority.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "EN_ATTENTE",
		Assigned:       "ASSIGNEE",
		Negotiating:    "EN_DISCUSSION",
		PriceConfirmed: "PRIX_VALIDE",
		InDelivery:     "EN_LIVRAISON",
		Delivered:      "LIVREE",
		Failed:         "ECHEC",
	}
}

// getValidStatusStrings returns only valid Status values to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "EN_ATTENTE",
		Assigned:       "ASSIGNEE",
		Negotiating:    "EN_DISCUSSION",
		PriceConfirmed: "PRIX_VALIDE",
		InDelivery:     "EN_LIVRAISON",
		Delivered:      "LIVREE",
		Failed:         "ECHEC",
	}
}

// StatusFromString parses a wire status name into a Status.
// Returns an error for unknown names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
// Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// ValidateCanHaveAssignee validates the consistency between order status and
// courier assignment.
//
// Business rules:
//   - Pending orders must not have an assignee
//   - Assigned, Negotiating, PriceConfirmed, InDelivery and Delivered orders
//     must have an assignee
//   - Failed orders may have either: an assignee recorded before the failure
//     is retained for audit
func (s Status) ValidateCanHaveAssignee(assignee bool) error {
	if s == Failed {
		return nil
	}

	if assignee && (s == Pending || s == Unknown) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have an assignee", s))
	}

	if !assignee && s != Pending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no assignee", s))
	}

	return nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned (claim by a courier, or dispatcher assignment)
//
// A failed precondition yields a conflict: the transition was already taken
// by another party or the order moved on.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return 0, errs.NewConflictErrorWithCause("assign",
			fmt.Errorf("%s is not a valid status to assign", s))
	}
	return Assigned, nil
}

// Reject transitions the status to Failed.
//
// Valid transitions:
//   - Pending -> Failed
//   - Assigned -> Failed
//
// Terminal and negotiating orders cannot be rejected.
func (s Status) Reject() (Status, error) {
	if s != Pending && s != Assigned {
		return 0, errs.NewConflictErrorWithCause("reject",
			fmt.Errorf("%s is not a valid status to reject", s))
	}
	return Failed, nil
}

// OpenNegotiation transitions the status to Negotiating.
//
// Valid transitions:
//   - Assigned -> Negotiating (first price proposal by the assigned courier)
//   - Negotiating -> Negotiating (revised proposal)
func (s Status) OpenNegotiation() (Status, error) {
	if s != Assigned && s != Negotiating {
		return 0, errs.NewConflictErrorWithCause("propose price",
			fmt.Errorf("%s is not a valid status to open negotiation", s))
	}
	return Negotiating, nil
}

// ConfirmPrice transitions the status to PriceConfirmed.
//
// Valid transitions:
//   - Negotiating -> PriceConfirmed (client accepted, or admin arbitrated)
func (s Status) ConfirmPrice() (Status, error) {
	if s != Negotiating {
		return 0, errs.NewConflictErrorWithCause("confirm price",
			fmt.Errorf("%s is not a valid status to confirm a price", s))
	}
	return PriceConfirmed, nil
}

// StartDelivery transitions the status to InDelivery.
//
// Valid transitions:
//   - PriceConfirmed -> InDelivery (dispatch acknowledged by the authority)
func (s Status) StartDelivery() (Status, error) {
	if s != PriceConfirmed {
		return 0, errs.NewConflictErrorWithCause("start delivery",
			fmt.Errorf("%s is not a valid status to start delivery", s))
	}
	return InDelivery, nil
}

// Complete transitions the status to Delivered.
//
// Valid transitions:
//   - InDelivery -> Delivered (assigned courier ended the order)
func (s Status) Complete() (Status, error) {
	if s != InDelivery {
		return 0, errs.NewConflictErrorWithCause("end order",
			fmt.Errorf("%s is not a valid status to complete", s))
	}
	return Delivered, nil
}

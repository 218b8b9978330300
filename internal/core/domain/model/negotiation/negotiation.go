package negotiation

import (
	"errors"
	"fmt"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/errs"
)

var (
	// ErrNegotiationIsNotConstructed is returned when a Negotiation instance was
	// not created through NewNegotiation or RestoreNegotiation.
	ErrNegotiationIsNotConstructed = errors.New(
		"Negotiation must be created via NewNegotiation or RestoreNegotiation")
)

// Negotiation is the price-agreement sub-record attached 1:1 to an order once
// a courier has claimed it. It tracks the courier's proposal, the client's
// confirmation and the resolution state.
//
// A Negotiation is created implicitly on the first price proposal. It is
// fetched lazily from the remote authority and is never authoritative at the
// mirror until reconciled.
type Negotiation struct {
	orderID           kernel.UUID
	proposedByCourier *kernel.Price
	confirmedByClient *kernel.Price
	resolvedStatus    ResolvedStatus
	arbitrated        bool

	isConstructed bool
}

// NewNegotiation creates an empty negotiation for an order, in Pending state
// with no amounts recorded.
func NewNegotiation(orderID kernel.UUID) (*Negotiation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return &Negotiation{
		orderID:        orderID,
		resolvedStatus: StatusPending,
		isConstructed:  true,
	}, nil
}

// RestoreNegotiation reconstructs a negotiation from authoritative data.
func RestoreNegotiation(
	orderID kernel.UUID,
	proposedByCourier *kernel.Price,
	confirmedByClient *kernel.Price,
	resolvedStatus ResolvedStatus,
	arbitrated bool,
) (*Negotiation, error) {
	if err := errors.Join(
		orderID.Validate(),
		resolvedStatus.Validate(),
	); err != nil {
		return nil, err
	}

	n := &Negotiation{
		orderID:        orderID,
		resolvedStatus: resolvedStatus,
		arbitrated:     arbitrated,
		isConstructed:  true,
	}

	if proposedByCourier != nil {
		if err := proposedByCourier.Validate(); err != nil {
			return nil, err
		}
		proposed := *proposedByCourier
		n.proposedByCourier = &proposed
	}
	if confirmedByClient != nil {
		if err := confirmedByClient.Validate(); err != nil {
			return nil, err
		}
		confirmed := *confirmedByClient
		n.confirmedByClient = &confirmed
	}

	return n, nil
}

// Validate ensures the Negotiation instance was properly constructed.
func (n *Negotiation) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNegotiationIsNotConstructed
	}
	return nil
}

// OrderID returns the id of the order this negotiation belongs to.
func (n *Negotiation) OrderID() kernel.UUID {
	return n.orderID
}

// ProposedByCourier returns the courier's proposed amount, or nil if none.
func (n *Negotiation) ProposedByCourier() *kernel.Price {
	return n.proposedByCourier
}

// ConfirmedByClient returns the client's confirmed amount, or nil if none.
func (n *Negotiation) ConfirmedByClient() *kernel.Price {
	return n.confirmedByClient
}

// ResolvedStatus returns the current resolution state.
func (n *Negotiation) ResolvedStatus() ResolvedStatus {
	return n.resolvedStatus
}

// Arbitrated reports whether the agreed price was forced by an admin override.
func (n *Negotiation) Arbitrated() bool {
	return n.arbitrated
}

// Propose records the courier's price proposal and moves the negotiation to
// Discussing. Re-proposing while discussing replaces the outstanding amount;
// proposing on a settled negotiation is a conflict.
func (n *Negotiation) Propose(amount kernel.Price) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	if n.resolvedStatus != StatusPending && n.resolvedStatus != StatusDiscussing {
		return errs.NewConflictErrorWithCause("propose price",
			fmt.Errorf("negotiation for order %s is already %s", n.orderID, n.resolvedStatus))
	}

	n.proposedByCourier = &amount
	n.resolvedStatus = StatusDiscussing
	return nil
}

// Confirm records the client's confirmation. If the amount equals the
// courier's proposal the negotiation is Accepted; otherwise it is Conflicted
// and an admin must resolve it.
func (n *Negotiation) Confirm(amount kernel.Price) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	if n.resolvedStatus != StatusDiscussing {
		return errs.NewConflictErrorWithCause("confirm price",
			fmt.Errorf("negotiation for order %s has no outstanding proposal", n.orderID))
	}

	n.confirmedByClient = &amount
	if n.proposedByCourier != nil && n.proposedByCourier.IsEqual(amount) {
		n.resolvedStatus = StatusAccepted
	} else {
		n.resolvedStatus = StatusConflicted
	}
	return nil
}

// Arbitrate applies an admin override: both sides are force-set to the
// arbitrated amount and the negotiation lands on Accepted with the
// arbitration recorded.
func (n *Negotiation) Arbitrate(amount kernel.Price) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	if n.resolvedStatus != StatusConflicted {
		return errs.NewConflictErrorWithCause("resolve conflict",
			fmt.Errorf("negotiation for order %s is not in conflict", n.orderID))
	}

	proposed := amount
	confirmed := amount
	n.proposedByCourier = &proposed
	n.confirmedByClient = &confirmed
	n.resolvedStatus = StatusAccepted
	n.arbitrated = true
	return nil
}

// NeedsClientConfirmation reports whether the client should be shown the
// price-confirmation form: true when no proposal has settled yet, that is
// when amounts are missing or disagree. The predicate is recomputed from
// current state on every call and must never be cached across refetches.
func (n *Negotiation) NeedsClientConfirmation() bool {
	if n.resolvedStatus.IsAccepted() {
		return false
	}
	if n.proposedByCourier == nil || n.confirmedByClient == nil {
		return true
	}
	return !n.proposedByCourier.IsEqual(*n.confirmedByClient)
}

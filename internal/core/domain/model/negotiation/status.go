package negotiation

import (
	"fmt"

	"ordersync/internal/pkg/errs"
)

// ResolvedStatus represents the state of a price negotiation attached to an
// order. The string form of each status is the wire name used by the remote
// authority.
//
// State transitions:
//
//	Pending ──> Discussing ──┬──> Accepted
//	                         └──> Conflicted ──> Accepted (arbitration)
type ResolvedStatus int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown ResolvedStatus = iota

	// StatusPending means no price proposal has been made yet.
	StatusPending

	// StatusDiscussing means a courier proposal is outstanding.
	StatusDiscussing

	// StatusAccepted means the amounts match and the price is agreed.
	StatusAccepted

	// StatusConflicted means the client confirmed a different amount than the
	// courier proposed; an admin must arbitrate.
	StatusConflicted

	// StatusArbitrated is reported by the authority while an admin override is
	// being applied. The mirror treats it as accepted.
	StatusArbitrated
)

func getResolvedStatusStrings() map[ResolvedStatus]string {
	return map[ResolvedStatus]string{
		StatusUnknown:    "UNKNOWN",
		StatusPending:    "EN_ATTENTE",
		StatusDiscussing: "EN_DISCUSSION",
		StatusAccepted:   "PRIX_VALIDE",
		StatusConflicted: "EN_CONFLIT",
		StatusArbitrated: "ARBITRE",
	}
}

func getValidResolvedStatusStrings() map[ResolvedStatus]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[ResolvedStatus]string{
		StatusPending:    "EN_ATTENTE",
		StatusDiscussing: "EN_DISCUSSION",
		StatusAccepted:   "PRIX_VALIDE",
		StatusConflicted: "EN_CONFLIT",
		StatusArbitrated: "ARBITRE",
	}
}

// ResolvedStatusFromString parses a wire status name into a ResolvedStatus.
func ResolvedStatusFromString(s string) (ResolvedStatus, error) {
	for status, name := range getValidResolvedStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("resolved status",
		fmt.Errorf("%q is not a valid resolved status", s))
}

// Validate checks if the ResolvedStatus value is valid.
func (s ResolvedStatus) Validate() error {
	if _, ok := getValidResolvedStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("resolved status",
			fmt.Errorf("%d is not a valid resolved status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
func (s ResolvedStatus) String() string {
	if str, ok := getResolvedStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsAccepted reports whether the negotiation is settled. Both Accepted and
// Arbitrated count: arbitration lands on an agreed price.
func (s ResolvedStatus) IsAccepted() bool {
	return s == StatusAccepted || s == StatusArbitrated
}

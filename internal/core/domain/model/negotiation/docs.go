// Package negotiation provides the price-agreement sub-record attached to an
// order once a courier has claimed it.
//
// The package includes:
//   - Negotiation: proposal, confirmation and resolution state for one order
//   - ResolvedStatus: the resolution state machine
//
// Key business rules:
//   - A courier proposal opens the discussion
//   - A client confirmation matching the proposal settles the price
//   - A mismatching confirmation records a conflict that only an admin
//     arbitration can settle, overwriting both amounts
//
// The package is pure data plus transition rules and performs no I/O.
package negotiation

// Package services provides domain services for the order synchronization
// engine: logic that spans the order set rather than a single aggregate.
//
// The package includes:
//   - RoleProjector: derives the role- and tab-scoped view of the cached
//     order set, including reference numbers and localized date rendering
//
// Domain services here are pure functions of their inputs and perform no I/O.
package services

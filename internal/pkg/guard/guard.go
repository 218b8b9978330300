// Package guard provides a defensive construction check for commands, queries
// and value objects. Embedding a ConstructorGuard lets a type detect whether it
// was created through its designated constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied and the object was not constructed properly.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard enforces that a struct is only usable when created through
// its constructor function. A zero-value guard fails validation.
//
// Example:
//
//	type ClaimOrderCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewClaimOrderCommand(orderID kernel.UUID) (ClaimOrderCommand, error) {
//	    if err := orderID.Validate(); err != nil {
//	        return ClaimOrderCommand{}, err
//	    }
//	    return ClaimOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as properly
// constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the owning object was created through its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

package guard_test

import (
	"errors"
	"testing"

	"ordersync/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		guard := guard.NewConstructorGuard()

		// Then
		assert.NotNil(t, guard)

		// Test with custom error
		customError := errors.New("test object not constructed")
		require.NoError(t, guard.Validate(customError))

		// Test with nil error (should use default)
		require.NoError(t, guard.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		guard := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		// When
		err := guard.Validate(customError)

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var guard guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		// When
		err := guard.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard should be used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	// Define a sample domain object that uses ConstructorGuard
	type Proposal struct {
		orderID string
		amount  int
		guard   guard.ConstructorGuard
	}

	var errProposalNotConstructed = errors.New("Proposal must be created via NewProposal")

	newProposal := func(orderID string, amount int) (Proposal, error) {
		if orderID == "" {
			return Proposal{}, errors.New("order id is required")
		}
		if amount <= 0 {
			return Proposal{}, errors.New("amount must be positive")
		}
		return Proposal{
			orderID: orderID,
			amount:  amount,
			guard:   guard.NewConstructorGuard(),
		}, nil
	}

	validateProposal := func(p Proposal) error {
		return p.guard.Validate(errProposalNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		// When
		proposal, err := newProposal("ord-42", 5000)

		// Then
		require.NoError(t, err)
		require.NoError(t, validateProposal(proposal))
		assert.Equal(t, "ord-42", proposal.orderID)
		assert.Equal(t, 5000, proposal.amount)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		// Given
		var proposal Proposal // zero value

		// When
		err := validateProposal(proposal)

		// Then
		// Zero value Proposal has zero value guard which returns the error we pass
		require.Error(t, err)
		assert.Equal(t, errProposalNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		// Test missing order id
		_, err := newProposal("", 5000)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order id is required")

		// Test non-positive amount
		_, err = newProposal("ord-42", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount must be positive")
	})
}

// TestConstructorGuardRealWorldExample shows a better pattern using embedded types.
func TestConstructorGuardRealWorldExample(t *testing.T) {
	// Define error once
	var errCommandNotConstructed = errors.New("ClaimCommand must be created via NewClaimCommand")

	// Define a guard-aware base type
	type guardedCommand struct {
		guard guard.ConstructorGuard
	}

	newGuardedCommand := func() guardedCommand {
		return guardedCommand{
			guard: guard.NewConstructorGuard(),
		}
	}

	validateGuardedCommand := func(g guardedCommand) error {
		return g.guard.Validate(errCommandNotConstructed)
	}

	// Define the actual domain object
	type ClaimCommand struct {
		guardedCommand
		orderID   string
		courierID string
	}

	newClaimCommand := func(orderID, courierID string) (ClaimCommand, error) {
		if orderID == "" {
			return ClaimCommand{}, errors.New("order id is required")
		}
		if courierID == "" {
			return ClaimCommand{}, errors.New("courier id is required")
		}
		return ClaimCommand{
			guardedCommand: newGuardedCommand(),
			orderID:        orderID,
			courierID:      courierID,
		}, nil
	}

	t.Run("valid_command_construction", func(t *testing.T) {
		// When
		command, err := newClaimCommand("ord-42", "cour-7")

		// Then
		require.NoError(t, err)
		require.NoError(t, validateGuardedCommand(command.guardedCommand))
		assert.Equal(t, "ord-42", command.orderID)
		assert.Equal(t, "cour-7", command.courierID)
	})

	t.Run("zero_value_command_fails_validation", func(t *testing.T) {
		// Given
		var command ClaimCommand // zero value

		// When
		err := validateGuardedCommand(command.guardedCommand)

		// Then
		// Zero value has zero value guard which returns the error we pass
		require.Error(t, err)
		assert.Equal(t, errCommandNotConstructed, err)
	})
}

// TestConstructorGuardWithMultipleErrors demonstrates using ConstructorGuard
// with different error types and messages.
func TestConstructorGuardWithMultipleErrors(t *testing.T) {
	testCases := []struct {
		name          string
		expectedError error
	}{
		{
			name:          "order_not_constructed_error",
			expectedError: errors.New("Order must be created via NewOrder"),
		},
		{
			name:          "command_not_constructed_error",
			expectedError: errors.New("ClaimOrderCommand must be created via NewClaimOrderCommand constructor"),
		},
		{
			name:          "negotiation_not_constructed_error",
			expectedError: errors.New("Negotiation requires proper initialization through constructor"),
		},
		{
			name:          "nil_error_uses_default",
			expectedError: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given
			guard := guard.NewConstructorGuard()

			// When
			err := guard.Validate(tc.expectedError)

			// Then
			require.NoError(t, err, "Properly constructed guard should not return error")
		})
	}
}

// TestConstructorGuardDefaultError verifies the default error behavior.
func TestConstructorGuardDefaultError(t *testing.T) {
	t.Run("nil_error_uses_default_for_zero_value", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		// Then
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Contains(t, guard.ErrDefaultConstructorGuard.Error(), "constructor")
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// BenchmarkConstructorGuard measures the performance overhead of using ConstructorGuard.
func BenchmarkConstructorGuard(b *testing.B) {
	b.Run("NewConstructorGuard", func(b *testing.B) {
		b.ResetTimer()
		for range b.N {
			_ = guard.NewConstructorGuard()
		}
	})

	b.Run("Validate_Success", func(b *testing.B) {
		guard := guard.NewConstructorGuard()
		err := errors.New("not constructed")
		b.ResetTimer()
		for range b.N {
			_ = guard.Validate(err)
		}
	})

	b.Run("Validate_ZeroValue", func(b *testing.B) {
		var guard guard.ConstructorGuard
		err := errors.New("not constructed")
		b.ResetTimer()
		for range b.N {
			_ = guard.Validate(err)
		}
	})
}

// TestConstructorGuardConcurrency verifies that ConstructorGuard is safe for concurrent use.
func TestConstructorGuardConcurrency(t *testing.T) {
	guard := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	// Run multiple goroutines that validate the guard concurrently
	done := make(chan bool)
	for range 100 {
		go func() {
			for range 1000 {
				err := guard.Validate(validationError)
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	// Wait for all goroutines to complete
	for range 100 {
		<-done
	}
}

// TestConstructorGuardImmutability verifies that ConstructorGuard is immutable.
func TestConstructorGuardImmutability(t *testing.T) {
	t.Run("guard_fields_are_not_modifiable", func(t *testing.T) {
		// Given
		originalError := errors.New("original error")
		g := guard.NewConstructorGuard()

		// When
		// Try to create another guard
		anotherError := errors.New("another error")
		_ = guard.NewConstructorGuard()

		// Then
		// Original guard should still validate successfully
		require.NoError(t, g.Validate(originalError))
		require.NoError(t, g.Validate(anotherError))
	})

	t.Run("guard_can_be_safely_passed_by_value", func(t *testing.T) {
		// Given
		guard := guard.NewConstructorGuard()
		testError := errors.New("test error")

		// When
		guardCopy := guard // Pass by value

		// Then
		require.NoError(t, guard.Validate(testError))
		require.NoError(t, guardCopy.Validate(testError))
	})
}

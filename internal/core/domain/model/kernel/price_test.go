package kernel_test

import (
	"testing"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrice(t *testing.T) {
	t.Run("should create price from positive amount", func(t *testing.T) {
		p, err := kernel.NewPrice(5000)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, int64(5000), p.Amount())
		assert.Equal(t, "5000", p.String())
	})

	t.Run("should fail with zero amount", func(t *testing.T) {
		_, err := kernel.NewPrice(0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should fail with negative amount", func(t *testing.T) {
		_, err := kernel.NewPrice(-100)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPriceFromString(t *testing.T) {
	t.Run("should parse whole positive amount", func(t *testing.T) {
		p, err := kernel.PriceFromString("4800")

		require.NoError(t, err)
		assert.Equal(t, int64(4800), p.Amount())
	})

	t.Run("should fail on fractional amount", func(t *testing.T) {
		_, err := kernel.PriceFromString("4800.50")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "not a whole amount")
	})

	t.Run("should fail on non-positive amount", func(t *testing.T) {
		_, err := kernel.PriceFromString("-5")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail on malformed input", func(t *testing.T) {
		_, err := kernel.PriceFromString("abc")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPrice_IsEqual(t *testing.T) {
	t.Run("equal amounts are equal", func(t *testing.T) {
		a, _ := kernel.NewPrice(5000)
		b, _ := kernel.PriceFromString("5000")

		assert.True(t, a.IsEqual(b))
	})

	t.Run("different amounts are not equal", func(t *testing.T) {
		a, _ := kernel.NewPrice(5000)
		b, _ := kernel.NewPrice(4500)

		assert.False(t, a.IsEqual(b))
	})
}

func TestPrice_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var p kernel.Price

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrPriceIsNotConstructed, err)
	})
}

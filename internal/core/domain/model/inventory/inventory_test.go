package inventory_test

import (
	"testing"

	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInventory(t *testing.T, available int) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.NewInventory(kernel.NewUUID(), kernel.NewUUID(), available)
	require.NoError(t, err)
	return inv
}

func TestNewInventory(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		id := kernel.NewUUID()
		productID := kernel.NewUUID()

		inv, err := inventory.NewInventory(id, productID, 10)

		require.NoError(t, err)
		assert.Equal(t, id, inv.ID())
		assert.Equal(t, productID, inv.ProductID())
		assert.Equal(t, 10, inv.Available())
		assert.Equal(t, 0, inv.Reserved())
	})

	t.Run("negative initial quantity", func(t *testing.T) {
		_, err := inventory.NewInventory(kernel.NewUUID(), kernel.NewUUID(), -1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid product id", func(t *testing.T) {
		_, err := inventory.NewInventory(kernel.NewUUID(), kernel.UUID{}, 5)
		require.Error(t, err)
	})
}

func TestInventory_Validate(t *testing.T) {
	var inv inventory.Inventory
	err := inv.Validate()
	require.Error(t, err)
	assert.Equal(t, inventory.ErrInventoryIsNotConstructed, err)

	require.NoError(t, newTestInventory(t, 1).Validate())
}

func TestInventory_Decrease(t *testing.T) {
	t.Run("decreases available quantity", func(t *testing.T) {
		inv := newTestInventory(t, 5)
		require.NoError(t, inv.Decrease(3))
		assert.Equal(t, 2, inv.Available())
	})

	t.Run("can drain to exactly zero", func(t *testing.T) {
		inv := newTestInventory(t, 5)
		require.NoError(t, inv.Decrease(5))
		assert.Equal(t, 0, inv.Available())
	})

	t.Run("fails with insufficient stock", func(t *testing.T) {
		inv := newTestInventory(t, 5)
		err := inv.Decrease(6)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInsufficientStock)
		assert.Equal(t, 5, inv.Available(), "failed decrease must not mutate")
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		inv := newTestInventory(t, 5)
		require.Error(t, inv.Decrease(0))
		require.Error(t, inv.Decrease(-1))
	})
}

func TestInventory_Increase(t *testing.T) {
	t.Run("increases available quantity", func(t *testing.T) {
		inv := newTestInventory(t, 5)
		require.NoError(t, inv.Increase(3))
		assert.Equal(t, 8, inv.Available())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		inv := newTestInventory(t, 5)
		require.Error(t, inv.Increase(0))
		require.Error(t, inv.Increase(-2))
	})
}

func TestInventory_DecreaseIncreaseRoundTrip(t *testing.T) {
	inv := newTestInventory(t, 7)
	require.NoError(t, inv.Decrease(4))
	require.NoError(t, inv.Increase(4))
	assert.Equal(t, 7, inv.Available())
}

func TestInventory_HasAvailable(t *testing.T) {
	inv := newTestInventory(t, 5)
	assert.True(t, inv.HasAvailable(5))
	assert.True(t, inv.HasAvailable(1))
	assert.False(t, inv.HasAvailable(6))
}

func TestInventory_SetAvailable(t *testing.T) {
	inv := newTestInventory(t, 5)

	require.NoError(t, inv.SetAvailable(42))
	assert.Equal(t, 42, inv.Available())

	require.NoError(t, inv.SetAvailable(0))
	assert.Equal(t, 0, inv.Available())

	err := inv.SetAvailable(-1)
	require.Error(t, err)
	assert.Equal(t, 0, inv.Available())
}

func TestRestoreInventory(t *testing.T) {
	t.Run("restores persisted state", func(t *testing.T) {
		id := kernel.NewUUID()
		productID := kernel.NewUUID()

		inv, err := inventory.RestoreInventory(id, productID, 3, 2)

		require.NoError(t, err)
		assert.Equal(t, 3, inv.Available())
		assert.Equal(t, 2, inv.Reserved())
	})

	t.Run("rejects negative quantities", func(t *testing.T) {
		_, err := inventory.RestoreInventory(kernel.NewUUID(), kernel.NewUUID(), -1, 0)
		require.Error(t, err)

		_, err = inventory.RestoreInventory(kernel.NewUUID(), kernel.NewUUID(), 0, -1)
		require.Error(t, err)
	})
}

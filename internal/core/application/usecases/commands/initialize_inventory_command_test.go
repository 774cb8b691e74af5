package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitializeInventoryCommand(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		productID := kernel.NewUUID()

		cmd, err := commands.NewInitializeInventoryCommand(productID, 25)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, productID, cmd.ProductID())
		assert.Equal(t, 25, cmd.InitialQuantity())
	})

	t.Run("zero quantity is valid", func(t *testing.T) {
		_, err := commands.NewInitializeInventoryCommand(kernel.NewUUID(), 0)
		require.NoError(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := commands.NewInitializeInventoryCommand(kernel.NewUUID(), -1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.InitializeInventoryCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrInitializeInventoryCommandIsNotConstructed)
	})
}

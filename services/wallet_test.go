package services_test

import (
	"SteamProfile/apperrors"
	"SteamProfile/services"
	"SteamProfile/testhelpers"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMoney(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	wallets := services.NewWalletService(store)
	user := testhelpers.CreateUser(t, db, "alice")

	t.Run("Wallet is created on first read", func(t *testing.T) {
		balance, err := wallets.GetBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, balance.IsZero())

		points, err := wallets.GetPoints(ctx, user.ID)
		require.NoError(t, err)
		assert.Zero(t, points)
	})

	rejected := []string{"0", "-1", "-0.01", "500.01", "1000"}
	for _, amount := range rejected {
		t.Run("Rejects "+amount, func(t *testing.T) {
			err := wallets.AddMoney(ctx, user.ID, decimal.RequireFromString(amount))
			assert.True(t, apperrors.IsValidation(err), "got %v", err)
		})
	}

	balance, err := wallets.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero(), "rejected deposits must not change the balance")

	t.Run("Accepts the bounds and adds exactly", func(t *testing.T) {
		require.NoError(t, wallets.AddMoney(ctx, user.ID, decimal.RequireFromString("0.01")))
		require.NoError(t, wallets.AddMoney(ctx, user.ID, decimal.NewFromInt(500)))
		require.NoError(t, wallets.AddMoney(ctx, user.ID, decimal.RequireFromString("12.50")))

		balance, err := wallets.GetBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("512.51").Equal(balance), "got %s", balance)
	})

	t.Run("Points", func(t *testing.T) {
		require.NoError(t, wallets.AddPoints(ctx, user.ID, 3))
		points, err := wallets.GetPoints(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, points)
		assert.True(t, apperrors.IsValidation(wallets.AddPoints(ctx, user.ID, 0)))
	})
}

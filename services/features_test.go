package services_test

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"SteamProfile/services"
	"SteamProfile/testhelpers"
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseFeature(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	features := services.NewFeaturesService(store)
	wallets := services.NewWalletService(store)
	user := testhelpers.CreateUser(t, db, "alice")

	feature := models.Feature{Name: "Test Frame", Type: "frame", Price: decimal.NewFromInt(30)}
	require.NoError(t, db.Create(&feature).Error)

	balance := func(t *testing.T) decimal.Decimal {
		t.Helper()
		b, err := wallets.GetBalance(ctx, user.ID)
		require.NoError(t, err)
		return b
	}

	t.Run("Invalid ids", func(t *testing.T) {
		assert.True(t, apperrors.IsValidation(features.PurchaseFeature(ctx, 0, feature.ID)))
		assert.True(t, apperrors.IsValidation(features.PurchaseFeature(ctx, user.ID, 0)))
	})

	t.Run("Unknown feature", func(t *testing.T) {
		assert.True(t, apperrors.IsNotFound(features.PurchaseFeature(ctx, user.ID, 9999)))
	})

	t.Run("Denied when the balance is short", func(t *testing.T) {
		require.NoError(t, wallets.AddMoney(ctx, user.ID, decimal.NewFromInt(20)))

		err := features.PurchaseFeature(ctx, user.ID, feature.ID)
		assert.True(t, apperrors.IsValidation(err), "got %v", err)

		assert.True(t, decimal.NewFromInt(20).Equal(balance(t)))
		owned, err := features.IsFeaturePurchased(ctx, user.ID, feature.ID)
		require.NoError(t, err)
		assert.False(t, owned)
	})

	t.Run("Succeeds when the balance covers the price", func(t *testing.T) {
		require.NoError(t, wallets.AddMoney(ctx, user.ID, decimal.NewFromInt(15)))
		require.NoError(t, features.PurchaseFeature(ctx, user.ID, feature.ID))

		assert.True(t, decimal.NewFromInt(5).Equal(balance(t)), "got %s", balance(t))
		owned, err := features.IsFeaturePurchased(ctx, user.ID, feature.ID)
		require.NoError(t, err)
		assert.True(t, owned)
	})

	t.Run("Second purchase is a conflict", func(t *testing.T) {
		require.NoError(t, wallets.AddMoney(ctx, user.ID, decimal.NewFromInt(100)))
		err := features.PurchaseFeature(ctx, user.ID, feature.ID)
		assert.True(t, apperrors.IsConflict(err))
		assert.True(t, decimal.NewFromInt(105).Equal(balance(t)))
	})
}

func TestConcurrentPurchasesDebitOnce(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	features := services.NewFeaturesService(store)
	wallets := services.NewWalletService(store)
	user := testhelpers.CreateUser(t, db, "alice")

	feature := models.Feature{Name: "Test Pet", Type: "pet", Price: decimal.NewFromInt(40)}
	require.NoError(t, db.Create(&feature).Error)
	require.NoError(t, wallets.AddMoney(ctx, user.ID, decimal.NewFromInt(100)))

	const attempts = 4
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = features.PurchaseFeature(ctx, user.ID, feature.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	b, err := wallets.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(b), "got %s", b)
}

func TestEquipFeature(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	features := services.NewFeaturesService(store)
	wallets := services.NewWalletService(store)
	user := testhelpers.CreateUser(t, db, "alice")

	red := models.Feature{Name: "Red Hat", Type: "hat", Price: decimal.NewFromInt(1)}
	blue := models.Feature{Name: "Blue Hat", Type: "hat", Price: decimal.NewFromInt(1)}
	require.NoError(t, db.Create(&red).Error)
	require.NoError(t, db.Create(&blue).Error)
	require.NoError(t, wallets.AddMoney(ctx, user.ID, decimal.NewFromInt(10)))

	assert.True(t, apperrors.IsValidation(features.EquipFeature(ctx, user.ID, red.ID)))

	require.NoError(t, features.PurchaseFeature(ctx, user.ID, red.ID))
	require.NoError(t, features.PurchaseFeature(ctx, user.ID, blue.ID))
	require.NoError(t, features.EquipFeature(ctx, user.ID, red.ID))
	require.NoError(t, features.EquipFeature(ctx, user.ID, blue.ID))

	equipped, err := features.GetEquippedFeatures(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, equipped, 1)
	assert.Equal(t, blue.ID, equipped[0].ID)

	categories, err := features.GetFeaturesByCategories(ctx, user.ID)
	require.NoError(t, err)
	owned := 0
	for _, h := range categories["hat"] {
		if h.ID == red.ID || h.ID == blue.ID {
			owned++
			assert.True(t, h.Owned)
		} else {
			assert.False(t, h.Owned)
		}
		assert.Equal(t, h.ID == blue.ID, h.Equipped)
	}
	assert.Equal(t, 2, owned)

	require.NoError(t, features.UnequipFeature(ctx, user.ID, blue.ID))
	equipped, err = features.GetEquippedFeatures(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, equipped)
}

package services_test

import (
	"SteamProfile/apperrors"
	"SteamProfile/services"
	"SteamProfile/testhelpers"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	collections := services.NewCollectionsService(store)
	games := services.NewOwnedGamesService(store)
	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	portal, err := games.AddOwnedGame(ctx, alice.ID, services.OwnedGameInput{Title: "Portal 2"})
	require.NoError(t, err)
	_, err = games.AddOwnedGame(ctx, alice.ID, services.OwnedGameInput{Title: "Half-Life"})
	require.NoError(t, err)

	favorites, err := collections.CreateCollection(ctx, alice.ID, services.CollectionInput{Name: "Favorites"})
	require.NoError(t, err)

	t.Run("Add then list returns the game once", func(t *testing.T) {
		require.NoError(t, collections.AddGameToCollection(ctx, favorites.ID, portal.ID, alice.ID))

		list, err := collections.GetGamesInCollection(ctx, favorites.ID, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, portal.ID, list[0].ID)

		notIn, err := collections.GetGamesNotInCollection(ctx, favorites.ID, alice.ID)
		require.NoError(t, err)
		require.Len(t, notIn, 1)
		assert.Equal(t, "Half-Life", notIn[0].Title)
	})

	t.Run("Adding twice is a conflict", func(t *testing.T) {
		err := collections.AddGameToCollection(ctx, favorites.ID, portal.ID, alice.ID)
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("Private collections are hidden from others", func(t *testing.T) {
		_, err := collections.GetGamesInCollection(ctx, favorites.ID, bob.ID)
		assert.True(t, apperrors.IsNotFound(err))

		err = collections.AddGameToCollection(ctx, favorites.ID, portal.ID, bob.ID)
		assert.True(t, apperrors.IsUnauthorized(err))

		public, err := collections.GetPublicCollections(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, public)
	})

	t.Run("Remove then list is empty", func(t *testing.T) {
		require.NoError(t, collections.RemoveGameFromCollection(ctx, favorites.ID, portal.ID, alice.ID))

		list, err := collections.GetGamesInCollection(ctx, favorites.ID, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Update and delete", func(t *testing.T) {
		require.NoError(t, collections.UpdateCollection(ctx, favorites.ID, alice.ID, services.CollectionInput{Name: "Best", IsPublic: true}))
		public, err := collections.GetPublicCollections(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, public, 1)
		assert.Equal(t, "Best", public[0].Name)

		require.NoError(t, collections.DeleteCollection(ctx, favorites.ID, alice.ID))
		all, err := collections.GetAllCollections(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("Games owned by others cannot be added", func(t *testing.T) {
		mine, err := collections.CreateCollection(ctx, bob.ID, services.CollectionInput{Name: "Mine"})
		require.NoError(t, err)
		err = collections.AddGameToCollection(ctx, mine.ID, portal.ID, bob.ID)
		assert.True(t, apperrors.IsValidation(err))
	})
}

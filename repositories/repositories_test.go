package repositories_test

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"SteamProfile/repositories"
	"SteamProfile/testhelpers"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendshipRepository(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.SetupTestDB(t)
	store := repositories.NewStore(db)
	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	t.Run("Stores one canonical row", func(t *testing.T) {
		require.NoError(t, store.Friendships.Add(ctx, bob.ID, alice.ID))

		var rows []models.Friendship
		require.NoError(t, db.Find(&rows).Error)
		require.Len(t, rows, 1)
		assert.Equal(t, alice.ID, rows[0].UserID)
		assert.Equal(t, bob.ID, rows[0].FriendID)

		exists, err := store.Friendships.Exists(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, exists)
		exists, err = store.Friendships.Exists(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Mirrored pair is a conflict", func(t *testing.T) {
		err := store.Friendships.Add(ctx, alice.ID, bob.ID)
		assert.True(t, apperrors.IsConflict(err), "got %v", err)
	})

	t.Run("Self friendship is rejected", func(t *testing.T) {
		err := store.Friendships.Add(ctx, alice.ID, alice.ID)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("Friend ids from both sides", func(t *testing.T) {
		ids, err := store.Friendships.ListFriendIDs(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{alice.ID}, ids)

		count, err := store.Friendships.Count(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Remove in either order", func(t *testing.T) {
		require.NoError(t, store.Friendships.Remove(ctx, bob.ID, alice.ID))
		err := store.Friendships.Remove(ctx, alice.ID, bob.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestWalletRepository(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.SetupTestDB(t)
	store := repositories.NewStore(db)
	user := testhelpers.CreateUser(t, db, "gabe")

	wallet, err := store.Wallets.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())

	again, err := store.Wallets.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, wallet.ID, again.ID)

	require.NoError(t, store.Wallets.Credit(ctx, user.ID, decimal.NewFromInt(25)))

	ok, err := store.Wallets.Debit(ctx, user.ID, decimal.NewFromInt(30))
	require.NoError(t, err)
	assert.False(t, ok, "debit above the balance must not apply")

	ok, err = store.Wallets.Debit(ctx, user.ID, decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.True(t, ok)

	wallet, err = store.Wallets.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(wallet.Balance), "balance %s", wallet.Balance)

	err = store.Wallets.Credit(ctx, 9999, decimal.NewFromInt(1))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCollectionRepository(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.SetupTestDB(t)
	store := repositories.NewStore(db)
	user := testhelpers.CreateUser(t, db, "collector")

	game := &models.OwnedGame{UserID: user.ID, Title: "Portal 2", AcquiredAt: time.Now()}
	other := &models.OwnedGame{UserID: user.ID, Title: "Half-Life", AcquiredAt: time.Now()}
	require.NoError(t, store.OwnedGames.Create(ctx, game))
	require.NoError(t, store.OwnedGames.Create(ctx, other))

	collection := &models.Collection{UserID: user.ID, Name: "Favorites"}
	require.NoError(t, store.Collections.Create(ctx, collection))

	require.NoError(t, store.Collections.AddGame(ctx, collection.ID, game.ID))
	assert.True(t, apperrors.IsConflict(store.Collections.AddGame(ctx, collection.ID, game.ID)))

	games, err := store.Collections.ListGames(ctx, collection.ID)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Portal 2", games[0].Title)

	notIn, err := store.Collections.ListGamesNotIn(ctx, collection.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, notIn, 1)
	assert.Equal(t, "Half-Life", notIn[0].Title)

	duplicate := &models.Collection{UserID: user.ID, Name: "Favorites"}
	assert.True(t, apperrors.IsConflict(store.Collections.Create(ctx, duplicate)))

	require.NoError(t, store.Collections.Delete(ctx, collection.ID))
	_, err = store.OwnedGames.Get(ctx, game.ID)
	assert.NoError(t, err, "deleting a collection keeps the games")
}

func TestStoreTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.SetupTestDB(t)
	store := repositories.NewStore(db)
	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Friendships.Add(ctx, alice.ID, bob.ID); err != nil {
			return err
		}
		return boom
	})
	assert.Error(t, err)

	exists, err := store.Friendships.Exists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestVoteLedgersReportChanges(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.SetupTestDB(t)
	store := repositories.NewStore(db)
	author := testhelpers.CreateUser(t, db, "author")
	voter := testhelpers.CreateUser(t, db, "voter")

	t.Run("Review vote is removed once", func(t *testing.T) {
		review := &models.Review{UserID: author.ID, GameID: 1, Title: "Solid", Content: "Worth it", IsRecommended: true, Rating: 4}
		require.NoError(t, store.Reviews.Create(ctx, review))
		require.NoError(t, store.Reviews.AddVote(ctx, review.ID, voter.ID, "helpful"))

		removed, err := store.Reviews.RemoveVote(ctx, review.ID, voter.ID, "helpful")
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = store.Reviews.RemoveVote(ctx, review.ID, voter.ID, "helpful")
		require.NoError(t, err)
		assert.False(t, removed, "a second removal must not count")
	})

	t.Run("News rating changes only from the expected state", func(t *testing.T) {
		post := &models.NewsPost{AuthorID: author.ID, Content: "Patch notes", UploadedOn: time.Now()}
		require.NoError(t, store.News.CreatePost(ctx, post))
		require.NoError(t, store.News.CreateRating(ctx, &models.NewsRating{PostID: post.ID, AuthorID: voter.ID, IsLike: true}))

		changed, err := store.News.UpdateRating(ctx, post.ID, voter.ID, false)
		require.NoError(t, err)
		assert.True(t, changed)
		changed, err = store.News.UpdateRating(ctx, post.ID, voter.ID, false)
		require.NoError(t, err)
		assert.False(t, changed)

		removed, err := store.News.DeleteRating(ctx, post.ID, voter.ID, true)
		require.NoError(t, err)
		assert.False(t, removed, "the rating is a dislike now")
		removed, err = store.News.DeleteRating(ctx, post.ID, voter.ID, false)
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = store.News.DeleteRating(ctx, post.ID, voter.ID, false)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("Forum vote moves from the previous value only", func(t *testing.T) {
		post := &models.ForumPost{Title: "Builds", Body: "Share yours", AuthorID: author.ID}
		require.NoError(t, store.Forum.CreatePost(ctx, post))

		changed, err := store.Forum.SetPostVote(ctx, post.ID, voter.ID, 0, 1)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = store.Forum.SetPostVote(ctx, post.ID, voter.ID, -1, 1)
		require.NoError(t, err)
		assert.False(t, changed, "stale previous value")

		changed, err = store.Forum.SetPostVote(ctx, post.ID, voter.ID, 1, 0)
		require.NoError(t, err)
		assert.True(t, changed)
		changed, err = store.Forum.SetPostVote(ctx, post.ID, voter.ID, 1, 0)
		require.NoError(t, err)
		assert.False(t, changed)

		value, err := store.Forum.GetPostVote(ctx, post.ID, voter.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, value)
	})
}

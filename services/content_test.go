package services_test

import (
	"SteamProfile/apperrors"
	"SteamProfile/constants/economy"
	"SteamProfile/services"
	"SteamProfile/testhelpers"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewVotesUseLedger(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	reviews := services.NewReviewsService(store)
	author := testhelpers.CreateUser(t, db, "author")
	reader := testhelpers.CreateUser(t, db, "reader")

	review, err := reviews.SubmitReview(ctx, author.ID, services.ReviewInput{
		GameID: 10, Title: "Great", Content: "Loved it", IsRecommended: true, Rating: 4.5, HoursPlayed: 12,
	})
	require.NoError(t, err)

	_, err = reviews.SubmitReview(ctx, author.ID, services.ReviewInput{GameID: 10, Title: "Again", Content: "x", Rating: 1})
	assert.True(t, apperrors.IsConflict(err))

	t.Run("Toggle adds then removes", func(t *testing.T) {
		updated, err := reviews.ToggleVote(ctx, review.ID, reader.ID, economy.VoteHelpful)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.HelpfulVotes)

		updated, err = reviews.ToggleVote(ctx, review.ID, reader.ID, economy.VoteFunny)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.HelpfulVotes)
		assert.Equal(t, 1, updated.FunnyVotes)

		updated, err = reviews.ToggleVote(ctx, review.ID, reader.ID, economy.VoteHelpful)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.HelpfulVotes)
	})

	t.Run("Own reviews and unknown kinds are rejected", func(t *testing.T) {
		_, err := reviews.ToggleVote(ctx, review.ID, author.ID, economy.VoteHelpful)
		assert.True(t, apperrors.IsValidation(err))
		_, err = reviews.ToggleVote(ctx, review.ID, reader.ID, "angry")
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("Statistics", func(t *testing.T) {
		_, err := reviews.SubmitReview(ctx, reader.ID, services.ReviewInput{GameID: 10, Title: "Meh", Content: "Not for me", Rating: 2.5})
		require.NoError(t, err)

		stats, err := reviews.GetReviewStatistics(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.TotalReviews)
		assert.Equal(t, int64(1), stats.PositiveReviews)
		assert.InDelta(t, 50.0, stats.PositivePercentage, 0.001)
		assert.InDelta(t, 3.5, stats.AverageRating, 0.001)

		recommended := true
		list, err := reviews.GetReviewsForGame(ctx, 10, services.ReviewQuery{SortBy: "rating", Recommended: &recommended})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, review.ID, list[0].ID)
	})

	t.Run("Only the author edits and deletes", func(t *testing.T) {
		_, err := reviews.EditReview(ctx, review.ID, reader.ID, services.ReviewInput{Title: "x", Content: "y", Rating: 1})
		assert.True(t, apperrors.IsUnauthorized(err))

		edited, err := reviews.EditReview(ctx, review.ID, author.ID, services.ReviewInput{Title: "Still great", Content: "Even better", Rating: 5, IsRecommended: true})
		require.NoError(t, err)
		assert.Equal(t, "Still great", edited.Title)
		assert.Equal(t, uint(10), edited.GameID)

		require.NoError(t, reviews.DeleteReview(ctx, review.ID, author.ID))
		mine, err := reviews.GetReviewsByUser(ctx, author.ID)
		require.NoError(t, err)
		assert.Empty(t, mine)
	})
}

func TestNewsRatings(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	news := services.NewNewsService(store)
	dev := testhelpers.CreateUser(t, db, "dev")
	require.NoError(t, db.Model(dev).Update("is_developer", true).Error)
	reader := testhelpers.CreateUser(t, db, "reader")

	_, err := news.CreatePost(ctx, reader.ID, "Not a developer")
	assert.True(t, apperrors.IsUnauthorized(err))

	post, err := news.CreatePost(ctx, dev.ID, "Patch notes")
	require.NoError(t, err)

	counters := func(t *testing.T) (int, int) {
		t.Helper()
		p, err := news.GetPost(ctx, post.ID)
		require.NoError(t, err)
		return p.NrLikes, p.NrDislikes
	}

	require.NoError(t, news.LikePost(ctx, post.ID, reader.ID))
	likes, dislikes := counters(t)
	assert.Equal(t, [2]int{1, 0}, [2]int{likes, dislikes})

	require.NoError(t, news.DislikePost(ctx, post.ID, reader.ID))
	likes, dislikes = counters(t)
	assert.Equal(t, [2]int{0, 1}, [2]int{likes, dislikes}, "an opposite rating switches")

	require.NoError(t, news.DislikePost(ctx, post.ID, reader.ID))
	likes, dislikes = counters(t)
	assert.Equal(t, [2]int{0, 0}, [2]int{likes, dislikes}, "the same rating twice takes it back")

	require.NoError(t, news.LikePost(ctx, post.ID, reader.ID))
	require.NoError(t, news.RemoveRating(ctx, post.ID, reader.ID))
	require.NoError(t, news.RemoveRating(ctx, post.ID, reader.ID))
	likes, dislikes = counters(t)
	assert.Equal(t, [2]int{0, 0}, [2]int{likes, dislikes})

	t.Run("Comments keep the counter", func(t *testing.T) {
		comment, err := news.CreateComment(ctx, post.ID, reader.ID, "Nice")
		require.NoError(t, err)
		p, err := news.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, p.NrComments)

		assert.True(t, apperrors.IsUnauthorized(news.DeleteComment(ctx, comment.ID, dev.ID)))
		require.NoError(t, news.UpdateComment(ctx, comment.ID, reader.ID, "Very nice"))
		comments, err := news.GetComments(ctx, post.ID, 1)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "Very nice", comments[0].Content)

		require.NoError(t, news.DeleteComment(ctx, comment.ID, reader.ID))
		p, err = news.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, p.NrComments)
	})

	t.Run("Paging", func(t *testing.T) {
		for i := 0; i < economy.NewsPostsPageSize; i++ {
			_, err := news.CreatePost(ctx, dev.ID, "Update")
			require.NoError(t, err)
		}
		first, err := news.GetPosts(ctx, 1, "")
		require.NoError(t, err)
		assert.Len(t, first, economy.NewsPostsPageSize)
		second, err := news.GetPosts(ctx, 2, "")
		require.NoError(t, err)
		assert.Len(t, second, 1)

		found, err := news.GetPosts(ctx, 1, "patch")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, post.ID, found[0].ID)
	})
}

func TestForumVotes(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	forum := services.NewForumService(store)
	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	post, err := forum.CreatePost(ctx, alice.ID, services.ForumPostInput{Title: "Speedrun tips"})
	require.NoError(t, err)

	score, err := forum.VotePost(ctx, post.ID, bob.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	score, err = forum.VotePost(ctx, post.ID, bob.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, -1, score)

	score, err = forum.VotePost(ctx, post.ID, bob.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	_, err = forum.VotePost(ctx, post.ID, bob.ID, 2)
	assert.True(t, apperrors.IsValidation(err))

	comment, err := forum.CreateComment(ctx, post.ID, bob.ID, "Thanks")
	require.NoError(t, err)
	score, err = forum.VoteComment(ctx, comment.ID, alice.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	t.Run("Top posts and paging", func(t *testing.T) {
		_, err := forum.CreatePost(ctx, bob.ID, services.ForumPostInput{Title: "Other"})
		require.NoError(t, err)
		_, err = forum.VotePost(ctx, post.ID, alice.ID, 1)
		require.NoError(t, err)

		top, err := forum.GetTopPosts(ctx, services.SpanWeek)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, post.ID, top[0].ID)

		paged, err := forum.GetPagedPosts(ctx, services.ForumQuery{Page: 1, PageSize: 1, Filter: "speed"})
		require.NoError(t, err)
		require.Len(t, paged, 1)
		assert.Equal(t, post.ID, paged[0].ID)
	})

	t.Run("Only the author deletes", func(t *testing.T) {
		assert.True(t, apperrors.IsUnauthorized(forum.DeletePost(ctx, post.ID, bob.ID)))
		require.NoError(t, forum.DeletePost(ctx, post.ID, alice.ID))
		_, err := forum.GetPost(ctx, post.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

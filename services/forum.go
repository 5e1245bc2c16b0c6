package services

import (
	"SteamProfile/apperrors"
	"SteamProfile/constants/economy"
	models "SteamProfile/models/postgres"
	"SteamProfile/repositories"
	"context"
	"strings"
	"time"
)

const topPostsLimit = 20

type LocalForumService struct {
	store *repositories.Store
}

func NewForumService(store *repositories.Store) *LocalForumService {
	return &LocalForumService{store: store}
}

func (s *LocalForumService) GetPagedPosts(ctx context.Context, query ForumQuery) ([]models.ForumPost, error) {
	size := query.PageSize
	if size <= 0 {
		size = economy.ForumDefaultPageSize
	}
	if size > economy.ForumMaxPageSize {
		size = economy.ForumMaxPageSize
	}
	return s.store.Forum.ListPosts(ctx, repositories.ForumFilter{
		Offset:       pageOffset(query.Page, size),
		Limit:        size,
		PositiveOnly: query.PositiveOnly,
		GameID:       query.GameID,
		Search:       strings.TrimSpace(query.Filter),
	})
}

func (s *LocalForumService) GetTopPosts(ctx context.Context, span TimeSpan) ([]models.ForumPost, error) {
	return s.store.Forum.TopPosts(ctx, span.Since(time.Now().UTC()), topPostsLimit)
}

func (s *LocalForumService) GetPost(ctx context.Context, postID uint) (*models.ForumPost, error) {
	return s.store.Forum.GetPost(ctx, postID)
}

func (s *LocalForumService) CreatePost(ctx context.Context, authorID uint, input ForumPostInput) (*models.ForumPost, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidation("Post title is required")
	}
	post := &models.ForumPost{
		Title:     title,
		Body:      strings.TrimSpace(input.Body),
		AuthorID:  authorID,
		GameID:    input.GameID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Forum.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *LocalForumService) DeletePost(ctx context.Context, postID, userID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Forum.GetPost(ctx, postID)
		if err != nil {
			return err
		}
		if post.AuthorID != userID {
			return apperrors.NewForbidden("Forum post %d belongs to another user", postID)
		}
		return tx.Forum.DeletePost(ctx, postID)
	})
}

func validateVote(value int) error {
	if value != 1 && value != -1 {
		return apperrors.NewValidation("Vote must be 1 or -1")
	}
	return nil
}

// nextVote applies a vote to the previous one: the same vote cancels, any
// other replaces. It returns the new ledger value and the score delta.
func nextVote(previous, value int) (int, int) {
	if previous == value {
		return 0, -previous
	}
	return value, value - previous
}

// VotePost records an upvote (1) or downvote (-1) and returns the new score
func (s *LocalForumService) VotePost(ctx context.Context, postID, userID uint, value int) (int, error) {
	if err := validateVote(value); err != nil {
		return 0, err
	}
	var score int
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Forum.GetPost(ctx, postID); err != nil {
			return err
		}
		previous, err := tx.Forum.GetPostVote(ctx, postID, userID)
		if err != nil {
			return err
		}
		next, delta := nextVote(previous, value)
		changed, err := tx.Forum.SetPostVote(ctx, postID, userID, previous, next)
		if err != nil {
			return err
		}
		if changed {
			if err := tx.Forum.AdjustPostScore(ctx, postID, delta); err != nil {
				return err
			}
		}
		post, err := tx.Forum.GetPost(ctx, postID)
		if err != nil {
			return err
		}
		score = post.Score
		return nil
	})
	return score, err
}

func (s *LocalForumService) GetComments(ctx context.Context, postID uint) ([]models.ForumComment, error) {
	return s.store.Forum.ListComments(ctx, postID)
}

func (s *LocalForumService) CreateComment(ctx context.Context, postID, authorID uint, body string) (*models.ForumComment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidation("Comment body is required")
	}
	comment := &models.ForumComment{PostID: postID, AuthorID: authorID, Body: body, CreatedAt: time.Now().UTC()}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Forum.GetPost(ctx, postID); err != nil {
			return err
		}
		return tx.Forum.CreateComment(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *LocalForumService) DeleteComment(ctx context.Context, commentID, userID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		comment, err := tx.Forum.GetComment(ctx, commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID != userID {
			return apperrors.NewForbidden("Comment %d belongs to another user", commentID)
		}
		return tx.Forum.DeleteComment(ctx, commentID)
	})
}

func (s *LocalForumService) VoteComment(ctx context.Context, commentID, userID uint, value int) (int, error) {
	if err := validateVote(value); err != nil {
		return 0, err
	}
	var score int
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Forum.GetComment(ctx, commentID); err != nil {
			return err
		}
		previous, err := tx.Forum.GetCommentVote(ctx, commentID, userID)
		if err != nil {
			return err
		}
		next, delta := nextVote(previous, value)
		changed, err := tx.Forum.SetCommentVote(ctx, commentID, userID, previous, next)
		if err != nil {
			return err
		}
		if changed {
			if err := tx.Forum.AdjustCommentScore(ctx, commentID, delta); err != nil {
				return err
			}
		}
		comment, err := tx.Forum.GetComment(ctx, commentID)
		if err != nil {
			return err
		}
		score = comment.Score
		return nil
	})
	return score, err
}

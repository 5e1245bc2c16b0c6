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

// LocalNewsService implements NewsService. Only developers publish posts;
// anyone signed in can rate and comment.
type LocalNewsService struct {
	store *repositories.Store
}

func NewNewsService(store *repositories.Store) *LocalNewsService {
	return &LocalNewsService{store: store}
}

// pageOffset turns a 1-based page into an offset
func pageOffset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

func (s *LocalNewsService) GetPosts(ctx context.Context, page int, search string) ([]models.NewsPost, error) {
	return s.store.News.ListPosts(ctx, pageOffset(page, economy.NewsPostsPageSize), economy.NewsPostsPageSize, strings.TrimSpace(search))
}

func (s *LocalNewsService) GetPost(ctx context.Context, postID uint) (*models.NewsPost, error) {
	return s.store.News.GetPost(ctx, postID)
}

func (s *LocalNewsService) requireDeveloper(ctx context.Context, userID uint) error {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsDeveloper {
		return apperrors.NewForbidden("Only developers can publish news")
	}
	return nil
}

func (s *LocalNewsService) CreatePost(ctx context.Context, authorID uint, content string) (*models.NewsPost, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidation("Post content is required")
	}
	if err := s.requireDeveloper(ctx, authorID); err != nil {
		return nil, err
	}
	post := &models.NewsPost{AuthorID: authorID, Content: content, UploadedOn: time.Now().UTC()}
	if err := s.store.News.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *LocalNewsService) ownPost(ctx context.Context, store *repositories.Store, postID, userID uint) error {
	post, err := store.News.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return apperrors.NewForbidden("News post %d belongs to another author", postID)
	}
	return nil
}

func (s *LocalNewsService) UpdatePost(ctx context.Context, postID, authorID uint, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return apperrors.NewValidation("Post content is required")
	}
	if err := s.ownPost(ctx, s.store, postID, authorID); err != nil {
		return err
	}
	return s.store.News.UpdatePostContent(ctx, postID, content)
}

func (s *LocalNewsService) DeletePost(ctx context.Context, postID, authorID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := s.ownPost(ctx, tx, postID, authorID); err != nil {
			return err
		}
		return tx.News.DeletePost(ctx, postID)
	})
}

func (s *LocalNewsService) LikePost(ctx context.Context, postID, userID uint) error {
	return s.rate(ctx, postID, userID, true)
}

func (s *LocalNewsService) DislikePost(ctx context.Context, postID, userID uint) error {
	return s.rate(ctx, postID, userID, false)
}

func ratingDeltas(like bool, sign int) (int, int) {
	if like {
		return sign, 0
	}
	return 0, sign
}

// rate applies a like or dislike. Repeating the same rating takes it back,
// the opposite rating replaces it.
func (s *LocalNewsService) rate(ctx context.Context, postID, userID uint, like bool) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.News.GetPost(ctx, postID); err != nil {
			return err
		}
		existing, err := tx.News.GetRating(ctx, postID, userID)
		if err != nil {
			return err
		}

		switch {
		case existing == nil:
			if err := tx.News.CreateRating(ctx, &models.NewsRating{PostID: postID, AuthorID: userID, IsLike: like}); err != nil {
				return err
			}
			likes, dislikes := ratingDeltas(like, 1)
			return tx.News.AdjustCounters(ctx, postID, likes, dislikes, 0)
		case existing.IsLike == like:
			removed, err := tx.News.DeleteRating(ctx, postID, userID, like)
			if err != nil || !removed {
				return err
			}
			likes, dislikes := ratingDeltas(like, -1)
			return tx.News.AdjustCounters(ctx, postID, likes, dislikes, 0)
		default:
			changed, err := tx.News.UpdateRating(ctx, postID, userID, like)
			if err != nil || !changed {
				return err
			}
			likes, dislikes := ratingDeltas(like, 1)
			oldLikes, oldDislikes := ratingDeltas(existing.IsLike, -1)
			return tx.News.AdjustCounters(ctx, postID, likes+oldLikes, dislikes+oldDislikes, 0)
		}
	})
}

func (s *LocalNewsService) RemoveRating(ctx context.Context, postID, userID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		existing, err := tx.News.GetRating(ctx, postID, userID)
		if err != nil || existing == nil {
			return err
		}
		removed, err := tx.News.DeleteRating(ctx, postID, userID, existing.IsLike)
		if err != nil || !removed {
			return err
		}
		likes, dislikes := ratingDeltas(existing.IsLike, -1)
		return tx.News.AdjustCounters(ctx, postID, likes, dislikes, 0)
	})
}

func (s *LocalNewsService) GetComments(ctx context.Context, postID uint, page int) ([]models.NewsComment, error) {
	return s.store.News.ListComments(ctx, postID, pageOffset(page, economy.NewsCommentsPageSize), economy.NewsCommentsPageSize)
}

func (s *LocalNewsService) CreateComment(ctx context.Context, postID, authorID uint, content string) (*models.NewsComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidation("Comment content is required")
	}
	comment := &models.NewsComment{PostID: postID, AuthorID: authorID, Content: content, CommentDate: time.Now().UTC()}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.News.GetPost(ctx, postID); err != nil {
			return err
		}
		if err := tx.News.CreateComment(ctx, comment); err != nil {
			return err
		}
		return tx.News.AdjustCounters(ctx, postID, 0, 0, 1)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func ownComment(comment *models.NewsComment, userID uint) error {
	if comment.AuthorID != userID {
		return apperrors.NewForbidden("Comment %d belongs to another user", comment.ID)
	}
	return nil
}

func (s *LocalNewsService) UpdateComment(ctx context.Context, commentID, authorID uint, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return apperrors.NewValidation("Comment content is required")
	}
	comment, err := s.store.News.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err := ownComment(comment, authorID); err != nil {
		return err
	}
	return s.store.News.UpdateComment(ctx, commentID, content)
}

func (s *LocalNewsService) DeleteComment(ctx context.Context, commentID, authorID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		comment, err := tx.News.GetComment(ctx, commentID)
		if err != nil {
			return err
		}
		if err := ownComment(comment, authorID); err != nil {
			return err
		}
		if err := tx.News.DeleteComment(ctx, commentID); err != nil {
			return err
		}
		return tx.News.AdjustCounters(ctx, comment.PostID, 0, 0, -1)
	})
}

package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"
	"strings"

	"gorm.io/gorm"
)

type NewsRepository struct {
	DB *gorm.DB
}

// ListPosts pages through posts newest first, filtered on content when search is set
func (r *NewsRepository) ListPosts(ctx context.Context, offset, limit int, search string) ([]models.NewsPost, error) {
	q := r.DB.WithContext(ctx).Order("uploaded_on DESC, id DESC").Offset(offset).Limit(limit)
	if search != "" {
		q = q.Where("LOWER(content) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	posts := []models.NewsPost{}
	return posts, apperrors.FromDB(q.Find(&posts).Error, "news post")
}

func (r *NewsRepository) GetPost(ctx context.Context, id uint) (*models.NewsPost, error) {
	var post models.NewsPost
	if err := r.DB.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "news post")
	}
	return &post, nil
}

func (r *NewsRepository) CreatePost(ctx context.Context, post *models.NewsPost) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Create(post).Error, "news post")
}

func (r *NewsRepository) UpdatePostContent(ctx context.Context, id uint, content string) error {
	result := r.DB.WithContext(ctx).Model(&models.NewsPost{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "news post")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("news post %d not found", id)
	}
	return nil
}

// DeletePost removes the post with its comments and ratings
func (r *NewsRepository) DeletePost(ctx context.Context, id uint) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("post_id = ?", id).Delete(&models.NewsComment{}).Error; err != nil {
		return apperrors.FromDB(err, "news comment")
	}
	if err := db.Where("post_id = ?", id).Delete(&models.NewsRating{}).Error; err != nil {
		return apperrors.FromDB(err, "news rating")
	}
	result := db.Delete(&models.NewsPost{}, id)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "news post")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("news post %d not found", id)
	}
	return nil
}

// GetRating returns the user's rating of a post, or nil when there is none
func (r *NewsRepository) GetRating(ctx context.Context, postID, userID uint) (*models.NewsRating, error) {
	var ratings []models.NewsRating
	err := r.DB.WithContext(ctx).Where("post_id = ? AND author_id = ?", postID, userID).Limit(1).Find(&ratings).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "news rating")
	}
	if len(ratings) == 0 {
		return nil, nil
	}
	return &ratings[0], nil
}

func (r *NewsRepository) CreateRating(ctx context.Context, rating *models.NewsRating) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Create(rating).Error, "news rating")
}

// UpdateRating flips the rating to like, only if it still is the opposite.
// It reports whether a row changed.
func (r *NewsRepository) UpdateRating(ctx context.Context, postID, userID uint, like bool) (bool, error) {
	result := r.DB.WithContext(ctx).Model(&models.NewsRating{}).
		Where("post_id = ? AND author_id = ? AND is_like = ?", postID, userID, !like).
		Update("is_like", like)
	if result.Error != nil {
		return false, apperrors.FromDB(result.Error, "news rating")
	}
	return result.RowsAffected > 0, nil
}

// DeleteRating removes the rating if it still is like, reporting whether a row went
func (r *NewsRepository) DeleteRating(ctx context.Context, postID, userID uint, like bool) (bool, error) {
	result := r.DB.WithContext(ctx).
		Where("post_id = ? AND author_id = ? AND is_like = ?", postID, userID, like).
		Delete(&models.NewsRating{})
	if result.Error != nil {
		return false, apperrors.FromDB(result.Error, "news rating")
	}
	return result.RowsAffected > 0, nil
}

// AdjustCounters adds the deltas to the denormalized post counters
func (r *NewsRepository) AdjustCounters(ctx context.Context, postID uint, likes, dislikes, comments int) error {
	err := r.DB.WithContext(ctx).Model(&models.NewsPost{}).Where("id = ?", postID).Updates(map[string]interface{}{
		"nr_likes":    gorm.Expr("nr_likes + ?", likes),
		"nr_dislikes": gorm.Expr("nr_dislikes + ?", dislikes),
		"nr_comments": gorm.Expr("nr_comments + ?", comments),
	}).Error
	return apperrors.FromDB(err, "news post")
}

func (r *NewsRepository) ListComments(ctx context.Context, postID uint, offset, limit int) ([]models.NewsComment, error) {
	comments := []models.NewsComment{}
	err := r.DB.WithContext(ctx).Where("post_id = ?", postID).
		Order("comment_date ASC, id ASC").Offset(offset).Limit(limit).
		Find(&comments).Error
	return comments, apperrors.FromDB(err, "news comment")
}

func (r *NewsRepository) GetComment(ctx context.Context, id uint) (*models.NewsComment, error) {
	var comment models.NewsComment
	if err := r.DB.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "news comment")
	}
	return &comment, nil
}

func (r *NewsRepository) CreateComment(ctx context.Context, comment *models.NewsComment) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Create(comment).Error, "news comment")
}

func (r *NewsRepository) UpdateComment(ctx context.Context, id uint, content string) error {
	err := r.DB.WithContext(ctx).Model(&models.NewsComment{}).Where("id = ?", id).Update("content", content).Error
	return apperrors.FromDB(err, "news comment")
}

func (r *NewsRepository) DeleteComment(ctx context.Context, id uint) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Delete(&models.NewsComment{}, id).Error, "news comment")
}

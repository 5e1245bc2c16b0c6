package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ForumFilter narrows ListPosts
type ForumFilter struct {
	Offset       int
	Limit        int
	PositiveOnly bool
	GameID       *uint
	Search       string
}

type ForumRepository struct {
	DB *gorm.DB
}

func (r *ForumRepository) ListPosts(ctx context.Context, f ForumFilter) ([]models.ForumPost, error) {
	q := r.DB.WithContext(ctx)
	if f.PositiveOnly {
		q = q.Where("score >= ?", 0)
	}
	if f.GameID != nil {
		q = q.Where("game_id = ?", *f.GameID)
	}
	if f.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	posts := []models.ForumPost{}
	err := q.Order("created_at DESC, id DESC").Offset(f.Offset).Limit(f.Limit).Find(&posts).Error
	return posts, apperrors.FromDB(err, "forum post")
}

// TopPosts returns the best scored posts created since the given time
func (r *ForumRepository) TopPosts(ctx context.Context, since time.Time, limit int) ([]models.ForumPost, error) {
	posts := []models.ForumPost{}
	err := r.DB.WithContext(ctx).Where("created_at >= ?", since).
		Order("score DESC, created_at DESC").Limit(limit).
		Find(&posts).Error
	return posts, apperrors.FromDB(err, "forum post")
}

func (r *ForumRepository) GetPost(ctx context.Context, id uint) (*models.ForumPost, error) {
	var post models.ForumPost
	if err := r.DB.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "forum post")
	}
	return &post, nil
}

func (r *ForumRepository) CreatePost(ctx context.Context, post *models.ForumPost) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Create(post).Error, "forum post")
}

// DeletePost removes the post, its comments and every vote on either
func (r *ForumRepository) DeletePost(ctx context.Context, id uint) error {
	db := r.DB.WithContext(ctx)
	commentIDs := db.Model(&models.ForumComment{}).Select("id").Where("post_id = ?", id)
	if err := db.Where("comment_id IN (?)", commentIDs).Delete(&models.ForumCommentVote{}).Error; err != nil {
		return apperrors.FromDB(err, "forum comment vote")
	}
	if err := db.Where("post_id = ?", id).Delete(&models.ForumComment{}).Error; err != nil {
		return apperrors.FromDB(err, "forum comment")
	}
	if err := db.Where("post_id = ?", id).Delete(&models.ForumPostVote{}).Error; err != nil {
		return apperrors.FromDB(err, "forum post vote")
	}
	result := db.Delete(&models.ForumPost{}, id)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "forum post")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("forum post %d not found", id)
	}
	return nil
}

func (r *ForumRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.ForumPost{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, apperrors.FromDB(err, "forum post")
}

// GetPostVote returns the user's vote on a post, 0 when there is none
func (r *ForumRepository) GetPostVote(ctx context.Context, postID, userID uint) (int, error) {
	var votes []models.ForumPostVote
	err := r.DB.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Limit(1).Find(&votes).Error
	if err != nil || len(votes) == 0 {
		return 0, apperrors.FromDB(err, "forum post vote")
	}
	return votes[0].Value, nil
}

// SetPostVote moves the user's vote from previous to value; 0 removes it.
// It reports whether the ledger changed, so a vote already moved by a
// concurrent request is not counted twice.
func (r *ForumRepository) SetPostVote(ctx context.Context, postID, userID uint, previous, value int) (bool, error) {
	db := r.DB.WithContext(ctx)
	var result *gorm.DB
	switch {
	case value == 0:
		result = db.Where("post_id = ? AND user_id = ? AND value = ?", postID, userID, previous).Delete(&models.ForumPostVote{})
	case previous == 0:
		result = db.Create(&models.ForumPostVote{PostID: postID, UserID: userID, Value: value})
	default:
		result = db.Model(&models.ForumPostVote{}).Where("post_id = ? AND user_id = ? AND value = ?", postID, userID, previous).Update("value", value)
	}
	if result.Error != nil {
		return false, apperrors.FromDB(result.Error, "forum post vote")
	}
	return result.RowsAffected > 0, nil
}

func (r *ForumRepository) AdjustPostScore(ctx context.Context, postID uint, delta int) error {
	err := r.DB.WithContext(ctx).Model(&models.ForumPost{}).Where("id = ?", postID).
		Update("score", gorm.Expr("score + ?", delta)).Error
	return apperrors.FromDB(err, "forum post")
}

func (r *ForumRepository) ListComments(ctx context.Context, postID uint) ([]models.ForumComment, error) {
	comments := []models.ForumComment{}
	err := r.DB.WithContext(ctx).Where("post_id = ?", postID).Order("created_at ASC, id ASC").Find(&comments).Error
	return comments, apperrors.FromDB(err, "forum comment")
}

func (r *ForumRepository) GetComment(ctx context.Context, id uint) (*models.ForumComment, error) {
	var comment models.ForumComment
	if err := r.DB.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "forum comment")
	}
	return &comment, nil
}

func (r *ForumRepository) CreateComment(ctx context.Context, comment *models.ForumComment) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Create(comment).Error, "forum comment")
}

func (r *ForumRepository) DeleteComment(ctx context.Context, id uint) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("comment_id = ?", id).Delete(&models.ForumCommentVote{}).Error; err != nil {
		return apperrors.FromDB(err, "forum comment vote")
	}
	return apperrors.FromDB(db.Delete(&models.ForumComment{}, id).Error, "forum comment")
}

func (r *ForumRepository) GetCommentVote(ctx context.Context, commentID, userID uint) (int, error) {
	var votes []models.ForumCommentVote
	err := r.DB.WithContext(ctx).Where("comment_id = ? AND user_id = ?", commentID, userID).Limit(1).Find(&votes).Error
	if err != nil || len(votes) == 0 {
		return 0, apperrors.FromDB(err, "forum comment vote")
	}
	return votes[0].Value, nil
}

func (r *ForumRepository) SetCommentVote(ctx context.Context, commentID, userID uint, previous, value int) (bool, error) {
	db := r.DB.WithContext(ctx)
	var result *gorm.DB
	switch {
	case value == 0:
		result = db.Where("comment_id = ? AND user_id = ? AND value = ?", commentID, userID, previous).Delete(&models.ForumCommentVote{})
	case previous == 0:
		result = db.Create(&models.ForumCommentVote{CommentID: commentID, UserID: userID, Value: value})
	default:
		result = db.Model(&models.ForumCommentVote{}).Where("comment_id = ? AND user_id = ? AND value = ?", commentID, userID, previous).Update("value", value)
	}
	if result.Error != nil {
		return false, apperrors.FromDB(result.Error, "forum comment vote")
	}
	return result.RowsAffected > 0, nil
}

func (r *ForumRepository) AdjustCommentScore(ctx context.Context, commentID uint, delta int) error {
	err := r.DB.WithContext(ctx).Model(&models.ForumComment{}).Where("id = ?", commentID).
		Update("score", gorm.Expr("score + ?", delta)).Error
	return apperrors.FromDB(err, "forum comment")
}

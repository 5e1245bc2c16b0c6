package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Review orderings accepted by ListForGame
var reviewOrders = map[string]string{
	"newest":  "created_at DESC, id DESC",
	"oldest":  "created_at ASC, id ASC",
	"helpful": "helpful_votes DESC, id DESC",
	"funny":   "funny_votes DESC, id DESC",
	"rating":  "rating DESC, id DESC",
}

type ReviewRepository struct {
	DB *gorm.DB
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Create(review).Error, "review")
}

func (r *ReviewRepository) Get(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "review")
	}
	return &review, nil
}

func (r *ReviewRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.DB.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "review")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("review %d not found", id)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("review_id = ?", id).Delete(&models.ReviewVote{}).Error; err != nil {
		return apperrors.FromDB(err, "review vote")
	}
	result := db.Delete(&models.Review{}, id)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "review")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("review %d not found", id)
	}
	return nil
}

// ListForGame returns a game's reviews in the requested order, optionally
// filtered on the recommendation
func (r *ReviewRepository) ListForGame(ctx context.Context, gameID uint, sortBy string, recommended *bool) ([]models.Review, error) {
	order, ok := reviewOrders[sortBy]
	if !ok {
		order = reviewOrders["newest"]
	}
	q := r.DB.WithContext(ctx).Where("game_id = ?", gameID)
	if recommended != nil {
		q = q.Where("is_recommended = ?", *recommended)
	}
	reviews := []models.Review{}
	err := q.Order(order).Find(&reviews).Error
	return reviews, apperrors.FromDB(err, "review")
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&reviews).Error
	return reviews, apperrors.FromDB(err, "review")
}

func (r *ReviewRepository) Stats(ctx context.Context, gameID uint) (*models.ReviewStats, error) {
	db := r.DB.WithContext(ctx)
	stats := &models.ReviewStats{}

	if err := db.Model(&models.Review{}).Where("game_id = ?", gameID).Count(&stats.TotalReviews).Error; err != nil {
		return nil, apperrors.FromDB(err, "review")
	}
	if stats.TotalReviews == 0 {
		return stats, nil
	}
	if err := db.Model(&models.Review{}).Where("game_id = ? AND is_recommended = ?", gameID, true).Count(&stats.PositiveReviews).Error; err != nil {
		return nil, apperrors.FromDB(err, "review")
	}
	if err := db.Model(&models.Review{}).Where("game_id = ?", gameID).Select("COALESCE(AVG(rating), 0)").Scan(&stats.AverageRating).Error; err != nil {
		return nil, apperrors.FromDB(err, "review")
	}

	stats.NegativeReviews = stats.TotalReviews - stats.PositiveReviews
	stats.PositivePercentage = float64(stats.PositiveReviews) * 100 / float64(stats.TotalReviews)
	return stats, nil
}

func (r *ReviewRepository) HasVote(ctx context.Context, reviewID, userID uint, kind string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.ReviewVote{}).
		Where("review_id = ? AND user_id = ? AND kind = ?", reviewID, userID, kind).
		Count(&count).Error
	return count > 0, apperrors.FromDB(err, "review vote")
}

func (r *ReviewRepository) AddVote(ctx context.Context, reviewID, userID uint, kind string) error {
	err := r.DB.WithContext(ctx).Create(&models.ReviewVote{ReviewID: reviewID, UserID: userID, Kind: kind}).Error
	return apperrors.FromDB(err, "review vote")
}

// RemoveVote deletes the ledger row, reporting whether this call removed it
func (r *ReviewRepository) RemoveVote(ctx context.Context, reviewID, userID uint, kind string) (bool, error) {
	result := r.DB.WithContext(ctx).
		Where("review_id = ? AND user_id = ? AND kind = ?", reviewID, userID, kind).
		Delete(&models.ReviewVote{})
	if result.Error != nil {
		return false, apperrors.FromDB(result.Error, "review vote")
	}
	return result.RowsAffected > 0, nil
}

// AdjustCounter adds delta to helpful_votes or funny_votes
func (r *ReviewRepository) AdjustCounter(ctx context.Context, reviewID uint, column string, delta int) error {
	if column != "helpful_votes" && column != "funny_votes" {
		return apperrors.NewInternal(fmt.Errorf("column %q", column), "unknown review counter")
	}
	err := r.DB.WithContext(ctx).Model(&models.Review{}).Where("id = ?", reviewID).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
	return apperrors.FromDB(err, "review")
}

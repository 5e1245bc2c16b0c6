package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"
	"time"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func (r *AchievementRepository) List(ctx context.Context) ([]models.Achievement, error) {
	achievements := []models.Achievement{}
	err := r.DB.WithContext(ctx).Order("type, threshold").Find(&achievements).Error
	return achievements, apperrors.FromDB(err, "achievement")
}

func (r *AchievementRepository) ListUnlocked(ctx context.Context, userID uint) ([]models.UserAchievement, error) {
	unlocked := []models.UserAchievement{}
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("unlocked_at").Find(&unlocked).Error
	return unlocked, apperrors.FromDB(err, "achievement")
}

// Unlock records the achievement; unlocking twice is a Conflict
func (r *AchievementRepository) Unlock(ctx context.Context, userID, achievementID uint, at time.Time) error {
	err := r.DB.WithContext(ctx).Create(&models.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    at,
	}).Error
	return apperrors.FromDB(err, "achievement unlock")
}

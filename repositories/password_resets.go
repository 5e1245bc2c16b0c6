package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"
	"time"

	"gorm.io/gorm"
)

type PasswordResetRepository struct {
	DB *gorm.DB
}

// Create stores a new code and discards the user's older ones
func (r *PasswordResetRepository) Create(ctx context.Context, code *models.PasswordResetCode) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("user_id = ?", code.UserID).Delete(&models.PasswordResetCode{}).Error; err != nil {
		return apperrors.FromDB(err, "reset code")
	}
	return apperrors.FromDB(db.Create(code).Error, "reset code")
}

// GetValid returns the unused, unexpired code for the user matching code
func (r *PasswordResetRepository) GetValid(ctx context.Context, userID uint, code string, now time.Time) (*models.PasswordResetCode, error) {
	var reset models.PasswordResetCode
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND code = ? AND used = ? AND expires_at > ?", userID, code, false, now).
		First(&reset).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "reset code")
	}
	return &reset, nil
}

func (r *PasswordResetRepository) MarkUsed(ctx context.Context, id uint) error {
	err := r.DB.WithContext(ctx).Model(&models.PasswordResetCode{}).Where("id = ?", id).Update("used", true).Error
	return apperrors.FromDB(err, "reset code")
}

func (r *PasswordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.DB.WithContext(ctx).Where("expires_at <= ? OR used = ?", now, true).Delete(&models.PasswordResetCode{})
	return result.RowsAffected, apperrors.FromDB(result.Error, "reset code")
}

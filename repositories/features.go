package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"
	"time"

	"gorm.io/gorm"
)

type FeatureRepository struct {
	DB *gorm.DB
}

func (r *FeatureRepository) List(ctx context.Context) ([]models.Feature, error) {
	features := []models.Feature{}
	err := r.DB.WithContext(ctx).Order("type, price, id").Find(&features).Error
	return features, apperrors.FromDB(err, "feature")
}

func (r *FeatureRepository) GetByID(ctx context.Context, id uint) (*models.Feature, error) {
	var feature models.Feature
	if err := r.DB.WithContext(ctx).First(&feature, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "feature")
	}
	return &feature, nil
}

// ListForUser returns the whole catalog with the user's owned and equipped flags
func (r *FeatureRepository) ListForUser(ctx context.Context, userID uint) ([]models.UserFeature, error) {
	features, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var owned []models.FeatureUser
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&owned).Error; err != nil {
		return nil, apperrors.FromDB(err, "feature")
	}
	ownership := make(map[uint]models.FeatureUser, len(owned))
	for _, fu := range owned {
		ownership[fu.FeatureID] = fu
	}

	result := make([]models.UserFeature, 0, len(features))
	for _, f := range features {
		fu, ok := ownership[f.ID]
		result = append(result, models.UserFeature{Feature: f, Owned: ok, Equipped: ok && fu.Equipped})
	}
	return result, nil
}

func (r *FeatureRepository) IsOwned(ctx context.Context, userID, featureID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.FeatureUser{}).
		Where("user_id = ? AND feature_id = ?", userID, featureID).
		Count(&count).Error
	return count > 0, apperrors.FromDB(err, "feature")
}

// AddOwnership records a purchase. A second purchase violates the primary key.
func (r *FeatureRepository) AddOwnership(ctx context.Context, userID, featureID uint) error {
	err := r.DB.WithContext(ctx).Create(&models.FeatureUser{
		UserID:      userID,
		FeatureID:   featureID,
		PurchasedAt: time.Now().UTC(),
	}).Error
	return apperrors.FromDB(err, "feature purchase")
}

func (r *FeatureRepository) SetEquipped(ctx context.Context, userID, featureID uint, equipped bool) error {
	result := r.DB.WithContext(ctx).Model(&models.FeatureUser{}).
		Where("user_id = ? AND feature_id = ?", userID, featureID).
		Update("equipped", equipped)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "feature")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("feature %d is not owned by user %d", featureID, userID)
	}
	return nil
}

// UnequipType clears the equipped flag on every owned feature of one type
func (r *FeatureRepository) UnequipType(ctx context.Context, userID uint, featureType string) error {
	db := r.DB.WithContext(ctx)
	err := db.Model(&models.FeatureUser{}).
		Where("user_id = ? AND feature_id IN (?)", userID,
			db.Model(&models.Feature{}).Select("id").Where("type = ?", featureType)).
		Update("equipped", false).Error
	return apperrors.FromDB(err, "feature")
}

func (r *FeatureRepository) ListEquipped(ctx context.Context, userID uint) ([]models.Feature, error) {
	features := []models.Feature{}
	err := r.DB.WithContext(ctx).
		Joins("JOIN feature_users ON feature_users.feature_id = features.id").
		Where("feature_users.user_id = ? AND feature_users.equipped = ?", userID, true).
		Order("features.type").
		Find(&features).Error
	return features, apperrors.FromDB(err, "feature")
}

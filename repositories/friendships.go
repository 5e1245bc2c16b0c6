package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"
	"errors"

	"gorm.io/gorm"
)

type FriendshipRepository struct {
	DB *gorm.DB
}

// Add stores the friendship for the unordered pair
func (r *FriendshipRepository) Add(ctx context.Context, userID, friendID uint) error {
	friendship := models.Friendship{UserID: userID, FriendID: friendID}
	err := r.DB.WithContext(ctx).Create(&friendship).Error
	if errors.Is(err, models.ErrSelfFriendship) {
		return apperrors.NewValidation("You cannot add yourself as a friend")
	}
	return apperrors.FromDB(err, "friendship")
}

// Remove deletes the friendship for the unordered pair. Missing pairs are NotFound.
func (r *FriendshipRepository) Remove(ctx context.Context, userID, friendID uint) error {
	a, b := models.CanonicalPair(userID, friendID)
	result := r.DB.WithContext(ctx).Where("user_id = ? AND friend_id = ?", a, b).Delete(&models.Friendship{})
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "friendship")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("friendship not found")
	}
	return nil
}

func (r *FriendshipRepository) Exists(ctx context.Context, userID, friendID uint) (bool, error) {
	a, b := models.CanonicalPair(userID, friendID)
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", a, b).
		Count(&count).Error
	if err != nil {
		return false, apperrors.FromDB(err, "friendship")
	}
	return count > 0, nil
}

// ListFriendIDs returns the ids on the other side of every friendship of userID
func (r *FriendshipRepository) ListFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var friendships []models.Friendship
	err := r.DB.WithContext(ctx).Where("user_id = ? OR friend_id = ?", userID, userID).Find(&friendships).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "friendship")
	}

	ids := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		ids = append(ids, f.Other(userID))
	}
	return ids, nil
}

func (r *FriendshipRepository) Count(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Friendship{}).
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Count(&count).Error
	return count, apperrors.FromDB(err, "friendship")
}

package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"

	"gorm.io/gorm"
)

type FriendRequestRepository struct {
	DB *gorm.DB
}

func (r *FriendRequestRepository) Create(ctx context.Context, request *models.FriendRequest) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Create(request).Error, "friend request")
}

func (r *FriendRequestRepository) Get(ctx context.Context, sender, receiver string) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.DB.WithContext(ctx).
		Where("sender_username = ? AND receiver_username = ?", sender, receiver).
		First(&request).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "friend request")
	}
	return &request, nil
}

func (r *FriendRequestRepository) Exists(ctx context.Context, sender, receiver string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.FriendRequest{}).
		Where("sender_username = ? AND receiver_username = ?", sender, receiver).
		Count(&count).Error
	return count > 0, apperrors.FromDB(err, "friend request")
}

// ListReceived returns the pending requests addressed to username, newest first
func (r *FriendRequestRepository) ListReceived(ctx context.Context, username string) ([]models.FriendRequest, error) {
	requests := []models.FriendRequest{}
	err := r.DB.WithContext(ctx).
		Where("receiver_username = ?", username).
		Order("request_date DESC").
		Find(&requests).Error
	return requests, apperrors.FromDB(err, "friend request")
}

// ListSent returns the pending requests sent by username, newest first
func (r *FriendRequestRepository) ListSent(ctx context.Context, username string) ([]models.FriendRequest, error) {
	requests := []models.FriendRequest{}
	err := r.DB.WithContext(ctx).
		Where("sender_username = ?", username).
		Order("request_date DESC").
		Find(&requests).Error
	return requests, apperrors.FromDB(err, "friend request")
}

// Delete removes the request, reporting whether one existed
func (r *FriendRequestRepository) Delete(ctx context.Context, sender, receiver string) (bool, error) {
	result := r.DB.WithContext(ctx).
		Where("sender_username = ? AND receiver_username = ?", sender, receiver).
		Delete(&models.FriendRequest{})
	if result.Error != nil {
		return false, apperrors.FromDB(result.Error, "friend request")
	}
	return result.RowsAffected > 0, nil
}

// DeleteBetween removes pending requests in both directions
func (r *FriendRequestRepository) DeleteBetween(ctx context.Context, a, b string) error {
	err := r.DB.WithContext(ctx).
		Where("(sender_username = ? AND receiver_username = ?) OR (sender_username = ? AND receiver_username = ?)", a, b, b, a).
		Delete(&models.FriendRequest{}).Error
	return apperrors.FromDB(err, "friend request")
}

// RenameUser rewrites pending requests after a username change
func (r *FriendRequestRepository) RenameUser(ctx context.Context, oldUsername, newUsername string) error {
	db := r.DB.WithContext(ctx)
	err := db.Model(&models.FriendRequest{}).Where("sender_username = ?", oldUsername).
		Update("sender_username", newUsername).Error
	if err != nil {
		return apperrors.FromDB(err, "friend request")
	}
	err = db.Model(&models.FriendRequest{}).Where("receiver_username = ?", oldUsername).
		Update("receiver_username", newUsername).Error
	return apperrors.FromDB(err, "friend request")
}

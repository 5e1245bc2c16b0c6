package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Create(user).Error, "user")
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "user")
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, apperrors.FromDB(err, "user")
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, apperrors.FromDB(err, "user")
	}
	return &user, nil
}

// GetByEmailOrUsername resolves the login identifier
func (r *UserRepository) GetByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("LOWER(email) = ? OR username = ?", strings.ToLower(identifier), identifier).
		First(&user).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "user")
	}
	return &user, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Order("username").Find(&users).Error
	return users, apperrors.FromDB(err, "user")
}

// List returns users whose username contains search, or all users
func (r *UserRepository) List(ctx context.Context, search string) ([]models.User, error) {
	users := []models.User{}
	q := r.DB.WithContext(ctx).Order("username")
	if search != "" {
		q = q.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	err := q.Find(&users).Error
	return users, apperrors.FromDB(err, "user")
}

// UpdateFields applies a partial update. Missing rows are NotFound.
func (r *UserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "user")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("user %d not found", id)
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{"last_login": at})
}

// Delete removes the user and every row that belongs only to them
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	db := r.DB.WithContext(ctx)
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return apperrors.FromDB(err, "user")
	}

	cleanup := []struct {
		model interface{}
		where string
		args  []interface{}
	}{
		{&models.Session{}, "user_id = ?", []interface{}{id}},
		{&models.PasswordResetCode{}, "user_id = ?", []interface{}{id}},
		{&models.Friendship{}, "user_id = ? OR friend_id = ?", []interface{}{id, id}},
		{&models.FriendRequest{}, "sender_username = ? OR receiver_username = ?", []interface{}{user.Username, user.Username}},
		{&models.Wallet{}, "user_id = ?", []interface{}{id}},
		{&models.FeatureUser{}, "user_id = ?", []interface{}{id}},
		{&models.CollectionGame{}, "collection_id IN (?)", []interface{}{db.Model(&models.Collection{}).Select("id").Where("user_id = ?", id)}},
		{&models.Collection{}, "user_id = ?", []interface{}{id}},
		{&models.OwnedGame{}, "user_id = ?", []interface{}{id}},
		{&models.UserAchievement{}, "user_id = ?", []interface{}{id}},
		{&models.ReviewVote{}, "user_id = ?", []interface{}{id}},
		{&models.NewsRating{}, "author_id = ?", []interface{}{id}},
		{&models.ForumPostVote{}, "user_id = ?", []interface{}{id}},
		{&models.ForumCommentVote{}, "user_id = ?", []interface{}{id}},
	}
	for _, c := range cleanup {
		if err := db.Where(c.where, c.args...).Delete(c.model).Error; err != nil {
			return apperrors.FromDB(err, "user data")
		}
	}

	return apperrors.FromDB(db.Delete(&models.User{}, id).Error, "user")
}

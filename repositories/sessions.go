package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Create(session).Error, "session")
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, apperrors.FromDB(err, "session")
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error, "session")
}

func (r *SessionRepository) ListIDsForUser(ctx context.Context, userID uint) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&models.Session{}).Where("user_id = ?", userID).Pluck("id", &ids).Error
	return ids, apperrors.FromDB(err, "session")
}

func (r *SessionRepository) DeleteForUser(ctx context.Context, userID uint) ([]string, error) {
	var ids []string
	db := r.DB.WithContext(ctx)
	if err := db.Model(&models.Session{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return nil, apperrors.FromDB(err, "session")
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		return nil, apperrors.FromDB(err, "session")
	}
	return ids, nil
}

// DeleteExpired removes every session whose expiry is not after now
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.DB.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.Session{})
	return result.RowsAffected, apperrors.FromDB(result.Error, "session")
}

func (r *SessionRepository) UpdateLastSeen(ctx context.Context, id string, at time.Time) error {
	err := r.DB.WithContext(ctx).Model(&models.Session{}).Where("id = ?", id).Update("last_seen", at).Error
	return apperrors.FromDB(err, "session")
}

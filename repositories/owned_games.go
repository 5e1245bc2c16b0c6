package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"

	"gorm.io/gorm"
)

type OwnedGameRepository struct {
	DB *gorm.DB
}

func (r *OwnedGameRepository) Create(ctx context.Context, game *models.OwnedGame) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Create(game).Error, "owned game")
}

func (r *OwnedGameRepository) Get(ctx context.Context, id uint) (*models.OwnedGame, error) {
	var game models.OwnedGame
	if err := r.DB.WithContext(ctx).First(&game, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "owned game")
	}
	return &game, nil
}

func (r *OwnedGameRepository) ListByUser(ctx context.Context, userID uint) ([]models.OwnedGame, error) {
	games := []models.OwnedGame{}
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("title").Find(&games).Error
	return games, apperrors.FromDB(err, "owned game")
}

// Delete removes the game from the library and from every collection
func (r *OwnedGameRepository) Delete(ctx context.Context, id uint) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("game_id = ?", id).Delete(&models.CollectionGame{}).Error; err != nil {
		return apperrors.FromDB(err, "collection game")
	}
	result := db.Delete(&models.OwnedGame{}, id)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "owned game")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("owned game %d not found", id)
	}
	return nil
}

func (r *OwnedGameRepository) Count(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.OwnedGame{}).Where("user_id = ?", userID).Count(&count).Error
	return count, apperrors.FromDB(err, "owned game")
}

package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"
	"time"

	"gorm.io/gorm"
)

type CollectionRepository struct {
	DB *gorm.DB
}

func (r *CollectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	return apperrors.FromDB(r.DB.WithContext(ctx).Create(collection).Error, "collection")
}

func (r *CollectionRepository) Get(ctx context.Context, id uint) (*models.Collection, error) {
	var collection models.Collection
	if err := r.DB.WithContext(ctx).First(&collection, id).Error; err != nil {
		return nil, apperrors.FromDB(err, "collection")
	}
	return &collection, nil
}

func (r *CollectionRepository) ListByUser(ctx context.Context, userID uint, publicOnly bool) ([]models.Collection, error) {
	collections := []models.Collection{}
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if publicOnly {
		q = q.Where("is_public = ?", true)
	}
	err := q.Order("created_at, id").Find(&collections).Error
	return collections, apperrors.FromDB(err, "collection")
}

func (r *CollectionRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.DB.WithContext(ctx).Model(&models.Collection{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "collection")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("collection %d not found", id)
	}
	return nil
}

// Delete removes the collection and its join rows; the games stay owned
func (r *CollectionRepository) Delete(ctx context.Context, id uint) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("collection_id = ?", id).Delete(&models.CollectionGame{}).Error; err != nil {
		return apperrors.FromDB(err, "collection game")
	}
	result := db.Delete(&models.Collection{}, id)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "collection")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("collection %d not found", id)
	}
	return nil
}

// AddGame links an owned game. Adding the same game twice is a Conflict.
func (r *CollectionRepository) AddGame(ctx context.Context, collectionID, gameID uint) error {
	err := r.DB.WithContext(ctx).Create(&models.CollectionGame{
		CollectionID: collectionID,
		GameID:       gameID,
		AddedAt:      time.Now().UTC(),
	}).Error
	return apperrors.FromDB(err, "game in collection")
}

func (r *CollectionRepository) RemoveGame(ctx context.Context, collectionID, gameID uint) error {
	result := r.DB.WithContext(ctx).
		Where("collection_id = ? AND game_id = ?", collectionID, gameID).
		Delete(&models.CollectionGame{})
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "game in collection")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("game %d is not in collection %d", gameID, collectionID)
	}
	return nil
}

func (r *CollectionRepository) ListGames(ctx context.Context, collectionID uint) ([]models.OwnedGame, error) {
	games := []models.OwnedGame{}
	err := r.DB.WithContext(ctx).
		Joins("JOIN collection_games ON collection_games.game_id = owned_games.id").
		Where("collection_games.collection_id = ?", collectionID).
		Order("owned_games.title").
		Find(&games).Error
	return games, apperrors.FromDB(err, "game in collection")
}

// ListGamesNotIn returns the user's owned games missing from the collection
func (r *CollectionRepository) ListGamesNotIn(ctx context.Context, collectionID, userID uint) ([]models.OwnedGame, error) {
	games := []models.OwnedGame{}
	db := r.DB.WithContext(ctx)
	err := db.Where("user_id = ? AND id NOT IN (?)", userID,
		db.Model(&models.CollectionGame{}).Select("game_id").Where("collection_id = ?", collectionID)).
		Order("title").
		Find(&games).Error
	return games, apperrors.FromDB(err, "owned game")
}

package services

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"SteamProfile/repositories"
	"context"
	"strings"
)

// LocalCollectionsService implements CollectionsService. Private collections
// are visible to their owner only.
type LocalCollectionsService struct {
	store *repositories.Store
}

func NewCollectionsService(store *repositories.Store) *LocalCollectionsService {
	return &LocalCollectionsService{store: store}
}

func (s *LocalCollectionsService) GetAllCollections(ctx context.Context, userID uint) ([]models.Collection, error) {
	return s.store.Collections.ListByUser(ctx, userID, false)
}

func (s *LocalCollectionsService) GetPublicCollections(ctx context.Context, userID uint) ([]models.Collection, error) {
	return s.store.Collections.ListByUser(ctx, userID, true)
}

func (s *LocalCollectionsService) GetCollection(ctx context.Context, collectionID, viewerID uint) (*models.Collection, error) {
	collection, err := s.store.Collections.Get(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if !collection.IsPublic && collection.UserID != viewerID {
		return nil, apperrors.NewNotFound("collection %d not found", collectionID)
	}
	return collection, nil
}

// owned loads a collection the user may modify
func owned(ctx context.Context, store *repositories.Store, collectionID, userID uint) (*models.Collection, error) {
	collection, err := store.Collections.Get(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if collection.UserID != userID {
		return nil, apperrors.NewForbidden("Collection %d belongs to another user", collectionID)
	}
	return collection, nil
}

func (s *LocalCollectionsService) CreateCollection(ctx context.Context, userID uint, input CollectionInput) (*models.Collection, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidation("Collection name is required")
	}
	collection := &models.Collection{
		UserID:       userID,
		Name:         name,
		CoverPicture: input.CoverPicture,
		IsPublic:     input.IsPublic,
	}
	err := s.store.Collections.Create(ctx, collection)
	if apperrors.IsConflict(err) {
		return nil, apperrors.NewConflict("A collection named %s already exists", name)
	}
	if err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *LocalCollectionsService) UpdateCollection(ctx context.Context, collectionID, userID uint, input CollectionInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return apperrors.NewValidation("Collection name is required")
	}
	if _, err := owned(ctx, s.store, collectionID, userID); err != nil {
		return err
	}
	err := s.store.Collections.Update(ctx, collectionID, map[string]interface{}{
		"name":          name,
		"cover_picture": input.CoverPicture,
		"is_public":     input.IsPublic,
	})
	if apperrors.IsConflict(err) {
		return apperrors.NewConflict("A collection named %s already exists", name)
	}
	return err
}

func (s *LocalCollectionsService) DeleteCollection(ctx context.Context, collectionID, userID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := owned(ctx, tx, collectionID, userID); err != nil {
			return err
		}
		return tx.Collections.Delete(ctx, collectionID)
	})
}

// AddGameToCollection links one of the user's owned games. The ownership
// checks and the insert share a transaction.
func (s *LocalCollectionsService) AddGameToCollection(ctx context.Context, collectionID, gameID, userID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := owned(ctx, tx, collectionID, userID); err != nil {
			return err
		}
		game, err := tx.OwnedGames.Get(ctx, gameID)
		if err != nil {
			return err
		}
		if game.UserID != userID {
			return apperrors.NewValidation("Game %d is not owned by this user", gameID)
		}
		err = tx.Collections.AddGame(ctx, collectionID, gameID)
		if apperrors.IsConflict(err) {
			return apperrors.NewConflict("Game %d is already in the collection", gameID)
		}
		return err
	})
}

func (s *LocalCollectionsService) RemoveGameFromCollection(ctx context.Context, collectionID, gameID, userID uint) error {
	if _, err := owned(ctx, s.store, collectionID, userID); err != nil {
		return err
	}
	return s.store.Collections.RemoveGame(ctx, collectionID, gameID)
}

func (s *LocalCollectionsService) GetGamesInCollection(ctx context.Context, collectionID, viewerID uint) ([]models.OwnedGame, error) {
	if _, err := s.GetCollection(ctx, collectionID, viewerID); err != nil {
		return nil, err
	}
	return s.store.Collections.ListGames(ctx, collectionID)
}

func (s *LocalCollectionsService) GetGamesNotInCollection(ctx context.Context, collectionID, userID uint) ([]models.OwnedGame, error) {
	if _, err := owned(ctx, s.store, collectionID, userID); err != nil {
		return nil, err
	}
	return s.store.Collections.ListGamesNotIn(ctx, collectionID, userID)
}

package services

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"SteamProfile/repositories"
	"context"
	"strings"
	"time"
)

type LocalOwnedGamesService struct {
	store *repositories.Store
}

func NewOwnedGamesService(store *repositories.Store) *LocalOwnedGamesService {
	return &LocalOwnedGamesService{store: store}
}

func (s *LocalOwnedGamesService) GetAllOwnedGames(ctx context.Context, userID uint) ([]models.OwnedGame, error) {
	return s.store.OwnedGames.ListByUser(ctx, userID)
}

func (s *LocalOwnedGamesService) GetOwnedGame(ctx context.Context, gameID uint) (*models.OwnedGame, error) {
	return s.store.OwnedGames.Get(ctx, gameID)
}

func (s *LocalOwnedGamesService) AddOwnedGame(ctx context.Context, userID uint, input OwnedGameInput) (*models.OwnedGame, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidation("Game title is required")
	}
	game := &models.OwnedGame{
		UserID:       userID,
		Title:        title,
		Description:  input.Description,
		CoverPicture: input.CoverPicture,
		AcquiredAt:   time.Now().UTC(),
	}
	if err := s.store.OwnedGames.Create(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// RemoveOwnedGame drops the game from the library and from every collection
func (s *LocalOwnedGamesService) RemoveOwnedGame(ctx context.Context, gameID, userID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		game, err := tx.OwnedGames.Get(ctx, gameID)
		if err != nil {
			return err
		}
		if game.UserID != userID {
			return apperrors.NewForbidden("Game %d belongs to another user", gameID)
		}
		return tx.OwnedGames.Delete(ctx, gameID)
	})
}

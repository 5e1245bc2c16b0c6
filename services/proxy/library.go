package proxy

import (
	models "SteamProfile/models/postgres"
	"SteamProfile/services"
	"context"
	"strconv"
)

type CollectionsServiceProxy struct {
	*ServiceProxy
}

func NewCollectionsServiceProxy(base *ServiceProxy) *CollectionsServiceProxy {
	return &CollectionsServiceProxy{ServiceProxy: base}
}

func (p *CollectionsServiceProxy) list(ctx context.Context, userID uint, publicOnly bool) ([]models.Collection, error) {
	query := userQuery(userID)
	query.Set("publicOnly", strconv.FormatBool(publicOnly))
	collections := []models.Collection{}
	err := p.get(ctx, "/api/Collections", query, &collections)
	return collections, err
}

func (p *CollectionsServiceProxy) GetAllCollections(ctx context.Context, userID uint) ([]models.Collection, error) {
	return p.list(ctx, userID, false)
}

func (p *CollectionsServiceProxy) GetPublicCollections(ctx context.Context, userID uint) ([]models.Collection, error) {
	return p.list(ctx, userID, true)
}

func (p *CollectionsServiceProxy) GetCollection(ctx context.Context, collectionID, viewerID uint) (*models.Collection, error) {
	var collection models.Collection
	if err := p.get(ctx, idPath("/api/Collections/%d", collectionID), userQuery(viewerID), &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

func (p *CollectionsServiceProxy) CreateCollection(ctx context.Context, userID uint, input services.CollectionInput) (*models.Collection, error) {
	var collection models.Collection
	if err := p.post(ctx, "/api/Collections", userQuery(userID), input, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

func (p *CollectionsServiceProxy) UpdateCollection(ctx context.Context, collectionID, userID uint, input services.CollectionInput) error {
	return p.put(ctx, idPath("/api/Collections/%d", collectionID), userQuery(userID), input, nil)
}

func (p *CollectionsServiceProxy) DeleteCollection(ctx context.Context, collectionID, userID uint) error {
	return p.delete(ctx, idPath("/api/Collections/%d", collectionID), userQuery(userID), nil, nil)
}

func (p *CollectionsServiceProxy) AddGameToCollection(ctx context.Context, collectionID, gameID, userID uint) error {
	return p.post(ctx, idPath("/api/Collections/%d/games/%d", collectionID, gameID), userQuery(userID), nil, nil)
}

func (p *CollectionsServiceProxy) RemoveGameFromCollection(ctx context.Context, collectionID, gameID, userID uint) error {
	return p.delete(ctx, idPath("/api/Collections/%d/games/%d", collectionID, gameID), userQuery(userID), nil, nil)
}

func (p *CollectionsServiceProxy) GetGamesInCollection(ctx context.Context, collectionID, viewerID uint) ([]models.OwnedGame, error) {
	games := []models.OwnedGame{}
	err := p.get(ctx, idPath("/api/Collections/%d/games", collectionID), userQuery(viewerID), &games)
	return games, err
}

func (p *CollectionsServiceProxy) GetGamesNotInCollection(ctx context.Context, collectionID, userID uint) ([]models.OwnedGame, error) {
	games := []models.OwnedGame{}
	err := p.get(ctx, idPath("/api/Collections/%d/games/not-in", collectionID), userQuery(userID), &games)
	return games, err
}

type OwnedGamesServiceProxy struct {
	*ServiceProxy
}

func NewOwnedGamesServiceProxy(base *ServiceProxy) *OwnedGamesServiceProxy {
	return &OwnedGamesServiceProxy{ServiceProxy: base}
}

func (p *OwnedGamesServiceProxy) GetAllOwnedGames(ctx context.Context, userID uint) ([]models.OwnedGame, error) {
	games := []models.OwnedGame{}
	err := p.get(ctx, "/api/OwnedGames", userQuery(userID), &games)
	return games, err
}

func (p *OwnedGamesServiceProxy) GetOwnedGame(ctx context.Context, gameID uint) (*models.OwnedGame, error) {
	var game models.OwnedGame
	if err := p.get(ctx, idPath("/api/OwnedGames/%d", gameID), nil, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (p *OwnedGamesServiceProxy) AddOwnedGame(ctx context.Context, userID uint, input services.OwnedGameInput) (*models.OwnedGame, error) {
	var game models.OwnedGame
	if err := p.post(ctx, "/api/OwnedGames", userQuery(userID), input, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (p *OwnedGamesServiceProxy) RemoveOwnedGame(ctx context.Context, gameID, userID uint) error {
	return p.delete(ctx, idPath("/api/OwnedGames/%d", gameID), userQuery(userID), nil, nil)
}


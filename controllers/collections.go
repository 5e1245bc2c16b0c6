package controllers

import (
	"SteamProfile/middleware"
	"SteamProfile/services"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CollectionsController struct {
	Collections services.CollectionsService
}

// @Summary List collections of a user
// @Description Private collections are only listed for their owner; anyone can ask for publicOnly=true
// @Tags collections
// @Produce json
// @Param userId query int true "Owner id"
// @Param publicOnly query bool false "Only public collections"
// @Success 200 {array} postgres.Collection
// @Failure 403 {object} object{error=string}
// @Router /api/Collections [get]
// @Security ApiKeyAuth
func (cc *CollectionsController) List(c *gin.Context) {
	userID, err := utils.ParseIDQuery(c, "userId")
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	ctx := c.Request.Context()
	if c.Query("publicOnly") == "true" {
		collections, err := cc.Collections.GetPublicCollections(ctx, userID)
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, collections)
		return
	}

	if err := middleware.RequireSelf(c, userID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	collections, err := cc.Collections.GetAllCollections(ctx, userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, collections)
}

// @Summary Get a collection
// @Description Private collections are visible to their owner only
// @Tags collections
// @Produce json
// @Param id path int true "Collection id"
// @Param userId query int true "Viewer id, must be the caller"
// @Success 200 {object} postgres.Collection
// @Failure 404 {object} object{error=string}
// @Router /api/Collections/{id} [get]
// @Security ApiKeyAuth
func (cc *CollectionsController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	viewerID, ok := actingUser(c)
	if !ok {
		return
	}
	collection, err := cc.Collections.GetCollection(c.Request.Context(), id, viewerID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, collection)
}

// @Summary Create a collection
// @Tags collections
// @Accept json
// @Produce json
// @Param userId query int true "Owner id, must be the caller"
// @Param input body services.CollectionInput true "Collection"
// @Success 201 {object} postgres.Collection
// @Failure 409 {object} object{error=string} "Name already used"
// @Router /api/Collections [post]
// @Security ApiKeyAuth
func (cc *CollectionsController) Create(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var input services.CollectionInput
	if !bindJSON(c, &input) {
		return
	}
	collection, err := cc.Collections.CreateCollection(c.Request.Context(), userID, input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, collection)
}

// @Summary Update a collection
// @Tags collections
// @Accept json
// @Produce json
// @Param id path int true "Collection id"
// @Param userId query int true "Owner id, must be the caller"
// @Param input body services.CollectionInput true "Collection"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /api/Collections/{id} [put]
// @Security ApiKeyAuth
func (cc *CollectionsController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var input services.CollectionInput
	if !bindJSON(c, &input) {
		return
	}
	if err := cc.Collections.UpdateCollection(c.Request.Context(), id, userID, input); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Collection updated")
}

// @Summary Delete a collection
// @Description The games stay owned
// @Tags collections
// @Produce json
// @Param id path int true "Collection id"
// @Param userId query int true "Owner id, must be the caller"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /api/Collections/{id} [delete]
// @Security ApiKeyAuth
func (cc *CollectionsController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := cc.Collections.DeleteCollection(c.Request.Context(), id, userID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Collection deleted")
}

// @Summary Games in a collection
// @Tags collections
// @Produce json
// @Param id path int true "Collection id"
// @Param userId query int true "Viewer id, must be the caller"
// @Success 200 {array} postgres.OwnedGame
// @Router /api/Collections/{id}/games [get]
// @Security ApiKeyAuth
func (cc *CollectionsController) Games(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	viewerID, ok := actingUser(c)
	if !ok {
		return
	}
	games, err := cc.Collections.GetGamesInCollection(c.Request.Context(), id, viewerID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// @Summary Owned games missing from a collection
// @Tags collections
// @Produce json
// @Param id path int true "Collection id"
// @Param userId query int true "Owner id, must be the caller"
// @Success 200 {array} postgres.OwnedGame
// @Router /api/Collections/{id}/games/not-in [get]
// @Security ApiKeyAuth
func (cc *CollectionsController) GamesNotIn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	games, err := cc.Collections.GetGamesNotInCollection(c.Request.Context(), id, userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// @Summary Add a game to a collection
// @Description The game must be owned by the collection owner
// @Tags collections
// @Produce json
// @Param id path int true "Collection id"
// @Param gameId path int true "Owned game id"
// @Param userId query int true "Owner id, must be the caller"
// @Success 200 {object} object{message=string}
// @Failure 409 {object} object{error=string} "Already in the collection"
// @Router /api/Collections/{id}/games/{gameId} [post]
// @Security ApiKeyAuth
func (cc *CollectionsController) AddGame(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	gameID, ok := pathID(c, "gameId")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := cc.Collections.AddGameToCollection(c.Request.Context(), id, gameID, userID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Game added to collection")
}

// @Summary Remove a game from a collection
// @Tags collections
// @Produce json
// @Param id path int true "Collection id"
// @Param gameId path int true "Owned game id"
// @Param userId query int true "Owner id, must be the caller"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /api/Collections/{id}/games/{gameId} [delete]
// @Security ApiKeyAuth
func (cc *CollectionsController) RemoveGame(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	gameID, ok := pathID(c, "gameId")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := cc.Collections.RemoveGameFromCollection(c.Request.Context(), id, gameID, userID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Game removed from collection")
}

type OwnedGamesController struct {
	Games services.OwnedGamesService
}

// @Summary Owned games of a user
// @Tags games
// @Produce json
// @Param userId query int true "Owner id"
// @Success 200 {array} postgres.OwnedGame
// @Router /api/OwnedGames [get]
// @Security ApiKeyAuth
func (oc *OwnedGamesController) List(c *gin.Context) {
	userID, err := utils.ParseIDQuery(c, "userId")
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	games, err := oc.Games.GetAllOwnedGames(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// @Summary Get an owned game
// @Tags games
// @Produce json
// @Param id path int true "Owned game id"
// @Success 200 {object} postgres.OwnedGame
// @Failure 404 {object} object{error=string}
// @Router /api/OwnedGames/{id} [get]
// @Security ApiKeyAuth
func (oc *OwnedGamesController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	game, err := oc.Games.GetOwnedGame(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// @Summary Add an owned game
// @Tags games
// @Accept json
// @Produce json
// @Param userId query int true "Owner id, must be the caller"
// @Param input body services.OwnedGameInput true "Game"
// @Success 201 {object} postgres.OwnedGame
// @Failure 400 {object} object{error=string}
// @Router /api/OwnedGames [post]
// @Security ApiKeyAuth
func (oc *OwnedGamesController) Add(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var input services.OwnedGameInput
	if !bindJSON(c, &input) {
		return
	}
	game, err := oc.Games.AddOwnedGame(c.Request.Context(), userID, input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// @Summary Remove an owned game
// @Description Also drops it from every collection
// @Tags games
// @Produce json
// @Param id path int true "Owned game id"
// @Param userId query int true "Owner id, must be the caller"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /api/OwnedGames/{id} [delete]
// @Security ApiKeyAuth
func (oc *OwnedGamesController) Remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := oc.Games.RemoveOwnedGame(c.Request.Context(), id, userID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Game removed")
}

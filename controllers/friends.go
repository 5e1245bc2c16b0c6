package controllers

import (
	"SteamProfile/services"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FriendshipsController struct {
	Friends services.FriendService
}

// @Summary Get a list of a user friends
// @Description Returns the users on the other side of every friendship of userId
// @Tags friends
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {array} postgres.User
// @Failure 500 {object} object{error=string}
// @Router /api/Friendships/user/{userId} [get]
// @Security ApiKeyAuth
func (fc *FriendshipsController) List(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	friends, err := fc.Friends.GetFriends(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// @Summary Count a user friends
// @Tags friends
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {object} object{count=int}
// @Failure 400 {object} object{error=string}
// @Router /api/Friendships/count/{userId} [get]
// @Security ApiKeyAuth
func (fc *FriendshipsController) Count(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	count, err := fc.Friends.GetFriendshipCount(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// @Summary Check whether two users are friends
// @Tags friends
// @Produce json
// @Param userId path int true "User id"
// @Param friendId path int true "Other user id"
// @Success 200 {object} object{exists=boolean}
// @Failure 400 {object} object{error=string}
// @Router /api/Friendships/exists/{userId}/{friendId} [get]
// @Security ApiKeyAuth
func (fc *FriendshipsController) Exists(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return
	}
	exists, err := fc.Friends.AreUsersFriends(c.Request.Context(), userID, friendID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// @Summary Friendship status between two users
// @Description Returns NotFriends, RequestSent, RequestReceived or Friends, seen from userId
// @Tags friends
// @Produce json
// @Param userId path int true "Viewer id"
// @Param friendId path int true "Other user id"
// @Success 200 {object} object{status=string}
// @Router /api/Friendships/status/{userId}/{friendId} [get]
// @Security ApiKeyAuth
func (fc *FriendshipsController) Status(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return
	}
	status := fc.Friends.GetFriendshipStatus(c.Request.Context(), userID, friendID)
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// @Summary Remove a friend
// @Description Deletes the friendship between the caller and friendId
// @Tags friends
// @Produce json
// @Param userId path int true "Caller id"
// @Param friendId path int true "Friend id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/Friendships/{userId}/{friendId} [delete]
// @Security ApiKeyAuth
func (fc *FriendshipsController) Remove(c *gin.Context) {
	userID, ok := self(c, "userId")
	if !ok {
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return
	}
	if err := fc.Friends.RemoveFriend(c.Request.Context(), userID, friendID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Friend removed")
}

package controllers

import (
	"SteamProfile/middleware"
	models "SteamProfile/models/postgres"
	"SteamProfile/services"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FriendRequestController serves the pending request inbox
type FriendRequestController struct {
	Requests services.FriendRequestService
}

// @Summary Send a friend request
// @Description Sends a friend request from the authenticated user
// @Tags friends
// @Accept json
// @Produce json
// @Param input body postgres.FriendRequest true "senderUsername and receiverUsername"
// @Success 201 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/FriendRequest [post]
// @Security ApiKeyAuth
func (fc *FriendRequestController) Send(c *gin.Context) {
	var request models.FriendRequest
	if !bindJSON(c, &request) {
		return
	}
	if err := middleware.RequireUsername(c, request.SenderUsername); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if err := fc.Requests.SendFriendRequest(c.Request.Context(), request); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent"})
}

// @Summary Get all friendship requests for the authenticated user
// @Description Retrieve the requests where the authenticated user is the recipient, newest first
// @Tags friends
// @Produce json
// @Param username path string true "Receiver username"
// @Success 200 {array} postgres.FriendRequest
// @Failure 403 {object} object{error=string}
// @Router /api/FriendRequest/{username} [get]
// @Security ApiKeyAuth
func (fc *FriendRequestController) Received(c *gin.Context) {
	username := c.Param("username")
	if err := middleware.RequireUsername(c, username); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	requests, err := fc.Requests.GetFriendRequests(c.Request.Context(), username)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// @Summary Get the friend requests a user sent
// @Description Pending requests where the authenticated user is the sender
// @Tags friends
// @Produce json
// @Param username path string true "Sender username"
// @Success 200 {array} postgres.FriendRequest
// @Failure 403 {object} object{error=string}
// @Router /api/FriendRequest/{username}/sent [get]
// @Security ApiKeyAuth
func (fc *FriendRequestController) Sent(c *gin.Context) {
	username := c.Param("username")
	if err := middleware.RequireUsername(c, username); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	requests, err := fc.Requests.GetSentFriendRequests(c.Request.Context(), username)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// @Summary Accept a friend request
// @Description Turns the request into a friendship. accepted is false when there was no such request.
// @Tags friends
// @Accept json
// @Produce json
// @Param input body services.FriendRequestPair true "Sender and receiver"
// @Success 200 {object} object{accepted=boolean}
// @Router /api/FriendRequest/accept [post]
// @Security ApiKeyAuth
func (fc *FriendRequestController) Accept(c *gin.Context) {
	var pair services.FriendRequestPair
	if !bindJSON(c, &pair) {
		return
	}
	if err := middleware.RequireUsername(c, pair.ReceiverUsername); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	accepted, err := fc.Requests.AcceptFriendRequest(c.Request.Context(), pair.SenderUsername, pair.ReceiverUsername)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accepted": accepted})
}

// @Summary Reject a friend request
// @Description Only the receiver may reject
// @Tags friends
// @Accept json
// @Produce json
// @Param input body services.FriendRequestPair true "Sender and receiver"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/FriendRequest/reject [post]
// @Security ApiKeyAuth
func (fc *FriendRequestController) Reject(c *gin.Context) {
	var pair services.FriendRequestPair
	if !bindJSON(c, &pair) {
		return
	}
	if err := middleware.RequireUsername(c, pair.ReceiverUsername); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if err := fc.Requests.RejectFriendRequest(c.Request.Context(), pair.SenderUsername, pair.ReceiverUsername); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Friend request rejected")
}

// @Summary Cancel a sent friend request
// @Description Only the sender may cancel
// @Tags friends
// @Accept json
// @Produce json
// @Param input body services.FriendRequestPair true "Sender and receiver"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/FriendRequest/cancel [post]
// @Security ApiKeyAuth
func (fc *FriendRequestController) Cancel(c *gin.Context) {
	var pair services.FriendRequestPair
	if !bindJSON(c, &pair) {
		return
	}
	if err := middleware.RequireUsername(c, pair.SenderUsername); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if err := fc.Requests.CancelFriendRequest(c.Request.Context(), pair.SenderUsername, pair.ReceiverUsername); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Friend request cancelled")
}

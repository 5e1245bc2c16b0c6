package web

import (
	models "SteamProfile/models/postgres"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Site) profile(c *gin.Context) {
	ctx := c.Request.Context()
	me, _ := currentUser(c)

	user, err := s.svc.Users.GetUserByUsername(ctx, c.Param("username"))
	if err != nil {
		renderError(c, err)
		return
	}
	friends, err := s.svc.Friends.GetFriends(ctx, user.ID)
	if err != nil {
		renderError(c, err)
		return
	}
	equipped, err := s.svc.Features.GetEquippedFeatures(ctx, user.ID)
	if err != nil {
		renderError(c, err)
		return
	}
	collections, err := s.svc.Collections.GetPublicCollections(ctx, user.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	data := gin.H{
		"user":        user,
		"own":         me.ID == user.ID,
		"status":      string(s.svc.Friends.GetFriendshipStatus(ctx, me.ID, user.ID)),
		"friends":     friends,
		"equipped":    equipped,
		"collections": collections,
	}
	if me.ID == user.ID {
		received, err := s.svc.FriendRequests.GetFriendRequests(ctx, me.Username)
		if err != nil {
			renderError(c, err)
			return
		}
		sent, err := s.svc.FriendRequests.GetSentFriendRequests(ctx, me.Username)
		if err != nil {
			renderError(c, err)
			return
		}
		data["received"] = received
		data["sent"] = sent
	}
	render(c, http.StatusOK, "profile.html", data)
}

func back(c *gin.Context, me *models.User) string {
	if target := c.PostForm("back"); target != "" && target[0] == '/' && (len(target) == 1 || target[1] != '/') {
		return target
	}
	return "/profile/" + me.Username
}

func (s *Site) sendFriendRequest(c *gin.Context) {
	me, _ := currentUser(c)
	err := s.svc.FriendRequests.SendFriendRequest(c.Request.Context(), models.FriendRequest{
		SenderUsername:   me.Username,
		ReceiverUsername: c.PostForm("username"),
	})
	done(c, err, "Friend request sent", back(c, me))
}

func (s *Site) acceptFriendRequest(c *gin.Context) {
	me, _ := currentUser(c)
	accepted, err := s.svc.FriendRequests.AcceptFriendRequest(c.Request.Context(), c.PostForm("username"), me.Username)
	message := "Friend request accepted"
	if err == nil && !accepted {
		message = "That friend request no longer exists"
	}
	done(c, err, message, back(c, me))
}

func (s *Site) rejectFriendRequest(c *gin.Context) {
	me, _ := currentUser(c)
	err := s.svc.FriendRequests.RejectFriendRequest(c.Request.Context(), c.PostForm("username"), me.Username)
	done(c, err, "Friend request rejected", back(c, me))
}

func (s *Site) cancelFriendRequest(c *gin.Context) {
	me, _ := currentUser(c)
	err := s.svc.FriendRequests.CancelFriendRequest(c.Request.Context(), me.Username, c.PostForm("username"))
	done(c, err, "Friend request cancelled", back(c, me))
}

func (s *Site) removeFriend(c *gin.Context) {
	me, _ := currentUser(c)
	friendID, err := strconv.ParseUint(c.PostForm("friendId"), 10, 64)
	if err != nil {
		done(c, err, "", back(c, me))
		return
	}
	err = s.svc.Friends.RemoveFriend(c.Request.Context(), me.ID, uint(friendID))
	done(c, err, "Friend removed", back(c, me))
}

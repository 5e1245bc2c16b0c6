package proxy

import (
	models "SteamProfile/models/postgres"
	"SteamProfile/services"
	"SteamProfile/utils"
	"context"
	"net/url"

	"go.uber.org/zap"
)

type FriendServiceProxy struct {
	*ServiceProxy
}

func NewFriendServiceProxy(base *ServiceProxy) *FriendServiceProxy {
	return &FriendServiceProxy{ServiceProxy: base}
}

func (p *FriendServiceProxy) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	friends := []models.User{}
	err := p.get(ctx, idPath("/api/Friendships/user/%d", userID), nil, &friends)
	return friends, err
}

func (p *FriendServiceProxy) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	return p.delete(ctx, idPath("/api/Friendships/%d/%d", userID, friendID), nil, nil, nil)
}

func (p *FriendServiceProxy) AreUsersFriends(ctx context.Context, userID, friendID uint) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	err := p.get(ctx, idPath("/api/Friendships/exists/%d/%d", userID, friendID), nil, &resp)
	return resp.Exists, err
}

func (p *FriendServiceProxy) GetFriendshipCount(ctx context.Context, userID uint) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	err := p.get(ctx, idPath("/api/Friendships/count/%d", userID), nil, &resp)
	return resp.Count, err
}

func (p *FriendServiceProxy) GetFriendshipStatus(ctx context.Context, currentUserID, otherUserID uint) models.FriendshipStatus {
	var resp struct {
		Status models.FriendshipStatus `json:"status"`
	}
	if err := p.get(ctx, idPath("/api/Friendships/status/%d/%d", currentUserID, otherUserID), nil, &resp); err != nil {
		utils.GetLogger().Warn("Could not resolve friendship status", zap.Error(err))
		return models.NotFriends
	}
	if resp.Status == "" {
		return models.NotFriends
	}
	return resp.Status
}

type FriendRequestServiceProxy struct {
	*ServiceProxy
}

func NewFriendRequestServiceProxy(base *ServiceProxy) *FriendRequestServiceProxy {
	return &FriendRequestServiceProxy{ServiceProxy: base}
}

func (p *FriendRequestServiceProxy) SendFriendRequest(ctx context.Context, request models.FriendRequest) error {
	return p.post(ctx, "/api/FriendRequest", nil, request, nil)
}

func (p *FriendRequestServiceProxy) AcceptFriendRequest(ctx context.Context, senderUsername, receiverUsername string) (bool, error) {
	var resp struct {
		Accepted bool `json:"accepted"`
	}
	err := p.post(ctx, "/api/FriendRequest/accept", nil,
		services.FriendRequestPair{SenderUsername: senderUsername, ReceiverUsername: receiverUsername}, &resp)
	return resp.Accepted, err
}

func (p *FriendRequestServiceProxy) RejectFriendRequest(ctx context.Context, senderUsername, receiverUsername string) error {
	return p.post(ctx, "/api/FriendRequest/reject", nil,
		services.FriendRequestPair{SenderUsername: senderUsername, ReceiverUsername: receiverUsername}, nil)
}

func (p *FriendRequestServiceProxy) CancelFriendRequest(ctx context.Context, senderUsername, receiverUsername string) error {
	return p.post(ctx, "/api/FriendRequest/cancel", nil,
		services.FriendRequestPair{SenderUsername: senderUsername, ReceiverUsername: receiverUsername}, nil)
}

func (p *FriendRequestServiceProxy) GetFriendRequests(ctx context.Context, username string) ([]models.FriendRequest, error) {
	requests := []models.FriendRequest{}
	err := p.get(ctx, "/api/FriendRequest/"+url.PathEscape(username), nil, &requests)
	return requests, err
}

func (p *FriendRequestServiceProxy) GetSentFriendRequests(ctx context.Context, username string) ([]models.FriendRequest, error) {
	requests := []models.FriendRequest{}
	err := p.get(ctx, "/api/FriendRequest/"+url.PathEscape(username)+"/sent", nil, &requests)
	return requests, err
}

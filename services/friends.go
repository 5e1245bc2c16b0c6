package services

import (
	models "SteamProfile/models/postgres"
	"SteamProfile/repositories"
	"SteamProfile/utils"
	"context"

	"go.uber.org/zap"
)

// LocalFriendService implements FriendService over the database
type LocalFriendService struct {
	store    *repositories.Store
	notifier Notifier
}

func NewFriendService(store *repositories.Store, notifier Notifier) *LocalFriendService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &LocalFriendService{store: store, notifier: notifier}
}

func (s *LocalFriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	ids, err := s.store.Friendships.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.Users.GetByIDs(ctx, ids)
}

// AddFriend creates the friendship directly. Request acceptance goes through
// FriendRequestService instead.
func (s *LocalFriendService) AddFriend(ctx context.Context, userID, friendID uint) error {
	return s.store.Friendships.Add(ctx, userID, friendID)
}

func (s *LocalFriendService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if err := s.store.Friendships.Remove(ctx, userID, friendID); err != nil {
		return err
	}

	remover, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil
	}
	friend, err := s.store.Users.GetByID(ctx, friendID)
	if err != nil {
		return nil
	}
	s.notifier.Notify(friend.Username, EventFriendRemoved, map[string]interface{}{
		"username": remover.Username,
	})
	return nil
}

func (s *LocalFriendService) AreUsersFriends(ctx context.Context, userID, friendID uint) (bool, error) {
	return s.store.Friendships.Exists(ctx, userID, friendID)
}

func (s *LocalFriendService) GetFriendshipCount(ctx context.Context, userID uint) (int64, error) {
	return s.store.Friendships.Count(ctx, userID)
}

// GetFriendshipStatus resolves self, then friendship, then outgoing request,
// then incoming request. Lookup failures are logged and read as NotFriends.
func (s *LocalFriendService) GetFriendshipStatus(ctx context.Context, currentUserID, otherUserID uint) models.FriendshipStatus {
	if currentUserID == otherUserID {
		return models.Friends
	}

	status, err := s.friendshipStatus(ctx, currentUserID, otherUserID)
	if err != nil {
		utils.GetLogger().Warn("Could not resolve friendship status",
			zap.Uint("user_id", currentUserID),
			zap.Uint("other_user_id", otherUserID),
			zap.Error(err))
		return models.NotFriends
	}
	return status
}

func (s *LocalFriendService) friendshipStatus(ctx context.Context, currentUserID, otherUserID uint) (models.FriendshipStatus, error) {
	friends, err := s.store.Friendships.Exists(ctx, currentUserID, otherUserID)
	if err != nil {
		return models.NotFriends, err
	}
	if friends {
		return models.Friends, nil
	}

	current, err := s.store.Users.GetByID(ctx, currentUserID)
	if err != nil {
		return models.NotFriends, err
	}
	other, err := s.store.Users.GetByID(ctx, otherUserID)
	if err != nil {
		return models.NotFriends, err
	}

	sent, err := s.store.FriendRequests.Exists(ctx, current.Username, other.Username)
	if err != nil {
		return models.NotFriends, err
	}
	if sent {
		return models.RequestSent, nil
	}

	received, err := s.store.FriendRequests.Exists(ctx, other.Username, current.Username)
	if err != nil {
		return models.NotFriends, err
	}
	if received {
		return models.RequestReceived, nil
	}
	return models.NotFriends, nil
}

// usersByName resolves both sides of a request
func usersByName(ctx context.Context, store *repositories.Store, sender, receiver string) (*models.User, *models.User, error) {
	from, err := store.Users.GetByUsername(ctx, sender)
	if err != nil {
		return nil, nil, err
	}
	to, err := store.Users.GetByUsername(ctx, receiver)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

var _ FriendService = (*LocalFriendService)(nil)

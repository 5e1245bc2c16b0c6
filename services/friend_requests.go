package services

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"SteamProfile/repositories"
	"SteamProfile/utils"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// LocalFriendRequestService implements FriendRequestService over the database
type LocalFriendRequestService struct {
	store    *repositories.Store
	notifier Notifier
}

func NewFriendRequestService(store *repositories.Store, notifier Notifier) *LocalFriendRequestService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &LocalFriendRequestService{store: store, notifier: notifier}
}

// SendFriendRequest stores a pending request. A request in either direction or
// an existing friendship between the two is a Conflict.
func (s *LocalFriendRequestService) SendFriendRequest(ctx context.Context, request models.FriendRequest) error {
	request.SenderUsername = strings.TrimSpace(request.SenderUsername)
	request.ReceiverUsername = strings.TrimSpace(request.ReceiverUsername)
	if request.SenderUsername == "" || request.ReceiverUsername == "" {
		return apperrors.NewValidation("Sender and receiver are required")
	}
	if request.SenderUsername == request.ReceiverUsername {
		return apperrors.NewValidation("Cannot send a friend request to yourself")
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		sender, receiver, err := usersByName(ctx, tx, request.SenderUsername, request.ReceiverUsername)
		if err != nil {
			return err
		}

		friends, err := tx.Friendships.Exists(ctx, sender.ID, receiver.ID)
		if err != nil {
			return err
		}
		if friends {
			return apperrors.NewConflict("%s and %s are already friends", sender.Username, receiver.Username)
		}

		for _, pair := range [][2]string{{sender.Username, receiver.Username}, {receiver.Username, sender.Username}} {
			pending, err := tx.FriendRequests.Exists(ctx, pair[0], pair[1])
			if err != nil {
				return err
			}
			if pending {
				return apperrors.NewConflict("A friend request between %s and %s is already pending", sender.Username, receiver.Username)
			}
		}

		if request.Email == "" {
			request.Email = sender.Email
		}
		if request.ProfilePhotoPath == "" {
			request.ProfilePhotoPath = sender.ProfilePicture
		}
		request.ID = 0
		request.RequestDate = time.Now().UTC()

		err = tx.FriendRequests.Create(ctx, &request)
		if apperrors.IsConflict(err) {
			return apperrors.NewConflict("A friend request between %s and %s is already pending", sender.Username, receiver.Username)
		}
		return err
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(request.ReceiverUsername, EventFriendRequestReceived, request)
	return nil
}

// AcceptFriendRequest turns the pending request from sender to receiver into a
// friendship. It reports false when no such request exists.
func (s *LocalFriendRequestService) AcceptFriendRequest(ctx context.Context, senderUsername, receiverUsername string) (bool, error) {
	accepted := false
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		received, err := tx.FriendRequests.ListReceived(ctx, receiverUsername)
		if err != nil {
			return err
		}
		found := false
		for _, r := range received {
			if r.SenderUsername == senderUsername {
				found = true
				break
			}
		}
		if !found {
			return nil
		}

		sender, receiver, err := usersByName(ctx, tx, senderUsername, receiverUsername)
		if err != nil {
			return err
		}

		// already friends: the request is simply consumed
		if err := tx.Friendships.Add(ctx, sender.ID, receiver.ID); err != nil && !apperrors.IsConflict(err) {
			return err
		}
		if err := tx.FriendRequests.DeleteBetween(ctx, senderUsername, receiverUsername); err != nil {
			return err
		}
		accepted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if accepted {
		utils.GetLogger().Info("Friend request accepted",
			zap.String("sender", senderUsername),
			zap.String("receiver", receiverUsername))
		s.notifier.Notify(senderUsername, EventFriendRequestAccepted, map[string]interface{}{
			"username": receiverUsername,
		})
	}
	return accepted, nil
}

// RejectFriendRequest deletes the request whether or not it exists
func (s *LocalFriendRequestService) RejectFriendRequest(ctx context.Context, senderUsername, receiverUsername string) error {
	deleted, err := s.store.FriendRequests.Delete(ctx, senderUsername, receiverUsername)
	if err != nil {
		return err
	}
	if deleted {
		s.notifier.Notify(senderUsername, EventFriendRequestRejected, map[string]interface{}{
			"username": receiverUsername,
		})
	}
	return nil
}

// CancelFriendRequest withdraws a request the sender made
func (s *LocalFriendRequestService) CancelFriendRequest(ctx context.Context, senderUsername, receiverUsername string) error {
	_, err := s.store.FriendRequests.Delete(ctx, senderUsername, receiverUsername)
	return err
}

func (s *LocalFriendRequestService) GetFriendRequests(ctx context.Context, username string) ([]models.FriendRequest, error) {
	return s.store.FriendRequests.ListReceived(ctx, username)
}

func (s *LocalFriendRequestService) GetSentFriendRequests(ctx context.Context, username string) ([]models.FriendRequest, error) {
	return s.store.FriendRequests.ListSent(ctx, username)
}

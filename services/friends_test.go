package services_test

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"SteamProfile/services"
	"SteamProfile/testhelpers"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRequestWorkflow(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	notifier := &recordingNotifier{}
	friends := services.NewFriendService(store, notifier)
	requests := services.NewFriendRequestService(store, notifier)

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	send := func(t *testing.T) {
		t.Helper()
		require.NoError(t, requests.SendFriendRequest(ctx, models.FriendRequest{
			SenderUsername:   alice.Username,
			ReceiverUsername: bob.Username,
		}))
	}
	assertStatus := func(t *testing.T, aToB, bToA models.FriendshipStatus) {
		t.Helper()
		assert.Equal(t, aToB, friends.GetFriendshipStatus(ctx, alice.ID, bob.ID))
		assert.Equal(t, bToA, friends.GetFriendshipStatus(ctx, bob.ID, alice.ID))
	}
	pending := func(t *testing.T) int {
		t.Helper()
		received, err := requests.GetFriendRequests(ctx, bob.Username)
		require.NoError(t, err)
		return len(received)
	}

	t.Run("Send sets sent and received", func(t *testing.T) {
		send(t)
		assertStatus(t, models.RequestSent, models.RequestReceived)

		sent, err := requests.GetSentFriendRequests(ctx, alice.Username)
		require.NoError(t, err)
		require.Len(t, sent, 1)
		assert.Equal(t, alice.Email, sent[0].Email)
		assert.False(t, sent[0].RequestDate.IsZero())
	})

	t.Run("Duplicate in either direction is a conflict", func(t *testing.T) {
		err := requests.SendFriendRequest(ctx, models.FriendRequest{SenderUsername: alice.Username, ReceiverUsername: bob.Username})
		assert.True(t, apperrors.IsConflict(err))
		err = requests.SendFriendRequest(ctx, models.FriendRequest{SenderUsername: bob.Username, ReceiverUsername: alice.Username})
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("Reject leaves no request and no friendship", func(t *testing.T) {
		require.NoError(t, requests.RejectFriendRequest(ctx, alice.Username, bob.Username))
		assert.Equal(t, 0, pending(t))
		assertStatus(t, models.NotFriends, models.NotFriends)

		// rejecting again is not an error
		require.NoError(t, requests.RejectFriendRequest(ctx, alice.Username, bob.Username))
	})

	t.Run("Accept creates the friendship and consumes the request", func(t *testing.T) {
		send(t)
		accepted, err := requests.AcceptFriendRequest(ctx, alice.Username, bob.Username)
		require.NoError(t, err)
		assert.True(t, accepted)

		assert.Equal(t, 0, pending(t))
		assertStatus(t, models.Friends, models.Friends)

		list, err := friends.GetFriends(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, alice.Username, list[0].Username)
	})

	t.Run("Accept without a request reports false", func(t *testing.T) {
		accepted, err := requests.AcceptFriendRequest(ctx, bob.Username, alice.Username)
		require.NoError(t, err)
		assert.False(t, accepted)
	})

	t.Run("Requests between friends are a conflict", func(t *testing.T) {
		err := requests.SendFriendRequest(ctx, models.FriendRequest{SenderUsername: bob.Username, ReceiverUsername: alice.Username})
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("Remove returns both sides to not friends", func(t *testing.T) {
		require.NoError(t, friends.RemoveFriend(ctx, bob.ID, alice.ID))
		assertStatus(t, models.NotFriends, models.NotFriends)

		count, err := friends.GetFriendshipCount(ctx, alice.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Notifications reach the other side", func(t *testing.T) {
		assert.Contains(t, notifier.Events(), sentEvent{Username: bob.Username, Event: services.EventFriendRequestReceived})
		assert.Contains(t, notifier.Events(), sentEvent{Username: alice.Username, Event: services.EventFriendRequestRejected})
		assert.Contains(t, notifier.Events(), sentEvent{Username: alice.Username, Event: services.EventFriendRequestAccepted})
		assert.Contains(t, notifier.Events(), sentEvent{Username: alice.Username, Event: services.EventFriendRemoved})
	})
}

func TestSendFriendRequestValidation(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	requests := services.NewFriendRequestService(store, nil)
	testhelpers.CreateUser(t, db, "alice")

	tests := []struct {
		name     string
		request  models.FriendRequest
		validate func(error) bool
	}{
		{"empty sender", models.FriendRequest{ReceiverUsername: "alice"}, apperrors.IsValidation},
		{"empty receiver", models.FriendRequest{SenderUsername: "alice"}, apperrors.IsValidation},
		{"self", models.FriendRequest{SenderUsername: "alice", ReceiverUsername: "alice"}, apperrors.IsValidation},
		{"unknown receiver", models.FriendRequest{SenderUsername: "alice", ReceiverUsername: "nobody"}, apperrors.IsNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requests.SendFriendRequest(ctx, tt.request)
			assert.True(t, tt.validate(err), "got %v", err)
		})
	}
}

func TestFriendshipStatusEdges(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	friends := services.NewFriendService(store, nil)
	alice := testhelpers.CreateUser(t, db, "alice")

	assert.Equal(t, models.Friends, friends.GetFriendshipStatus(ctx, alice.ID, alice.ID))
	// unknown users read as not friends instead of failing
	assert.Equal(t, models.NotFriends, friends.GetFriendshipStatus(ctx, alice.ID, 9999))
}

func TestAcceptWhenAlreadyFriends(t *testing.T) {
	ctx := context.Background()
	db, store := setupStore(t)
	friends := services.NewFriendService(store, nil)
	requests := services.NewFriendRequestService(store, nil)
	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	require.NoError(t, db.Create(&models.FriendRequest{SenderUsername: "alice", ReceiverUsername: "bob"}).Error)
	require.NoError(t, friends.AddFriend(ctx, alice.ID, bob.ID))

	accepted, err := requests.AcceptFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, accepted)

	received, err := requests.GetFriendRequests(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, received)
}

package proxy_test

import (
	"SteamProfile/app"
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"SteamProfile/services"
	"SteamProfile/services/proxy"
	"SteamProfile/testhelpers"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// remote starts the real API and returns proxies pointed at it
func remote(t *testing.T) *app.Services {
	t.Helper()
	server := testhelpers.NewTestServer(t, nil)
	srv := httptest.NewServer(server.Router)
	t.Cleanup(srv.Close)
	return app.NewRemote(srv.URL+"/", srv.Client())
}

func signUp(t *testing.T, ctx context.Context, svc *app.Services, username string) *models.User {
	t.Helper()
	_, err := svc.Users.Register(ctx, services.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	result, err := svc.Users.Login(ctx, username, "password123")
	require.NoError(t, err)
	return &result.User
}

func TestLoginStoresTheClientSession(t *testing.T) {
	ctx := context.Background()
	svc := remote(t)
	require.True(t, svc.Remote)

	user := signUp(t, ctx, svc, "alice")
	require.NotNil(t, svc.Session.User())
	assert.Equal(t, user.ID, svc.Session.User().ID)
	assert.NotEmpty(t, svc.Session.Token())

	me, err := svc.Users.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)

	require.NoError(t, svc.Users.Logout(ctx, svc.Session.SessionID()))
	assert.Empty(t, svc.Session.Token())

	_, err = svc.Users.GetUserByID(ctx, user.ID)
	assert.True(t, apperrors.IsUnauthorized(err), "got %v", err)
}

func TestErrorsKeepTheirKind(t *testing.T) {
	ctx := context.Background()
	svc := remote(t)
	signUp(t, ctx, svc, "alice")

	_, err := svc.Users.Register(ctx, services.RegisterInput{Username: "alice", Email: "other@example.com", Password: "password123"})
	assert.True(t, apperrors.IsConflict(err), "got %v", err)

	_, err = svc.Users.GetUserByID(ctx, 9999)
	assert.True(t, apperrors.IsNotFound(err), "got %v", err)

	err = svc.Wallets.AddMoney(ctx, svc.Session.User().ID, decimal.NewFromInt(-1))
	assert.True(t, apperrors.IsValidation(err), "got %v", err)

	_, err = svc.Users.Login(ctx, "alice", "wrong-password")
	assert.True(t, apperrors.IsUnauthorized(err), "got %v", err)
}

func TestSessionsPerContext(t *testing.T) {
	ctx := context.Background()
	svc := remote(t)

	bobSession := proxy.NewClientSession()
	bobCtx := proxy.WithSession(ctx, bobSession)
	bob := signUp(t, bobCtx, svc, "bob")
	alice := signUp(t, ctx, svc, "alice")

	assert.Equal(t, alice.ID, svc.Session.User().ID, "the default session belongs to alice")
	assert.Equal(t, bob.ID, bobSession.User().ID)

	require.NoError(t, svc.FriendRequests.SendFriendRequest(ctx, models.FriendRequest{
		SenderUsername:   "alice",
		ReceiverUsername: "bob",
	}))

	_, err := svc.FriendRequests.AcceptFriendRequest(ctx, "alice", "bob")
	assert.True(t, apperrors.IsUnauthorized(err), "alice cannot accept for bob: %v", err)

	accepted, err := svc.FriendRequests.AcceptFriendRequest(bobCtx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, accepted)

	friends, err := svc.Friends.AreUsersFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, friends)
	assert.Equal(t, models.Friends, svc.Friends.GetFriendshipStatus(bobCtx, bob.ID, alice.ID))
}

func TestShopThroughTheProxy(t *testing.T) {
	ctx := context.Background()
	svc := remote(t)
	user := signUp(t, ctx, svc, "alice")

	require.NoError(t, svc.Wallets.AddMoney(ctx, user.ID, decimal.NewFromInt(100)))
	balance, err := svc.Wallets.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(balance), "balance %s", balance)

	features, err := svc.Features.GetAllFeatures(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, features)
	feature := features[0]

	require.NoError(t, svc.Features.PurchaseFeature(ctx, user.ID, feature.ID))
	owned, err := svc.Features.IsFeaturePurchased(ctx, user.ID, feature.ID)
	require.NoError(t, err)
	assert.True(t, owned)

	balance, err = svc.Wallets.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Sub(feature.Price).Equal(balance), "balance %s", balance)
}

func TestUnreachableAPIIsTransient(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	svc := app.NewRemote(url, nil)
	_, err := svc.Features.GetAllFeatures(context.Background())
	assert.True(t, apperrors.IsTransient(err), "got %v", err)
}

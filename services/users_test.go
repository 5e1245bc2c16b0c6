package services_test

import (
	"SteamProfile/apperrors"
	"SteamProfile/services"
	redis_services "SteamProfile/services/redis"
	"SteamProfile/utils"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountServices struct {
	users    *services.LocalUserService
	sessions *services.LocalSessionService
	resets   *services.LocalPasswordResetService
	jwt      *utils.JWTManager
}

func setupAccounts(t *testing.T, cache *redis_services.RedisClient) accountServices {
	t.Helper()
	_, store := setupStore(t)
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	sessions := services.NewSessionService(store, cache, time.Hour)
	return accountServices{
		users:    services.NewUserService(store, sessions, jwt),
		sessions: sessions,
		resets:   services.NewPasswordResetService(store, sessions),
		jwt:      jwt,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	acc := setupAccounts(t, nil)

	user, err := acc.users.Register(ctx, services.RegisterInput{Username: "gabe", Email: "Gabe@Valve.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "gabe@valve.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	t.Run("Duplicate registration is a conflict", func(t *testing.T) {
		_, err := acc.users.Register(ctx, services.RegisterInput{Username: "gabe", Email: "other@valve.com", Password: "hunter22"})
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("Invalid input", func(t *testing.T) {
		tests := []services.RegisterInput{
			{Username: "", Email: "a@b.com", Password: "hunter22"},
			{Username: "x", Email: "not-an-email", Password: "hunter22"},
			{Username: "x", Email: "a@b.com", Password: "short"},
		}
		for _, input := range tests {
			_, err := acc.users.Register(ctx, input)
			assert.True(t, apperrors.IsValidation(err), "input %+v", input)
		}
	})

	t.Run("Login by username or email", func(t *testing.T) {
		for _, identifier := range []string{"gabe", "GABE@valve.com"} {
			result, err := acc.users.Login(ctx, identifier, "hunter22")
			require.NoError(t, err)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotNil(t, result.User.LastLogin)

			claims, err := acc.jwt.Parse(result.Token)
			require.NoError(t, err)
			assert.Equal(t, result.SessionID, claims.SessionID)
			assert.Equal(t, "gabe", claims.Username)
		}
	})

	t.Run("Wrong password and unknown user look the same", func(t *testing.T) {
		_, err := acc.users.Login(ctx, "gabe", "wrong-password")
		assert.True(t, apperrors.IsUnauthorized(err))
		_, err = acc.users.Login(ctx, "nobody", "hunter22")
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("Logout revokes the session", func(t *testing.T) {
		result, err := acc.users.Login(ctx, "gabe", "hunter22")
		require.NoError(t, err)
		_, err = acc.sessions.RestoreSession(ctx, result.SessionID, user.ID)
		require.NoError(t, err)

		require.NoError(t, acc.users.Logout(ctx, result.SessionID))
		_, err = acc.sessions.RestoreSession(ctx, result.SessionID, user.ID)
		assert.True(t, apperrors.IsUnauthorized(err))
	})
}

func TestCredentialUpdates(t *testing.T) {
	ctx := context.Background()
	acc := setupAccounts(t, nil)
	user, err := acc.users.Register(ctx, services.RegisterInput{Username: "robin", Email: "robin@valve.com", Password: "password1"})
	require.NoError(t, err)
	_, err = acc.users.Register(ctx, services.RegisterInput{Username: "taken", Email: "taken@valve.com", Password: "password1"})
	require.NoError(t, err)

	assert.True(t, apperrors.IsUnauthorized(acc.users.UpdateUsername(ctx, user.ID, "robin2", "bad-password")))
	assert.True(t, apperrors.IsConflict(acc.users.UpdateUsername(ctx, user.ID, "taken", "password1")))
	require.NoError(t, acc.users.UpdateUsername(ctx, user.ID, "robin2", "password1"))
	require.NoError(t, acc.users.UpdateEmail(ctx, user.ID, "new@valve.com", "password1"))
	require.NoError(t, acc.users.UpdatePassword(ctx, user.ID, "password1", "password2"))

	_, err = acc.users.Login(ctx, "new@valve.com", "password1")
	assert.True(t, apperrors.IsUnauthorized(err))
	result, err := acc.users.Login(ctx, "robin2", "password2")
	require.NoError(t, err)
	assert.Equal(t, "new@valve.com", result.User.Email)

	description := "Speedrunner"
	updated, err := acc.users.UpdateProfile(ctx, user.ID, services.ProfileInput{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "Speedrunner", updated.Description)

	require.NoError(t, acc.users.DeleteAccount(ctx, user.ID, "password2"))
	_, err = acc.users.GetUserByID(ctx, user.ID)
	assert.True(t, apperrors.IsNotFound(err))
	_, err = acc.sessions.GetSession(ctx, result.SessionID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRestoreSessionFromCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	cache, err := redis_services.NewRedisClient(mr.Addr(), 0)
	require.NoError(t, err)
	acc := setupAccounts(t, cache)

	user, err := acc.users.Register(ctx, services.RegisterInput{Username: "gabe", Email: "gabe@valve.com", Password: "hunter22"})
	require.NoError(t, err)
	result, err := acc.users.Login(ctx, "gabe", "hunter22")
	require.NoError(t, err)
	assert.True(t, mr.Exists("session:"+result.SessionID))

	details, err := acc.sessions.RestoreSession(ctx, result.SessionID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "gabe", details.User.Username)

	_, err = acc.sessions.RestoreSession(ctx, result.SessionID, user.ID+1)
	assert.True(t, apperrors.IsUnauthorized(err))

	pending, err := cache.PopLastSeen(ctx)
	require.NoError(t, err)
	assert.Contains(t, pending, result.SessionID)

	require.NoError(t, acc.sessions.EndAllSessions(ctx, user.ID))
	assert.False(t, mr.Exists("session:"+result.SessionID))
}

func TestRenameRefreshesCachedSessions(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	cache, err := redis_services.NewRedisClient(mr.Addr(), 0)
	require.NoError(t, err)
	acc := setupAccounts(t, cache)

	user, err := acc.users.Register(ctx, services.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)
	result, err := acc.users.Login(ctx, "alice", "password1")
	require.NoError(t, err)
	details, err := acc.sessions.RestoreSession(ctx, result.SessionID, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", details.User.Username)

	require.NoError(t, acc.users.UpdateUsername(ctx, user.ID, "alice2", "password1"))
	_, err = acc.users.Register(ctx, services.RegisterInput{Username: "alice", Email: "other@example.com", Password: "password1"})
	require.NoError(t, err)

	details, err = acc.sessions.RestoreSession(ctx, result.SessionID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", details.User.Username, "the old name must not authorize the renamed user")

	require.NoError(t, acc.users.UpdateEmail(ctx, user.ID, "new@example.com", "password1"))
	details, err = acc.sessions.RestoreSession(ctx, result.SessionID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", details.User.Email)
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	acc := setupAccounts(t, nil)
	_, err := acc.users.Register(ctx, services.RegisterInput{Username: "gabe", Email: "gabe@valve.com", Password: "hunter22"})
	require.NoError(t, err)
	login, err := acc.users.Login(ctx, "gabe", "hunter22")
	require.NoError(t, err)

	_, err = acc.resets.RequestReset(ctx, "nobody@valve.com")
	assert.True(t, apperrors.IsNotFound(err))

	code, err := acc.resets.RequestReset(ctx, "gabe@valve.com")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	ok, err := acc.resets.VerifyResetCode(ctx, "gabe@valve.com", code)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = acc.resets.VerifyResetCode(ctx, "gabe@valve.com", "x"+code)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, acc.resets.ResetPassword(ctx, "gabe@valve.com", code, "new-password"))
	err = acc.resets.ResetPassword(ctx, "gabe@valve.com", code, "other-password")
	assert.True(t, apperrors.IsValidation(err), "a used code must not work twice")

	_, err = acc.users.Login(ctx, "gabe", "new-password")
	require.NoError(t, err)
	_, err = acc.sessions.GetSession(ctx, login.SessionID)
	assert.True(t, apperrors.IsNotFound(err), "a reset signs out existing sessions")

	removed, err := acc.resets.CleanupExpiredCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

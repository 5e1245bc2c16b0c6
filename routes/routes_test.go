package routes_test

import (
	"SteamProfile/apperrors"
	"SteamProfile/config"
	"SteamProfile/config/swagger"
	models "SteamProfile/models/postgres"
	"SteamProfile/services"
	"SteamProfile/testhelpers"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t      *testing.T
	server *testhelpers.TestServer
	token  string
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.server.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), "body: %s", w.Body.String())
}

// register creates the account over HTTP and returns a logged in client
func register(t *testing.T, server *testhelpers.TestServer, username string) (*client, models.User) {
	t.Helper()
	anon := &client{t: t, server: server}
	w := anon.do(http.MethodPost, "/api/Users/register", services.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = anon.do(http.MethodPost, "/api/Users/login", services.LoginInput{Identifier: username, Password: "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result services.LoginResult
	decode(t, w, &result)
	require.NotEmpty(t, result.Token)
	return &client{t: t, server: server, token: result.Token}, result.User
}

func TestPingAndHealth(t *testing.T) {
	server := testhelpers.NewTestServer(t, nil)
	anon := &client{t: t, server: server}

	w := anon.do(http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	w = anon.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var health map[string]string
	decode(t, w, &health)
	assert.Equal(t, "ok", health["database"])
	assert.Equal(t, "disabled", health["redis"])
}

func TestAuthentication(t *testing.T) {
	server := testhelpers.NewTestServer(t, nil)
	alice, user := register(t, server, "alice")

	t.Run("Missing token", func(t *testing.T) {
		anon := &client{t: t, server: server}
		w := anon.do(http.MethodGet, "/api/Users/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var body map[string]string
		decode(t, w, &body)
		assert.Equal(t, string(apperrors.Unauthorized), body["type"])
	})

	t.Run("Forged token", func(t *testing.T) {
		forged := &client{t: t, server: server, token: "not.a.token"}
		w := forged.do(http.MethodGet, "/api/Users/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Wrong password", func(t *testing.T) {
		anon := &client{t: t, server: server}
		w := anon.do(http.MethodPost, "/api/Users/login", services.LoginInput{Identifier: "alice", Password: "wrong-password"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Me returns the caller", func(t *testing.T) {
		w := alice.do(http.MethodGet, "/api/Users/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var me models.User
		decode(t, w, &me)
		assert.Equal(t, user.ID, me.ID)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Logout revokes the token", func(t *testing.T) {
		w := alice.do(http.MethodPost, "/api/Users/logout", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = alice.do(http.MethodGet, "/api/Users/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCallerMustOwnTheResource(t *testing.T) {
	server := testhelpers.NewTestServer(t, nil)
	alice, _ := register(t, server, "alice")
	_, bob := register(t, server, "bob")

	w := alice.do(http.MethodPost, fmt.Sprintf("/api/Wallet/%d/add-money", bob.ID), services.AmountInput{Amount: decimal.NewFromInt(10)})
	assert.Equal(t, http.StatusForbidden, w.Code)

	description := "hacked"
	w = alice.do(http.MethodPut, fmt.Sprintf("/api/Users/%d/profile", bob.ID), services.ProfileInput{Description: &description})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = alice.do(http.MethodPost, "/api/FriendRequest", models.FriendRequest{SenderUsername: "bob", ReceiverUsername: "alice"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = alice.do(http.MethodGet, "/api/FriendRequest/bob", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFriendWorkflow(t *testing.T) {
	server := testhelpers.NewTestServer(t, nil)
	alice, aliceUser := register(t, server, "alice")
	bob, bobUser := register(t, server, "bob")

	w := alice.do(http.MethodPost, "/api/FriendRequest", models.FriendRequest{SenderUsername: "alice", ReceiverUsername: "bob"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = alice.do(http.MethodPost, "/api/FriendRequest", models.FriendRequest{SenderUsername: "alice", ReceiverUsername: "bob"})
	assert.Equal(t, http.StatusConflict, w.Code, "a second request is a conflict")

	w = bob.do(http.MethodGet, "/api/FriendRequest/bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var received []models.FriendRequest
	decode(t, w, &received)
	require.Len(t, received, 1)
	assert.Equal(t, "alice", received[0].SenderUsername)

	w = alice.do(http.MethodGet, fmt.Sprintf("/api/Friendships/status/%d/%d", aliceUser.ID, bobUser.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"RequestSent"}`, w.Body.String())

	pair := services.FriendRequestPair{SenderUsername: "alice", ReceiverUsername: "bob"}
	w = alice.do(http.MethodPost, "/api/FriendRequest/accept", pair)
	assert.Equal(t, http.StatusForbidden, w.Code, "only the receiver accepts")

	w = bob.do(http.MethodPost, "/api/FriendRequest/accept", pair)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"accepted":true}`, w.Body.String())

	w = bob.do(http.MethodGet, fmt.Sprintf("/api/Friendships/status/%d/%d", bobUser.ID, aliceUser.ID), nil)
	assert.JSONEq(t, `{"status":"Friends"}`, w.Body.String())

	w = bob.do(http.MethodGet, fmt.Sprintf("/api/Friendships/count/%d", aliceUser.ID), nil)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())

	w = bob.do(http.MethodGet, "/api/FriendRequest/bob", nil)
	assert.JSONEq(t, `[]`, w.Body.String(), "accepting consumes the request")

	w = alice.do(http.MethodDelete, fmt.Sprintf("/api/Friendships/%d/%d", aliceUser.ID, bobUser.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = alice.do(http.MethodGet, fmt.Sprintf("/api/Friendships/exists/%d/%d", aliceUser.ID, bobUser.ID), nil)
	assert.JSONEq(t, `{"exists":false}`, w.Body.String())
}

func TestWalletOverHTTP(t *testing.T) {
	server := testhelpers.NewTestServer(t, nil)
	alice, user := register(t, server, "alice")

	w := alice.do(http.MethodPost, fmt.Sprintf("/api/Wallet/%d/add-money", user.ID), services.AmountInput{Amount: decimal.NewFromInt(25)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = alice.do(http.MethodPost, fmt.Sprintf("/api/Wallet/%d/add-money", user.ID), services.AmountInput{Amount: decimal.NewFromInt(-5)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = alice.do(http.MethodGet, fmt.Sprintf("/api/Wallet/%d/balance", user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Balance decimal.Decimal `json:"balance"`
	}
	decode(t, w, &body)
	assert.True(t, decimal.NewFromInt(25).Equal(body.Balance), "balance %s", body.Balance)
}

func TestPasswordResetOverHTTP(t *testing.T) {
	server := testhelpers.NewTestServer(t, nil)
	register(t, server, "alice")
	anon := &client{t: t, server: server}

	w := anon.do(http.MethodPost, "/api/PasswordReset/request", services.ResetRequestInput{Email: "alice@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Code string `json:"code"`
	}
	decode(t, w, &body)
	require.NotEmpty(t, body.Code)

	w = anon.do(http.MethodPost, "/api/PasswordReset/verify", services.ResetVerifyInput{Email: "alice@example.com", Code: body.Code})
	assert.JSONEq(t, `{"valid":true}`, w.Body.String())

	w = anon.do(http.MethodPost, "/api/PasswordReset/reset", services.ResetPasswordInput{
		Email: "alice@example.com", Code: body.Code, NewPassword: "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = anon.do(http.MethodPost, "/api/Users/login", services.LoginInput{Identifier: "alice", Password: "brand-new-pass"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResetCodesHiddenByDefault(t *testing.T) {
	server := testhelpers.NewTestServer(t, func(cfg *config.Config) { cfg.ExposeResetCodes = false })
	register(t, server, "alice")
	anon := &client{t: t, server: server}

	w := anon.do(http.MethodPost, "/api/PasswordReset/request", services.ResetRequestInput{Email: "alice@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	decode(t, w, &body)
	assert.Equal(t, "Reset code generated", body["message"])
	assert.NotContains(t, body, "code")
}

func TestLoginIsRateLimited(t *testing.T) {
	server := testhelpers.NewTestServer(t, func(cfg *config.Config) {
		cfg.LoginRateLimit = 0.001
		cfg.LoginBurst = 3
	})
	anon := &client{t: t, server: server}

	codes := []int{}
	for i := 0; i < 4; i++ {
		w := anon.do(http.MethodPost, "/api/Users/login", services.LoginInput{Identifier: "nobody", Password: "password123"})
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestForwardedForIsIgnoredFromUntrustedPeers(t *testing.T) {
	server := testhelpers.NewTestServer(t, func(cfg *config.Config) {
		cfg.LoginRateLimit = 0.001
		cfg.LoginBurst = 3
	})

	limited := false
	for i := 0; i < 10; i++ {
		data, err := json.Marshal(services.LoginInput{Identifier: "nobody", Password: "password123"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/Users/login", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited = true
		}
	}
	assert.True(t, limited, "rotating X-Forwarded-For must not reset the bucket")
}

func TestForwardedForFromTrustedProxy(t *testing.T) {
	server := testhelpers.NewTestServer(t, func(cfg *config.Config) {
		cfg.LoginRateLimit = 0.001
		cfg.LoginBurst = 1
		// httptest requests come from 192.0.2.1
		cfg.TrustedProxies = []string{"192.0.2.1"}
	})

	for i := 0; i < 3; i++ {
		data, err := json.Marshal(services.LoginInput{Identifier: "nobody", Password: "password123"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/Users/login", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "each forwarded client has its own bucket")
	}
}

func TestEveryRouteIsDocumented(t *testing.T) {
	server := testhelpers.NewTestServer(t, nil)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(swagger.SwaggerInfo.ReadDoc()), &doc))

	param := regexp.MustCompile(`:(\w+)`)
	for _, route := range server.Router.Routes() {
		if strings.HasPrefix(route.Path, "/swagger") || route.Path == "/metrics" {
			continue
		}
		path := param.ReplaceAllString(route.Path, "{$1}")
		t.Run(route.Method+" "+path, func(t *testing.T) {
			ops, ok := doc.Paths[path]
			require.True(t, ok, "path missing from the API docs")
			assert.Contains(t, ops, strings.ToLower(route.Method))
		})
	}
}

package utils

import (
	"SteamProfile/apperrors"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	t.Run("Issue and parse", func(t *testing.T) {
		token, expiresAt, err := manager.Issue(42, "gabe@valve.com", "gabe", "session-1")
		require.NoError(t, err)
		assert.True(t, expiresAt.After(time.Now()))

		claims, err := manager.Parse("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, "gabe@valve.com", claims.Email)
		assert.Equal(t, "gabe", claims.Username)
		assert.Equal(t, "session-1", claims.SessionID)

		id, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, uint(42), id)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		token, _, err := NewJWTManager("other", time.Hour).Issue(1, "a@b.c", "a", "s")
		require.NoError(t, err)

		_, err = manager.Parse(token)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("Expired", func(t *testing.T) {
		token, _, err := NewJWTManager("test-secret", -time.Minute).Issue(1, "a@b.c", "a", "s")
		require.NoError(t, err)

		_, err = manager.Parse(token)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := manager.Parse("Bearer ")
		assert.True(t, apperrors.IsUnauthorized(err))
	})
}

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found", apperrors.NewNotFound("User not found"), http.StatusNotFound, "User not found"},
		{"forbidden", apperrors.NewForbidden("Not yours"), http.StatusForbidden, "Not yours"},
		{"internal hides detail", errors.New("pq: relation missing"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			AbortWithError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/pushed", func(c *gin.Context) { _ = c.Error(apperrors.NewConflict("taken")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pushed", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}

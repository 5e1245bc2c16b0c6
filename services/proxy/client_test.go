package proxy

import (
	"SteamProfile/apperrors"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFromResponse(t *testing.T) {
	err := errorFromResponse(http.StatusConflict, []byte(`{"error":"Username taken","type":"Conflict"}`))
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "Username taken")

	err = errorFromResponse(http.StatusNotFound, []byte(`{"message":"gone"}`))
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "gone")

	err = errorFromResponse(http.StatusBadGateway, []byte(`<html>bad gateway</html>`))
	assert.True(t, apperrors.IsTransient(err))
}

func TestSessionFallsBackToDefault(t *testing.T) {
	fallback := NewClientSession()
	fallback.Set("default-token", "s1", nil)
	p := NewServiceProxy("http://localhost:8080/", fallback, nil)

	assert.Equal(t, "http://localhost:8080", p.baseURL)
	assert.Equal(t, "default-token", p.Session(context.Background()).Token())

	other := NewClientSession()
	other.Set("other-token", "s2", nil)
	assert.Equal(t, "other-token", p.Session(WithSession(context.Background(), other)).Token())
}

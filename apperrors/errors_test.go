package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorKindsMatchSentinels(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotFound("user %d not found", 7))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, NotFound, KindOf(err))
	assert.Equal(t, Internal, KindOf(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("x"), http.StatusNotFound},
		{"conflict", NewConflict("x"), http.StatusConflict},
		{"unauthorized", NewUnauthorized("x"), http.StatusUnauthorized},
		{"forbidden", NewForbidden("x"), http.StatusForbidden},
		{"validation", NewValidation("x"), http.StatusBadRequest},
		{"transient", NewTransient(errors.New("io"), "x"), http.StatusServiceUnavailable},
		{"foreign", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, Unauthorized, FromStatus(401, "", "").Kind)
	assert.Equal(t, Unauthorized, FromStatus(403, "", "").Kind)
	assert.Equal(t, NotFound, FromStatus(404, "", "").Kind)
	assert.Equal(t, Conflict, FromStatus(409, "", "").Kind)
	assert.Equal(t, ValidationFailed, FromStatus(422, "", "").Kind)

	err := FromStatus(500, "", `{"error":"boom"}`)
	assert.Equal(t, Internal, err.Kind)
	assert.Equal(t, 500, err.StatusCode)
	assert.Equal(t, `{"error":"boom"}`, err.Body)
	assert.Equal(t, "Internal Server Error", err.Message)
}

func TestFromDB(t *testing.T) {
	assert.Nil(t, FromDB(nil, "user"))
	assert.True(t, IsNotFound(FromDB(gorm.ErrRecordNotFound, "user")))
	assert.True(t, IsConflict(FromDB(gorm.ErrDuplicatedKey, "user")))
	assert.True(t, IsConflict(FromDB(&pq.Error{Code: "23505"}, "user")))
	assert.True(t, IsConflict(FromDB(errors.New("UNIQUE constraint failed: users.email"), "user")))
	assert.True(t, IsTransient(FromDB(context.DeadlineExceeded, "user")))
	assert.Equal(t, Internal, KindOf(FromDB(errors.New("syntax error"), "user")))

	already := NewValidation("bad")
	assert.Same(t, already, FromDB(already, "user"))
}

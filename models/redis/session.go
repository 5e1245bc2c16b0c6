package redis

import "time"

// CachedSession mirrors a sessions row so the auth middleware can skip SQL
type CachedSession struct {
	SessionID string    `json:"session_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserPresence tells friends whether a user currently has a realtime connection
type UserPresence struct {
	Username string    `json:"username"`
	Online   bool      `json:"online"`
	LastSeen time.Time `json:"last_seen"`
}

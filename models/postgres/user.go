package postgres

import (
	"time"
)

/*
 * 'User' is a registered account. Username and email are both unique and both
 * can be used to log in.
 */
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email          string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash   string     `gorm:"size:255;not null" json:"-"`
	IsDeveloper    bool       `gorm:"not null;default:false" json:"isDeveloper"`
	ProfilePicture string     `gorm:"size:255" json:"profilePicture"`
	Description    string     `gorm:"size:500" json:"description"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
}

/*
 * 'Session' is a server side login session. The JWT handed to API clients
 * carries its id, so deleting the row revokes the token.
 */
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"sessionId"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
	LastSeen  time.Time `json:"lastSeen"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// PasswordResetCode is a short numeric code mailed to the user
type PasswordResetCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Code      string    `gorm:"size:12;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `json:"createdAt"`
}

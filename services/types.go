package services

import (
	models "SteamProfile/models/postgres"
	"time"

	"github.com/shopspring/decimal"
)

type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsDeveloper bool   `json:"isDeveloper"`
}

type LoginResult struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	SessionID string      `json:"sessionId"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type ProfileInput struct {
	Description    *string `json:"description,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// SessionDetails is what a restored session knows about its user
type SessionDetails struct {
	Session models.Session `json:"session"`
	User    models.User    `json:"user"`
}

type CollectionInput struct {
	Name         string `json:"name"`
	CoverPicture string `json:"coverPicture"`
	IsPublic     bool   `json:"isPublic"`
}

type OwnedGameInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	CoverPicture string `json:"coverPicture"`
}

type ReviewInput struct {
	GameID        uint    `json:"gameId"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	IsRecommended bool    `json:"isRecommended"`
	Rating        float64 `json:"rating"`
	HoursPlayed   int     `json:"hoursPlayed"`
}

type ReviewQuery struct {
	SortBy      string `json:"sortBy"`
	Recommended *bool  `json:"recommended,omitempty"`
}

type ForumQuery struct {
	Page         int    `json:"page"`
	PageSize     int    `json:"pageSize"`
	PositiveOnly bool   `json:"positiveOnly"`
	GameID       *uint  `json:"gameId,omitempty"`
	Filter       string `json:"filter"`
}

type ForumPostInput struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	GameID *uint  `json:"gameId,omitempty"`
}

// TimeSpan bounds GetTopPosts
type TimeSpan string

const (
	SpanDay     TimeSpan = "day"
	SpanWeek    TimeSpan = "week"
	SpanMonth   TimeSpan = "month"
	SpanYear    TimeSpan = "year"
	SpanAllTime TimeSpan = "all"
)

// Since returns the oldest creation time included in the span
func (s TimeSpan) Since(now time.Time) time.Time {
	switch s {
	case SpanDay:
		return now.AddDate(0, 0, -1)
	case SpanWeek:
		return now.AddDate(0, 0, -7)
	case SpanMonth:
		return now.AddDate(0, -1, 0)
	case SpanYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// Request bodies shared by the REST controllers and the HTTP proxies

type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type SessionRequest struct {
	SessionID string `json:"sessionId"`
	UserID    uint   `json:"userId"`
}

type UsernameInput struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
}

type EmailInput struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
}

type PasswordChangeInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type PasswordConfirmation struct {
	Password string `json:"password"`
}

type ResetRequestInput struct {
	Email string `json:"email"`
}

type ResetVerifyInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ResetPasswordInput struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type FriendRequestPair struct {
	SenderUsername   string `json:"senderUsername"`
	ReceiverUsername string `json:"receiverUsername"`
}

type AmountInput struct {
	Amount decimal.Decimal `json:"amount"`
}

type FeatureRequest struct {
	UserID    uint `json:"userId"`
	FeatureID uint `json:"featureId"`
}

type ContentInput struct {
	Content string `json:"content"`
}

type VoteInput struct {
	Kind  string `json:"kind,omitempty"`
	Value int    `json:"value,omitempty"`
}

package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSelfFriendship = errors.New("a user cannot be friends with themselves")

/*
 * 'Friendship' represents a friendship between two users. There is exactly one
 * row per pair, stored with the lower user id in UserID.
 */
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_friendships_pair" json:"userId"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_friendships_pair;index" json:"friendId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CanonicalPair orders two user ids the way friendship rows store them
func CanonicalPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// GORM hook to reject self friendships and keep the pair in canonical order
func (f *Friendship) BeforeSave(tx *gorm.DB) error {
	if f.UserID == f.FriendID {
		return ErrSelfFriendship
	}
	f.UserID, f.FriendID = CanonicalPair(f.UserID, f.FriendID)
	return nil
}

// Other returns the id on the other side of the friendship
func (f *Friendship) Other(userID uint) uint {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}

/*
 * 'FriendRequest' is a pending request from one user to another. Accepting it
 * turns it into a Friendship, rejecting it deletes it.
 */
type FriendRequest struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	SenderUsername   string    `gorm:"size:50;not null;uniqueIndex:idx_friend_requests_pair" json:"senderUsername"`
	ReceiverUsername string    `gorm:"size:50;not null;uniqueIndex:idx_friend_requests_pair;index" json:"receiverUsername"`
	Email            string    `gorm:"size:100" json:"email"`
	ProfilePhotoPath string    `gorm:"size:255" json:"profilePhotoPath"`
	RequestDate      time.Time `gorm:"not null" json:"requestDate"`
}

// FriendshipStatus is the relation between a viewer and another user
type FriendshipStatus string

const (
	NotFriends      FriendshipStatus = "NotFriends"
	RequestSent     FriendshipStatus = "RequestSent"
	RequestReceived FriendshipStatus = "RequestReceived"
	Friends         FriendshipStatus = "Friends"
)

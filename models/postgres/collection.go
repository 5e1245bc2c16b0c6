package postgres

import (
	"time"
)

/*
 * 'OwnedGame' is a game in a user's library. Collections group owned games.
 */
type OwnedGame struct {
	ID           uint      `gorm:"primaryKey" json:"gameId"`
	UserID       uint      `gorm:"not null;index" json:"userId"`
	Title        string    `gorm:"size:100;not null" json:"title"`
	Description  string    `gorm:"size:1000" json:"description"`
	CoverPicture string    `gorm:"size:255" json:"coverPicture"`
	AcquiredAt   time.Time `json:"acquiredAt"`
}

/*
 * 'Collection' is a named group of a user's owned games. Public collections
 * show up on the user's profile.
 */
type Collection struct {
	ID           uint      `gorm:"primaryKey" json:"collectionId"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_collections_user_name" json:"userId"`
	Name         string    `gorm:"size:100;not null;uniqueIndex:idx_collections_user_name" json:"name"`
	CoverPicture string    `gorm:"size:255" json:"coverPicture"`
	IsPublic     bool      `gorm:"not null" json:"isPublic"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CollectionGame is the join between a collection and an owned game
type CollectionGame struct {
	CollectionID uint      `gorm:"primaryKey;autoIncrement:false" json:"collectionId"`
	GameID       uint      `gorm:"primaryKey;autoIncrement:false;index" json:"gameId"`
	AddedAt      time.Time `json:"addedAt"`
}

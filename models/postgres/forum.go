package postgres

import (
	"time"
)

/*
 * 'ForumPost' is a community thread, optionally about one game. Score is the
 * sum of the post's vote ledger.
 */
type ForumPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	AuthorID  uint      `gorm:"not null;index" json:"authorId"`
	GameID    *uint     `gorm:"index" json:"gameId,omitempty"`
	Score     int       `gorm:"not null;default:0;index" json:"score"`
	CreatedAt time.Time `gorm:"index" json:"timeStamp"`
}

type ForumComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	AuthorID  uint      `gorm:"not null;index" json:"authorId"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Score     int       `gorm:"not null;default:0" json:"score"`
	CreatedAt time.Time `json:"timeStamp"`
}

// ForumPostVote holds +1 or -1 per (post, user)
type ForumPostVote struct {
	PostID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID uint `gorm:"primaryKey;autoIncrement:false"`
	Value  int  `gorm:"not null"`
}

// ForumCommentVote holds +1 or -1 per (comment, user)
type ForumCommentVote struct {
	CommentID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	Value     int  `gorm:"not null"`
}

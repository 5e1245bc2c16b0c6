package postgres

import (
	"time"
)

/*
 * 'NewsPost' is written by developers. Like, dislike and comment counters are
 * denormalized and only change in the same transaction as the ledger rows.
 */
type NewsPost struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AuthorID   uint      `gorm:"not null;index" json:"authorId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	UploadedOn time.Time `gorm:"not null;index" json:"uploadedOn"`
	NrLikes    int       `gorm:"not null;default:0" json:"nrLikes"`
	NrDislikes int       `gorm:"not null;default:0" json:"nrDislikes"`
	NrComments int       `gorm:"not null;default:0" json:"nrComments"`
}

type NewsComment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PostID      uint      `gorm:"not null;index" json:"postId"`
	AuthorID    uint      `gorm:"not null;index" json:"authorId"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CommentDate time.Time `gorm:"not null" json:"commentDate"`
}

// NewsRating is one user's like (true) or dislike (false) of a post
type NewsRating struct {
	PostID   uint `gorm:"primaryKey;autoIncrement:false" json:"postId"`
	AuthorID uint `gorm:"primaryKey;autoIncrement:false" json:"authorId"`
	IsLike   bool `gorm:"not null" json:"ratingType"`
}

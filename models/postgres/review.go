package postgres

import (
	"time"
)

/*
 * 'Review' is one user's opinion of one game. HelpfulVotes and FunnyVotes
 * mirror the ReviewVote ledger.
 */
type Review struct {
	ID            uint      `gorm:"primaryKey" json:"reviewId"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_reviews_user_game" json:"userId"`
	GameID        uint      `gorm:"not null;uniqueIndex:idx_reviews_user_game;index" json:"gameId"`
	Title         string    `gorm:"size:100;not null" json:"reviewTitleText"`
	Content       string    `gorm:"type:text;not null" json:"reviewContentText"`
	IsRecommended bool      `gorm:"not null" json:"isRecommended"`
	Rating        float64   `gorm:"not null" json:"numericRatingGivenByUser"`
	HoursPlayed   int       `gorm:"not null;default:0" json:"totalHoursPlayedByReviewer"`
	HelpfulVotes  int       `gorm:"not null;default:0" json:"totalHelpfulVotesReceived"`
	FunnyVotes    int       `gorm:"not null;default:0" json:"totalFunnyVotesReceived"`
	CreatedAt     time.Time `json:"dateAndTimeWhenReviewWasCreated"`
	UpdatedAt     time.Time `json:"dateAndTimeWhenReviewWasUpdated"`
}

// ReviewVote is one user's helpful or funny vote on a review
type ReviewVote struct {
	ReviewID uint   `gorm:"primaryKey;autoIncrement:false"`
	UserID   uint   `gorm:"primaryKey;autoIncrement:false"`
	Kind     string `gorm:"primaryKey;size:10"`
}

// ReviewStats summarizes the reviews of one game
type ReviewStats struct {
	TotalReviews       int64   `json:"totalReviews"`
	PositiveReviews    int64   `json:"positiveReviews"`
	NegativeReviews    int64   `json:"negativeReviews"`
	PositivePercentage float64 `json:"positivePercentage"`
	AverageRating      float64 `json:"averageRating"`
}

package postgres

import (
	"time"
)

// Achievement categories, each backed by one counter
const (
	AchievementFriendships     = "Friendships"
	AchievementOwnedGames      = "OwnedGames"
	AchievementReviewsGiven    = "NumberOfReviewsGiven"
	AchievementReviewsReceived = "NumberOfReviewsReceived"
	AchievementPosts           = "NumberOfPosts"
	AchievementYearsOfActivity = "YearsOfActivity"
	AchievementDeveloper       = "Developer"
)

/*
 * 'Achievement' unlocks once the counter of its Type reaches Threshold and
 * pays Points into the user's wallet.
 */
type Achievement struct {
	ID          uint   `gorm:"primaryKey" json:"achievementId"`
	Code        string `gorm:"size:60;not null;uniqueIndex" json:"code"`
	Name        string `gorm:"size:100;not null" json:"achievementName"`
	Description string `gorm:"size:255" json:"description"`
	Type        string `gorm:"size:40;not null;index" json:"achievementType"`
	Threshold   int    `gorm:"not null" json:"threshold"`
	Points      int    `gorm:"not null" json:"points"`
	Icon        string `gorm:"size:255" json:"iconUrl"`
}

type UserAchievement struct {
	UserID        uint      `gorm:"primaryKey;autoIncrement:false"`
	AchievementID uint      `gorm:"primaryKey;autoIncrement:false"`
	UnlockedAt    time.Time `gorm:"not null"`
}

// AchievementStatus is a catalog entry seen from one user
type AchievementStatus struct {
	Achievement
	Unlocked   bool       `json:"isUnlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

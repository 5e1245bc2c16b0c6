package postgres

import (
	"SteamProfile/constants/economy"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DefaultFeatures is the cosmetic catalog inserted by MigrateDatabase
func DefaultFeatures() []Feature {
	return []Feature{
		{Name: "Black Hat", Type: economy.FeatureHat, Price: decimal.NewFromInt(20), Description: "An elegant hat", Source: "Assets/Features/Hats/black-hat.png",
			Metadata: datatypes.JSON(`{"offsetY":-40}`)},
		{Name: "Party Hat", Type: economy.FeatureHat, Price: decimal.NewFromInt(15), Description: "For every celebration", Source: "Assets/Features/Hats/party-hat.png",
			Metadata: datatypes.JSON(`{"offsetY":-45}`)},
		{Name: "Cat", Type: economy.FeaturePet, Price: decimal.NewFromInt(30), Description: "A curious cat", Source: "Assets/Features/Pets/cat.png",
			Metadata: datatypes.JSON(`{"position":"bottom-left"}`)},
		{Name: "Dog", Type: economy.FeaturePet, Price: decimal.NewFromInt(30), Description: "A loyal dog", Source: "Assets/Features/Pets/dog.png",
			Metadata: datatypes.JSON(`{"position":"bottom-right"}`)},
		{Name: "Golden Frame", Type: economy.FeatureFrame, Price: decimal.NewFromInt(50), Description: "A shiny golden frame", Source: "Assets/Features/Frames/golden.png",
			Metadata: datatypes.JSON(`{"color":"#d4af37"}`)},
		{Name: "Neon Frame", Type: economy.FeatureFrame, Price: decimal.NewFromInt(40), Description: "Glows in the dark", Source: "Assets/Features/Frames/neon.png",
			Metadata: datatypes.JSON(`{"color":"#39ff14"}`)},
		{Name: "Smiley", Type: economy.FeatureEmoji, Price: decimal.NewFromInt(5), Description: "Always happy", Source: "Assets/Features/Emojis/smiley.png"},
		{Name: "Galaxy", Type: economy.FeatureBackground, Price: decimal.NewFromInt(60), Description: "A view of the stars", Source: "Assets/Features/Backgrounds/galaxy.png"},
	}
}

// DefaultAchievements is the achievement catalog inserted by MigrateDatabase
func DefaultAchievements() []Achievement {
	return []Achievement{
		{Code: "FRIENDSHIP1", Name: "Making Friends", Description: "Have your first friend", Type: AchievementFriendships, Threshold: 1, Points: 1},
		{Code: "FRIENDSHIP5", Name: "Social Butterfly", Description: "Have 5 friends", Type: AchievementFriendships, Threshold: 5, Points: 3},
		{Code: "FRIENDSHIP50", Name: "Popular", Description: "Have 50 friends", Type: AchievementFriendships, Threshold: 50, Points: 10},
		{Code: "OWNEDGAMES1", Name: "Collector", Description: "Own your first game", Type: AchievementOwnedGames, Threshold: 1, Points: 1},
		{Code: "OWNEDGAMES10", Name: "Hoarder", Description: "Own 10 games", Type: AchievementOwnedGames, Threshold: 10, Points: 5},
		{Code: "REVIEW1", Name: "Critic", Description: "Write your first review", Type: AchievementReviewsGiven, Threshold: 1, Points: 1},
		{Code: "REVIEW10", Name: "Seasoned Critic", Description: "Write 10 reviews", Type: AchievementReviewsGiven, Threshold: 10, Points: 5},
		{Code: "REVIEWRECEIVED1", Name: "Noticed", Description: "Receive your first review vote", Type: AchievementReviewsReceived, Threshold: 1, Points: 1},
		{Code: "POSTS1", Name: "First Words", Description: "Create your first forum post", Type: AchievementPosts, Threshold: 1, Points: 1},
		{Code: "POSTS10", Name: "Regular", Description: "Create 10 forum posts", Type: AchievementPosts, Threshold: 10, Points: 5},
		{Code: "YEARS1", Name: "Veteran", Description: "One year on the platform", Type: AchievementYearsOfActivity, Threshold: 1, Points: 5},
		{Code: "DEVELOPER", Name: "Developer", Description: "Registered as a developer", Type: AchievementDeveloper, Threshold: 1, Points: 10},
	}
}

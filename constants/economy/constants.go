package economy

import "time"

// Wallet
const (
	// Largest single deposit accepted by AddMoney
	MaxDeposit = 500
)

// Paging
const (
	NewsPostsPageSize    = 9
	NewsCommentsPageSize = 10
	ForumDefaultPageSize = 20
	ForumMaxPageSize     = 100
)

// Accounts
const (
	ResetCodeLength   = 6
	ResetCodeValidity = 15 * time.Minute
	MinPasswordLength = 8
	MaxUsernameLength = 50
)

// Feature categories
const (
	FeatureFrame      = "frame"
	FeatureEmoji      = "emoji"
	FeatureBackground = "background"
	FeaturePet        = "pet"
	FeatureHat        = "hat"
)

// Review vote kinds
const (
	VoteHelpful = "helpful"
	VoteFunny   = "funny"
)

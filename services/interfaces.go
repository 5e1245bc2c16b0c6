package services

import (
	models "SteamProfile/models/postgres"
	"context"

	"github.com/shopspring/decimal"
)

// The interfaces below are implemented twice: by the database backed services
// in this package and by the HTTP clients in services/proxy. Every method
// takes the acting user explicitly; nothing reads a process wide current user.

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserByID(ctx context.Context, userID uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
	UpdateProfile(ctx context.Context, userID uint, input ProfileInput) (*models.User, error)
	UpdateUsername(ctx context.Context, userID uint, username, currentPassword string) error
	UpdateEmail(ctx context.Context, userID uint, email, currentPassword string) error
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID uint, password string) error
}

type SessionService interface {
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	RestoreSession(ctx context.Context, sessionID string, userID uint) (*SessionDetails, error)
	EndSession(ctx context.Context, sessionID string) error
	EndAllSessions(ctx context.Context, userID uint) error
}

type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) (string, error)
	VerifyResetCode(ctx context.Context, email, code string) (bool, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type FriendService interface {
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	RemoveFriend(ctx context.Context, userID, friendID uint) error
	AreUsersFriends(ctx context.Context, userID, friendID uint) (bool, error)
	GetFriendshipCount(ctx context.Context, userID uint) (int64, error)
	// GetFriendshipStatus never fails; lookup errors read as NotFriends
	GetFriendshipStatus(ctx context.Context, currentUserID, otherUserID uint) models.FriendshipStatus
}

type FriendRequestService interface {
	SendFriendRequest(ctx context.Context, request models.FriendRequest) error
	AcceptFriendRequest(ctx context.Context, senderUsername, receiverUsername string) (bool, error)
	RejectFriendRequest(ctx context.Context, senderUsername, receiverUsername string) error
	CancelFriendRequest(ctx context.Context, senderUsername, receiverUsername string) error
	GetFriendRequests(ctx context.Context, username string) ([]models.FriendRequest, error)
	GetSentFriendRequests(ctx context.Context, username string) ([]models.FriendRequest, error)
}

type WalletService interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error)
	GetPoints(ctx context.Context, userID uint) (int, error)
	AddMoney(ctx context.Context, userID uint, amount decimal.Decimal) error
}

type FeaturesService interface {
	GetAllFeatures(ctx context.Context) ([]models.Feature, error)
	GetUserFeatures(ctx context.Context, userID uint) ([]models.UserFeature, error)
	GetFeaturesByCategories(ctx context.Context, userID uint) (map[string][]models.UserFeature, error)
	GetEquippedFeatures(ctx context.Context, userID uint) ([]models.Feature, error)
	IsFeaturePurchased(ctx context.Context, userID, featureID uint) (bool, error)
	PurchaseFeature(ctx context.Context, userID, featureID uint) error
	EquipFeature(ctx context.Context, userID, featureID uint) error
	UnequipFeature(ctx context.Context, userID, featureID uint) error
}

type CollectionsService interface {
	GetAllCollections(ctx context.Context, userID uint) ([]models.Collection, error)
	GetPublicCollections(ctx context.Context, userID uint) ([]models.Collection, error)
	GetCollection(ctx context.Context, collectionID, viewerID uint) (*models.Collection, error)
	CreateCollection(ctx context.Context, userID uint, input CollectionInput) (*models.Collection, error)
	UpdateCollection(ctx context.Context, collectionID, userID uint, input CollectionInput) error
	DeleteCollection(ctx context.Context, collectionID, userID uint) error
	AddGameToCollection(ctx context.Context, collectionID, gameID, userID uint) error
	RemoveGameFromCollection(ctx context.Context, collectionID, gameID, userID uint) error
	GetGamesInCollection(ctx context.Context, collectionID, viewerID uint) ([]models.OwnedGame, error)
	GetGamesNotInCollection(ctx context.Context, collectionID, userID uint) ([]models.OwnedGame, error)
}

type OwnedGamesService interface {
	GetAllOwnedGames(ctx context.Context, userID uint) ([]models.OwnedGame, error)
	GetOwnedGame(ctx context.Context, gameID uint) (*models.OwnedGame, error)
	AddOwnedGame(ctx context.Context, userID uint, input OwnedGameInput) (*models.OwnedGame, error)
	RemoveOwnedGame(ctx context.Context, gameID, userID uint) error
}

type ReviewsService interface {
	SubmitReview(ctx context.Context, userID uint, input ReviewInput) (*models.Review, error)
	EditReview(ctx context.Context, reviewID, userID uint, input ReviewInput) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID, userID uint) error
	GetReviewsForGame(ctx context.Context, gameID uint, query ReviewQuery) ([]models.Review, error)
	GetReviewsByUser(ctx context.Context, userID uint) ([]models.Review, error)
	GetReviewStatistics(ctx context.Context, gameID uint) (*models.ReviewStats, error)
	ToggleVote(ctx context.Context, reviewID, userID uint, kind string) (*models.Review, error)
}

type NewsService interface {
	GetPosts(ctx context.Context, page int, search string) ([]models.NewsPost, error)
	GetPost(ctx context.Context, postID uint) (*models.NewsPost, error)
	CreatePost(ctx context.Context, authorID uint, content string) (*models.NewsPost, error)
	UpdatePost(ctx context.Context, postID, authorID uint, content string) error
	DeletePost(ctx context.Context, postID, authorID uint) error
	LikePost(ctx context.Context, postID, userID uint) error
	DislikePost(ctx context.Context, postID, userID uint) error
	RemoveRating(ctx context.Context, postID, userID uint) error
	GetComments(ctx context.Context, postID uint, page int) ([]models.NewsComment, error)
	CreateComment(ctx context.Context, postID, authorID uint, content string) (*models.NewsComment, error)
	UpdateComment(ctx context.Context, commentID, authorID uint, content string) error
	DeleteComment(ctx context.Context, commentID, authorID uint) error
}

type ForumService interface {
	GetPagedPosts(ctx context.Context, query ForumQuery) ([]models.ForumPost, error)
	GetTopPosts(ctx context.Context, span TimeSpan) ([]models.ForumPost, error)
	GetPost(ctx context.Context, postID uint) (*models.ForumPost, error)
	CreatePost(ctx context.Context, authorID uint, input ForumPostInput) (*models.ForumPost, error)
	DeletePost(ctx context.Context, postID, userID uint) error
	VotePost(ctx context.Context, postID, userID uint, value int) (int, error)
	GetComments(ctx context.Context, postID uint) ([]models.ForumComment, error)
	CreateComment(ctx context.Context, postID, authorID uint, body string) (*models.ForumComment, error)
	DeleteComment(ctx context.Context, commentID, userID uint) error
	VoteComment(ctx context.Context, commentID, userID uint, value int) (int, error)
}

type AchievementsService interface {
	GetAllAchievements(ctx context.Context) ([]models.Achievement, error)
	GetAchievementsWithStatus(ctx context.Context, userID uint) ([]models.AchievementStatus, error)
	GetUnlockedAchievements(ctx context.Context, userID uint) ([]models.AchievementStatus, error)
	UpdateAchievements(ctx context.Context, userID uint) ([]models.Achievement, error)
}

// Notifier pushes realtime events to connected users
type Notifier interface {
	Notify(username, event string, payload interface{})
}

// NopNotifier drops every event
type NopNotifier struct{}

func (NopNotifier) Notify(string, string, interface{}) {}

// Realtime events
const (
	EventFriendRequestReceived = "friend_request_received"
	EventFriendRequestAccepted = "friend_request_accepted"
	EventFriendRequestRejected = "friend_request_rejected"
	EventFriendRemoved         = "friend_removed"
)

// Package proxy implements the service interfaces over the REST API, so a
// client process can use the same code paths as the server.
package proxy

import "SteamProfile/services"

var (
	_ services.UserService          = (*UserServiceProxy)(nil)
	_ services.SessionService       = (*SessionServiceProxy)(nil)
	_ services.PasswordResetService = (*PasswordResetServiceProxy)(nil)
	_ services.FriendService        = (*FriendServiceProxy)(nil)
	_ services.FriendRequestService = (*FriendRequestServiceProxy)(nil)
	_ services.WalletService        = (*WalletServiceProxy)(nil)
	_ services.FeaturesService      = (*FeaturesServiceProxy)(nil)
	_ services.CollectionsService   = (*CollectionsServiceProxy)(nil)
	_ services.OwnedGamesService    = (*OwnedGamesServiceProxy)(nil)
	_ services.ReviewsService       = (*ReviewsServiceProxy)(nil)
	_ services.NewsService          = (*NewsServiceProxy)(nil)
	_ services.ForumService         = (*ForumServiceProxy)(nil)
	_ services.AchievementsService  = (*AchievementsServiceProxy)(nil)
)

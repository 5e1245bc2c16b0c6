// Package app wires the service interfaces either to the database or to the
// REST API. Surfaces receive a *Services and never look services up globally.
package app

import (
	"SteamProfile/config"
	"SteamProfile/database"
	"SteamProfile/repositories"
	"SteamProfile/services"
	"SteamProfile/services/proxy"
	"SteamProfile/services/redis"
	"SteamProfile/utils"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Services struct {
	Users          services.UserService
	Sessions       services.SessionService
	PasswordResets services.PasswordResetService
	Friends        services.FriendService
	FriendRequests services.FriendRequestService
	Wallets        services.WalletService
	Features       services.FeaturesService
	Collections    services.CollectionsService
	OwnedGames     services.OwnedGamesService
	Reviews        services.ReviewsService
	News           services.NewsService
	Forum          services.ForumService
	Achievements   services.AchievementsService

	// Remote is true when every call goes through the REST API
	Remote bool
	// Session is the default client session of the proxies, nil in local mode
	Session *proxy.ClientSession
	// Maintenance is only available in local mode
	Maintenance *Maintenance
}

// Maintenance exposes the housekeeping operations scheduled by the cleanup job
type Maintenance struct {
	Sessions *services.LocalSessionService
	Resets   *services.LocalPasswordResetService
	Link     *database.DataLink
}

// LocalOptions are the dependencies of the database backed services
type LocalOptions struct {
	DB *gorm.DB
	// DriverName selects the DataLink placeholder style: postgres, sqlserver or sqlite
	DriverName string
	Cache      *redis.RedisClient
	Notifier   services.Notifier
	JWT        *utils.JWTManager
	SessionTTL time.Duration
}

// NewLocal builds the database backed services
func NewLocal(opts LocalOptions) (*Services, error) {
	if opts.DB == nil {
		return nil, errors.New("local services need a database")
	}
	if opts.JWT == nil {
		return nil, errors.New("local services need a JWT manager")
	}
	sqlDB, err := opts.DB.DB()
	if err != nil {
		return nil, err
	}
	driver := opts.DriverName
	if driver == "" {
		driver = "postgres"
	}

	store := repositories.NewStore(opts.DB)
	link := database.NewDataLink(sqlDB, driver)
	sessions := services.NewSessionService(store, opts.Cache, opts.SessionTTL)
	resets := services.NewPasswordResetService(store, sessions)

	return &Services{
		Users:          services.NewUserService(store, sessions, opts.JWT),
		Sessions:       sessions,
		PasswordResets: resets,
		Friends:        services.NewFriendService(store, opts.Notifier),
		FriendRequests: services.NewFriendRequestService(store, opts.Notifier),
		Wallets:        services.NewWalletService(store),
		Features:       services.NewFeaturesService(store),
		Collections:    services.NewCollectionsService(store),
		OwnedGames:     services.NewOwnedGamesService(store),
		Reviews:        services.NewReviewsService(store),
		News:           services.NewNewsService(store),
		Forum:          services.NewForumService(store),
		Achievements:   services.NewAchievementsService(store, link),
		Maintenance:    &Maintenance{Sessions: sessions, Resets: resets, Link: link},
	}, nil
}

// NewRemote builds HTTP proxies against baseURL sharing one client session.
// A nil client uses the default 30 second timeout.
func NewRemote(baseURL string, client *http.Client) *Services {
	session := proxy.NewClientSession()
	base := proxy.NewServiceProxy(baseURL, session, client)
	return &Services{
		Users:          proxy.NewUserServiceProxy(base),
		Sessions:       proxy.NewSessionServiceProxy(base),
		PasswordResets: proxy.NewPasswordResetServiceProxy(base),
		Friends:        proxy.NewFriendServiceProxy(base),
		FriendRequests: proxy.NewFriendRequestServiceProxy(base),
		Wallets:        proxy.NewWalletServiceProxy(base),
		Features:       proxy.NewFeaturesServiceProxy(base),
		Collections:    proxy.NewCollectionsServiceProxy(base),
		OwnedGames:     proxy.NewOwnedGamesServiceProxy(base),
		Reviews:        proxy.NewReviewsServiceProxy(base),
		News:           proxy.NewNewsServiceProxy(base),
		Forum:          proxy.NewForumServiceProxy(base),
		Achievements:   proxy.NewAchievementsServiceProxy(base),
		Remote:         true,
		Session:        session,
	}
}

// Build picks the wiring from UseRemoteServices. connect is only called in
// local mode, so a remote client never opens the database.
func Build(cfg *config.Config, connect func() (LocalOptions, error)) (*Services, error) {
	if cfg.UseRemoteServices {
		utils.GetLogger().Info("Using remote services", zap.String("base_url", cfg.APIBaseURL))
		return NewRemote(cfg.APIBaseURL, nil), nil
	}
	opts, err := connect()
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Using local services", zap.String("driver", opts.DriverName))
	return NewLocal(opts)
}

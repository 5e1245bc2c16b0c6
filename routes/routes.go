package routes

import (
	"SteamProfile/app"
	"SteamProfile/config"
	"SteamProfile/controllers"
	"SteamProfile/middleware"
	"SteamProfile/services/redis"
	"SteamProfile/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies is everything the routes need besides the services
type Dependencies struct {
	Config *config.Config
	JWT    *utils.JWTManager
	// DB and Redis are only used by the health check and may be nil
	DB    *gorm.DB
	Redis *redis.RedisClient
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, svc *app.Services, deps Dependencies) {
	cfg := deps.Config

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", middleware.MetricsHandler())
	router.GET("/ping", controllers.Ping)
	router.GET("/health", controllers.Health(deps.DB, deps.Redis))

	users := &controllers.UsersController{Users: svc.Users, Sessions: svc.Sessions}
	sessions := &controllers.SessionController{Sessions: svc.Sessions}
	resets := &controllers.PasswordResetController{Resets: svc.PasswordResets, ExposeCodes: cfg.ExposeResetCodes}
	friendships := &controllers.FriendshipsController{Friends: svc.Friends}
	requests := &controllers.FriendRequestController{Requests: svc.FriendRequests}
	wallet := &controllers.WalletController{Wallets: svc.Wallets}
	features := &controllers.FeaturesController{Features: svc.Features}
	collections := &controllers.CollectionsController{Collections: svc.Collections}
	ownedGames := &controllers.OwnedGamesController{Games: svc.OwnedGames}
	reviews := &controllers.ReviewsController{Reviews: svc.Reviews}
	news := &controllers.NewsController{News: svc.News}
	forum := &controllers.ForumController{Forum: svc.Forum}
	achievements := &controllers.AchievementsController{Achievements: svc.Achievements}

	limiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginBurst)

	// API routes group
	api := router.Group("/api")

	// Public routes
	api.POST("/Users/register", limiter.Handler(), users.Register)
	api.POST("/Users/login", limiter.Handler(), users.Login)
	api.POST("/Session/restore", sessions.Restore)
	api.POST("/PasswordReset/request", limiter.Handler(), resets.Request)
	api.POST("/PasswordReset/verify", limiter.Handler(), resets.Verify)
	api.POST("/PasswordReset/reset", limiter.Handler(), resets.Reset)

	authenticated := api.Group("/")
	authenticated.Use(middleware.AuthRequired(deps.JWT, svc.Sessions))
	{
		usersGroup := authenticated.Group("/Users")
		usersGroup.POST("/logout", users.Logout)
		usersGroup.GET("", users.Search)
		usersGroup.GET("/me", users.Me)
		usersGroup.GET("/by-username/:username", users.GetByUsername)
		usersGroup.GET("/:id", users.GetByID)
		usersGroup.PUT("/:id/profile", users.UpdateProfile)
		usersGroup.PUT("/:id/username", users.UpdateUsername)
		usersGroup.PUT("/:id/email", users.UpdateEmail)
		usersGroup.PUT("/:id/password", users.UpdatePassword)
		usersGroup.DELETE("/:id", users.Delete)

		sessionGroup := authenticated.Group("/Session")
		sessionGroup.GET("/:id", sessions.Get)
		sessionGroup.DELETE("/:id", sessions.End)
		sessionGroup.DELETE("/user/:userId", sessions.EndAll)

		friendsGroup := authenticated.Group("/Friendships")
		friendsGroup.GET("/user/:userId", friendships.List)
		friendsGroup.GET("/count/:userId", friendships.Count)
		friendsGroup.GET("/exists/:userId/:friendId", friendships.Exists)
		friendsGroup.GET("/status/:userId/:friendId", friendships.Status)
		friendsGroup.DELETE("/:userId/:friendId", friendships.Remove)

		requestsGroup := authenticated.Group("/FriendRequest")
		requestsGroup.POST("", requests.Send)
		requestsGroup.POST("/accept", requests.Accept)
		requestsGroup.POST("/reject", requests.Reject)
		requestsGroup.POST("/cancel", requests.Cancel)
		requestsGroup.GET("/:username", requests.Received)
		requestsGroup.GET("/:username/sent", requests.Sent)

		walletGroup := authenticated.Group("/Wallet")
		walletGroup.GET("/:userId", wallet.Get)
		walletGroup.GET("/:userId/balance", wallet.Balance)
		walletGroup.GET("/:userId/points", wallet.Points)
		walletGroup.POST("/:userId/add-money", wallet.AddMoney)

		featuresGroup := authenticated.Group("/Features")
		featuresGroup.GET("", features.List)
		featuresGroup.GET("/user/:userId", features.ForUser)
		featuresGroup.GET("/user/:userId/categories", features.Categories)
		featuresGroup.GET("/user/:userId/equipped", features.Equipped)
		featuresGroup.GET("/purchased/:userId/:featureId", features.Purchased)
		featuresGroup.POST("/purchase", features.Purchase)
		featuresGroup.POST("/equip", features.Equip)
		featuresGroup.POST("/unequip", features.Unequip)

		collectionsGroup := authenticated.Group("/Collections")
		collectionsGroup.GET("", collections.List)
		collectionsGroup.POST("", collections.Create)
		collectionsGroup.GET("/:id", collections.Get)
		collectionsGroup.PUT("/:id", collections.Update)
		collectionsGroup.DELETE("/:id", collections.Delete)
		collectionsGroup.GET("/:id/games", collections.Games)
		collectionsGroup.GET("/:id/games/not-in", collections.GamesNotIn)
		collectionsGroup.POST("/:id/games/:gameId", collections.AddGame)
		collectionsGroup.DELETE("/:id/games/:gameId", collections.RemoveGame)

		gamesGroup := authenticated.Group("/OwnedGames")
		gamesGroup.GET("", ownedGames.List)
		gamesGroup.POST("", ownedGames.Add)
		gamesGroup.GET("/:id", ownedGames.Get)
		gamesGroup.DELETE("/:id", ownedGames.Remove)

		reviewsGroup := authenticated.Group("/Reviews")
		reviewsGroup.GET("/game/:gameId", reviews.ForGame)
		reviewsGroup.GET("/game/:gameId/stats", reviews.Stats)
		reviewsGroup.GET("/user/:userId", reviews.ByUser)
		reviewsGroup.POST("", reviews.Submit)
		reviewsGroup.PUT("/:id", reviews.Edit)
		reviewsGroup.DELETE("/:id", reviews.Delete)
		reviewsGroup.POST("/:id/vote", reviews.Vote)

		newsGroup := authenticated.Group("/News")
		newsGroup.GET("/posts", news.Posts)
		newsGroup.POST("/posts", news.CreatePost)
		newsGroup.GET("/posts/:id", news.Post)
		newsGroup.PUT("/posts/:id", news.UpdatePost)
		newsGroup.DELETE("/posts/:id", news.DeletePost)
		newsGroup.POST("/posts/:id/like", news.Like)
		newsGroup.POST("/posts/:id/dislike", news.Dislike)
		newsGroup.DELETE("/posts/:id/rating", news.RemoveRating)
		newsGroup.GET("/posts/:id/comments", news.Comments)
		newsGroup.POST("/posts/:id/comments", news.CreateComment)
		newsGroup.PUT("/comments/:id", news.UpdateComment)
		newsGroup.DELETE("/comments/:id", news.DeleteComment)

		forumGroup := authenticated.Group("/Forum")
		forumGroup.GET("/posts", forum.Posts)
		forumGroup.GET("/top", forum.Top)
		forumGroup.POST("/posts", forum.CreatePost)
		forumGroup.GET("/posts/:id", forum.Post)
		forumGroup.DELETE("/posts/:id", forum.DeletePost)
		forumGroup.POST("/posts/:id/vote", forum.VotePost)
		forumGroup.GET("/posts/:id/comments", forum.Comments)
		forumGroup.POST("/posts/:id/comments", forum.CreateComment)
		forumGroup.DELETE("/comments/:id", forum.DeleteComment)
		forumGroup.POST("/comments/:id/vote", forum.VoteComment)

		achievementsGroup := authenticated.Group("/Achievements")
		achievementsGroup.GET("", achievements.List)
		achievementsGroup.GET("/user/:userId", achievements.ForUser)
		achievementsGroup.GET("/user/:userId/unlocked", achievements.Unlocked)
		achievementsGroup.POST("/user/:userId/refresh", achievements.Refresh)
	}
}

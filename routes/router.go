package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/watchable/watchable/config"
	"github.com/watchable/watchable/controllers"
	"github.com/watchable/watchable/middleware"
	"github.com/watchable/watchable/services"
	"github.com/watchable/watchable/storage"
	"github.com/watchable/watchable/stores"
	"github.com/watchable/watchable/utils"
)

// SetupRouter wires stores, services, middlewares, and controllers.
func SetupRouter(db *gorm.DB) (*gin.Engine, error) {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	store := stores.New(db)
	tokens := services.NewTokenService(services.TokenConfig{
		Secret: cfg.JWTSecret,
		TTL:    time.Duration(cfg.TokenExpireMinutes) * time.Minute,
	})
	auth := services.NewAuthService(tokens, store)
	users := services.NewUserService(store)
	guard := services.NewRelationGuard(store)
	feed := services.NewFeedAggregator(store)

	files, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	authController := controllers.NewAuthController(auth)
	userController := controllers.NewUserController(users, files)
	postController := controllers.NewPostController(guard, feed, files)
	commentController := controllers.NewCommentController(guard)
	likeController := controllers.NewLikeController(guard)

	r := gin.New()
	r.Use(utils.GinLogger(utils.Logger))
	r.Use(utils.GinRecovery(utils.Logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/"+cfg.UploadDir, "./"+cfg.UploadDir)

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "Welcome to Watchable API!"})
	})

	authRequired := middleware.AuthRequired(auth)
	rateLimited := middleware.RateLimitMiddleware()

	authGroup := r.Group("/auth")
	authGroup.Use(rateLimited)
	authGroup.POST("/token", authController.Token)

	usersGroup := r.Group("/users")
	usersGroup.POST("/create_user", rateLimited, userController.CreateUser)
	usersGroup.GET("/search", userController.Search)
	usersGroup.GET("/me", authRequired, userController.Me)
	usersGroup.PUT("/me", authRequired, userController.UpdateProfile)
	usersGroup.PUT("/me/change-password", authRequired, rateLimited, userController.ChangePassword)
	usersGroup.POST("/upload-profile-picture", authRequired, userController.UploadProfilePicture)

	postsGroup := r.Group("/posts")
	postsGroup.Use(authRequired)
	postsGroup.POST("/create_post", postController.CreatePost)
	postsGroup.GET("/all", postController.GlobalFeed)
	postsGroup.GET("/user/:id", postController.UserFeed)
	postsGroup.PUT("/:id", postController.UpdatePost)
	postsGroup.DELETE("/:id", postController.DeletePost)

	commentsGroup := r.Group("/comments")
	// GET takes a post id, DELETE a comment id; gin requires one wildcard
	// name per position.
	commentsGroup.GET("/:id", commentController.ListComments)
	commentsGroup.POST("/create_comment", authRequired, commentController.CreateComment)
	commentsGroup.DELETE("/:id", authRequired, commentController.DeleteComment)

	likesGroup := r.Group("/likes")
	likesGroup.Use(authRequired)
	likesGroup.POST("/likes", likeController.LikePost)
	likesGroup.DELETE("/:id", likeController.UnlikePost)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r, nil
}

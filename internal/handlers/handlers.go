package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"webpersonal/api/internal/cache"
	"webpersonal/api/internal/config"
	"webpersonal/api/internal/middleware"
	"webpersonal/api/internal/repository"
	"webpersonal/api/internal/security"
	"webpersonal/api/internal/service"
	"webpersonal/api/internal/storage"
)

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	tokens      *security.TokenService
	authService *service.AuthService
	userService *service.UserService
	db          *pgxpool.Pool
	cache       *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, redisClient *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	tokens := security.NewTokenService(cfg.Security.JWTSecret, cfg.Security.AccessTTL, cfg.Security.RefreshMonths)

	var userCache *cache.UserCache
	if cfg.Cache.Enabled {
		userCache = cache.NewUserCache(redisClient, cfg.Cache.UserTTL)
	}

	auth := service.NewAuthService(userRepo, tokens, log)
	users := service.NewUserService(userRepo, store, userCache, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		tokens:      tokens,
		authService: auth,
		userService: users,
		db:          db,
		cache:       redisClient,
	}
}

func (h HandlerSet) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	{
		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)
		v1.POST("/auth/refresh_access_token", h.RefreshAccessToken)

		protected := v1.Group("")
		protected.Use(middleware.Auth(h.tokens))
		protected.GET("/user/me", h.GetMe)
		protected.GET("/users", h.ListUsers)
		protected.POST("/user", h.CreateUser)
		protected.PATCH("/user/:id", h.UpdateUser)
		protected.DELETE("/user/:id", h.DeleteUser)
	}
}

package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/strettonotes/strettonotes/internal/auth"
	"github.com/strettonotes/strettonotes/internal/config"
	"github.com/strettonotes/strettonotes/internal/http/handlers"
	"github.com/strettonotes/strettonotes/internal/http/middlewares"
	"github.com/strettonotes/strettonotes/internal/observability"
	"github.com/strettonotes/strettonotes/internal/repo/postgres"
	"github.com/strettonotes/strettonotes/internal/security"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// metrics registry; the /metrics endpoint serves the same registerer
	promRegistry := prometheus.NewRegistry()
	metrics := observability.NewProm(promRegistry)

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(otelgin.Middleware("strettonotes-api"))
	r.Use(metrics.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	healthHandler := handlers.NewHealthHandler(ping)
	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/readyz", healthHandler.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, metrics)
	practiceItemsRepo := postgres.NewPracticeItemsRepo(pool, metrics)
	sessionsRepo := postgres.NewSessionsRepo(pool, metrics)
	journeysRepo := postgres.NewJourneysRepo(pool, metrics)

	// auth plumbing
	hasher := security.NewHasher(cfg.BcryptCost)
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.JWTAccessTTL)
	authMiddleware := middlewares.NewAuthMiddleware(jwtManager, usersRepo)
	loginLimiter := middlewares.NewLoginLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, hasher, jwtManager, metrics)
	practiceItemsHandler := handlers.NewPracticeItemsHandler(practiceItemsRepo)
	sessionsHandler := handlers.NewSessionsHandler(sessionsRepo)
	journeysHandler := handlers.NewJourneysHandler(journeysRepo)

	// public auth surface
	authGroup := r.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/token", loginLimiter.Middleware(middlewares.KeyByIP), authHandler.Login)
	authGroup.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)

	// owned resources; every route below requires a resolved identity
	protected := r.Group("/", authMiddleware.RequireAuth())

	items := protected.Group("/practice-items")
	items.POST("", practiceItemsHandler.Create)
	items.GET("", practiceItemsHandler.List)
	items.GET("/:id", practiceItemsHandler.GetByID)
	items.PUT("/:id", practiceItemsHandler.Update)
	items.DELETE("/:id", practiceItemsHandler.Delete)

	sessions := protected.Group("/sessions")
	sessions.POST("", sessionsHandler.Create)
	sessions.GET("", sessionsHandler.List)
	sessions.GET("/:id", sessionsHandler.GetByID)
	sessions.PUT("/:id", sessionsHandler.Update)
	sessions.DELETE("/:id", sessionsHandler.Delete)

	journeys := protected.Group("/journeys")
	journeys.POST("", journeysHandler.Create)
	journeys.GET("", journeysHandler.List)
	journeys.GET("/:id", journeysHandler.GetByID)
	journeys.PUT("/:id", journeysHandler.Update)
	journeys.DELETE("/:id", journeysHandler.Delete)

	return r
}

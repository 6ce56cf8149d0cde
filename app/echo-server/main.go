package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fairTune/app/echo-server/router"
	"fairTune/business/catalog"
	"fairTune/business/debias"
	listenerService "fairTune/business/listener"
	"fairTune/business/recommender"
	"fairTune/internal/middleware"
	"fairTune/internal/repository/archive"
	psqlRepo "fairTune/internal/repository/postgres"
	redisRepo "fairTune/internal/repository/redis"
	"fairTune/internal/rest"
	"fairTune/pkg/config"
	"fairTune/pkg/database"
	redisdb "fairTune/pkg/database/redis"
	"fairTune/pkg/logger"
	"fairTune/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting FairTune", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Redis backs session-token revocation; the service still runs
	// without it, auth then trusts JWTs alone.
	var tokenRepo *redisRepo.TokenRepository
	if redisClient, err := redisdb.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, session tokens disabled", "error", err)
	} else {
		tokenRepo = redisRepo.NewTokenRepository(redisClient)
		defer redisdb.CloseRedisClient(redisClient)
	}

	archiveStore, err := archive.NewStore(cfg.Recommend.DataPath)
	if err != nil {
		logger.Fatal("Failed to open evaluation archive store", "error", err)
	}

	metrics.Init()

	// Init validate
	validate := validator.New()

	// Init repo
	listenerRepo := psqlRepo.NewListenerRepository(db)
	historyRepo := psqlRepo.NewHistoryRepository(db)
	candidateRepo := psqlRepo.NewCandidateRepository(db)
	feedbackRepo := psqlRepo.NewFeedbackRepository(db)
	profileRepo := psqlRepo.NewRerankProfileRepository(db)

	// Init service
	recommendCfg := recommender.Config{
		Debias: debias.Config{
			PopularityAlpha: cfg.Recommend.PopularityAlpha,
			PenaltyStrength: cfg.Recommend.PenaltyStrength,
			DiversityWeight: cfg.Recommend.DiversityWeight,
			NoveltyWeight:   cfg.Recommend.NoveltyWeight,
			NoveltyBoost:    cfg.Recommend.NoveltyBoost,
			WPopularity:     debias.DefaultWPopularity,
			WDiversity:      debias.DefaultWDiversity,
			WNovelty:        debias.DefaultWNovelty,
		},
		ExplorationRate: cfg.Recommend.ExplorationRate,
		DefaultCount:    cfg.Recommend.DefaultCount,
		SessionTTL:      time.Duration(cfg.Recommend.SessionTTLMin) * time.Minute,
		MaxSessions:     cfg.Recommend.MaxSessions,
	}

	var tokens listenerService.SessionTokenStore
	if tokenRepo != nil {
		tokens = tokenRepo
	}

	listenerSvc := listenerService.NewListenerService(listenerRepo, historyRepo, validate, tokens, cfg.App.AppShareCodeKey)
	catalogSvc := catalog.NewService(candidateRepo)
	recommendSvc := recommender.NewService(
		candidateRepo,
		feedbackRepo,
		historyRepo,
		profileRepo,
		recommender.NewCleanContentChecker(listenerRepo),
		archiveStore,
		recommendCfg,
	)

	// Init handler
	listenerHandler := rest.NewListenerHandler(listenerSvc)
	recommendHandler := rest.NewRecommendHandler(recommendSvc)
	evaluationHandler := rest.NewEvaluationHandler(recommendSvc)
	catalogHandler := rest.NewCatalogHandler(catalogSvc)
	contextHandler := rest.NewContextHandler()
	adminHandler := rest.NewRerankAdminHandler(profileRepo, catalogSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	if tokenRepo != nil {
		authRequired = middleware.AuthMiddlewareWithRedis(tokenRepo)
	}
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupListenerRoutes(api, listenerHandler, authRequired)
	router.SetupRecommendRoutes(api, recommendHandler, authRequired)
	router.SetupEvaluationRoutes(api, evaluationHandler, authRequired)
	router.SetupCatalogRoutes(api, catalogHandler, contextHandler)
	router.SetupAdminRoutes(api, adminHandler, authRequired, adminOnly)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

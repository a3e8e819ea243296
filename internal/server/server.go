package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"plateful/config"
	"plateful/internal/api"
	"plateful/internal/middleware"
	"plateful/internal/service"
	"plateful/pkg/logger"
)

// Server owns the gin engine and the underlying http.Server.
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New wires the services and handlers together and returns a ready
// server. rateLimiter may be nil when redis is disabled.
func New(cfg *config.Config, db *gorm.DB, images service.ImageStore, rateLimiter *middleware.RateLimiter) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())

	authService := service.NewAuthService(db, cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	userService := service.NewUserService(db, images)
	recipeService := service.NewRecipeService(db, images)
	relationService := service.NewRelationService(db)
	subscriptionService := service.NewSubscriptionService(db)
	shoppingService := service.NewShoppingListService(db)

	authHandler := api.NewAuthHandler(authService)
	userHandler := api.NewUserHandler(authService, userService, subscriptionService)
	recipeHandler := api.NewRecipeHandler(authService, recipeService, relationService, shoppingService, rateLimiter)
	catalogHandler := api.NewCatalogHandler(db)
	shortLinkHandler := api.NewShortLinkHandler(recipeService, cfg.Server.BaseURL)

	apiGroup := router.Group("/api")
	authHandler.RegisterRoutes(apiGroup)
	userHandler.RegisterRoutes(apiGroup)
	recipeHandler.RegisterRoutes(apiGroup)
	catalogHandler.RegisterRoutes(apiGroup)
	shortLinkHandler.RegisterRoutes(apiGroup)
	shortLinkHandler.RegisterResolver(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{router: router, cfg: cfg}
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server listening", zap.String("addr", addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.L().Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Stop shuts the HTTP server down, for callers managing their own
// signal handling.
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

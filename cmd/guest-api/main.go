package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/otelqr/guest-services-api/api/swagger"
	"github.com/otelqr/guest-services-api/internal/banner"
	"github.com/otelqr/guest-services-api/internal/handler"
	"github.com/otelqr/guest-services-api/internal/middleware"
	"github.com/otelqr/guest-services-api/internal/repository"
	"github.com/otelqr/guest-services-api/internal/seed"
	"github.com/otelqr/guest-services-api/internal/service"
	"github.com/otelqr/guest-services-api/internal/store"
	"github.com/otelqr/guest-services-api/internal/translation"
	"github.com/otelqr/guest-services-api/pkg/cache"
	"github.com/otelqr/guest-services-api/pkg/config"
	"github.com/otelqr/guest-services-api/pkg/database"
	"github.com/otelqr/guest-services-api/pkg/logger"
	corsmiddleware "github.com/otelqr/guest-services-api/pkg/middleware/cors"
	reqidmiddleware "github.com/otelqr/guest-services-api/pkg/middleware/requestid"
)

// @title Guest Services API
// @version 1.0.0
// @description Hotel guest announcement and translation backend
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg.Env, cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	// Announcement store: in-memory collection hydrated from the Redis
	// snapshot, migrated forward, persisted on every mutation.
	snapshotRepo := repository.NewSnapshotRepository(redisClient, cfg.Announcements.SnapshotKey, logr)
	announcementStore := store.New(snapshotRepo, seed.Announcements(), logr)
	announcementStore.Load(context.Background())

	// Translation pipeline: dictionary, then memory+Redis cache, then
	// the online endpoint.
	translationCache := translation.NewLayeredCache(
		translation.NewMemoryCache(),
		translation.NewRedisCache(redisClient, cfg.Translation.CachePrefix, logr),
	)
	translator := translation.NewTranslator(
		translationCache,
		cfg.Translation.Endpoint,
		cfg.Translation.OnlineEnabled,
		metricsSvc,
		logr,
	)

	debouncer := translation.NewDebouncer(translator, cfg.Translation.Debounce)

	auditRepo := repository.NewAuditRepository(db)

	announcementSvc := service.NewAnnouncementService(announcementStore, auditRepo, validate, logr)
	authSvc, err := service.NewAuthService(cfg.Admin.Email, cfg.Admin.Password, auditRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err != nil {
		logr.Sugar().Fatalw("failed to init auth service", "error", err)
	}

	bannerManager := banner.NewManager(announcementStore, translator, banner.Config{
		RefreshInterval:  cfg.Announcements.RefreshInterval,
		RotationInterval: cfg.Announcements.RotationInterval,
	}, cfg.Announcements.SessionTTL, logr)
	bannerManager.Start()
	defer bannerManager.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r, cfg, handlers{
		auth:         handler.NewAuthHandler(authSvc),
		announcement: handler.NewAnnouncementHandler(announcementSvc),
		banner:       handler.NewBannerHandler(bannerManager, metricsSvc),
		translation:  handler.NewTranslationHandler(translator, debouncer, auditRepo),
		audit:        handler.NewAuditHandler(auditRepo),
	}, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

type handlers struct {
	auth         *handler.AuthHandler
	announcement *handler.AnnouncementHandler
	banner       *handler.BannerHandler
	translation  *handler.TranslationHandler
	audit        *handler.AuditHandler
}

func registerRoutes(r *gin.Engine, cfg *config.Config, h handlers, authSvc *service.AuthService) {
	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", h.auth.Login)

	// Guest surface: no authentication, session identified by header.
	api.GET("/announcements/active", h.announcement.Active)
	api.GET("/banner", h.banner.Current)
	api.POST("/banner/:id/dismiss", h.banner.Dismiss)
	api.POST("/translate", h.translation.Translate)

	admin := api.Group("/admin", middleware.JWT(authSvc))
	admin.GET("/announcements", h.announcement.List)
	admin.POST("/announcements", h.announcement.Create)
	admin.GET("/announcements/export", h.announcement.Export)
	admin.GET("/announcements/:id", h.announcement.Get)
	admin.PUT("/announcements/:id", h.announcement.Update)
	admin.DELETE("/announcements/:id", h.announcement.Delete)
	admin.POST("/announcements/:id/toggle", h.announcement.Toggle)
	admin.POST("/translations/preview", h.translation.Preview)
	admin.DELETE("/translations/cache", h.translation.ClearCache)
	admin.GET("/audit", h.audit.List)
}

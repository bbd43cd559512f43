package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/ibpath/ibpath-api/api/swagger"
	"github.com/ibpath/ibpath-api/internal/handler"
	"github.com/ibpath/ibpath-api/internal/middleware"
	"github.com/ibpath/ibpath-api/internal/repository"
	"github.com/ibpath/ibpath-api/internal/service"
	"github.com/ibpath/ibpath-api/pkg/cache"
	"github.com/ibpath/ibpath-api/pkg/config"
	"github.com/ibpath/ibpath-api/pkg/database"
	"github.com/ibpath/ibpath-api/pkg/logger"
	corsmiddleware "github.com/ibpath/ibpath-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ibpath/ibpath-api/pkg/middleware/requestid"
)

// @title IBPath API
// @version 0.1.0
// @description IB diploma validation and university program matching
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	// Redis is optional: without it every match list is recomputed.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, match caching disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Matching.CacheTTL, logr, cfg.Matching.CacheEnabled)

	studentRepo := repository.NewStudentRepository(db)
	programRepo := repository.NewProgramRepository(db)

	diplomaSvc := service.NewDiplomaService(cfg.Diploma.BonusStrategy, metricsSvc, validate, logr)
	profileSvc := service.NewProfileService(studentRepo, diplomaSvc, cacheSvc, validate, logr)
	matchSvc := service.NewMatchService(studentRepo, programRepo, cacheSvc, metricsSvc, service.MatchConfig{
		CacheTTL:        cfg.Matching.CacheTTL,
		DefaultPageSize: cfg.Matching.DefaultPageSize,
		MaxPageSize:     cfg.Matching.MaxPageSize,
	}, validate, logr)
	programSvc := service.NewProgramService(programRepo, logr)
	exportSvc := service.NewExportService(matchSvc, nil, nil, logr)

	profileHandler := handler.NewProfileHandler(profileSvc)
	diplomaHandler := handler.NewDiplomaHandler(diplomaSvc)
	matchHandler := handler.NewMatchHandler(matchSvc, exportSvc)
	programHandler := handler.NewProgramHandler(programSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/students/:id/profile", profileHandler.Get)
		api.PUT("/students/:id/profile", profileHandler.Put)
		api.GET("/students/:id/matches", matchHandler.List)
		api.GET("/students/:id/matches/export", matchHandler.Export)
		api.POST("/matches/preview", matchHandler.Preview)
		api.POST("/diploma/check", diplomaHandler.Check)
		api.GET("/programs", programHandler.List)
		api.GET("/metrics/summary", metricsHandler.Summary)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

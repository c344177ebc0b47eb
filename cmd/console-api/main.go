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

	_ "github.com/escolalink/escola-api/api/swagger"
	"github.com/escolalink/escola-api/internal/handler"
	"github.com/escolalink/escola-api/internal/middleware"
	"github.com/escolalink/escola-api/internal/repository"
	"github.com/escolalink/escola-api/internal/service"
	"github.com/escolalink/escola-api/internal/store"
	"github.com/escolalink/escola-api/internal/views"
	rediscache "github.com/escolalink/escola-api/pkg/cache"
	"github.com/escolalink/escola-api/pkg/config"
	"github.com/escolalink/escola-api/pkg/database"
	"github.com/escolalink/escola-api/pkg/logger"
	corsmiddleware "github.com/escolalink/escola-api/pkg/middleware/cors"
	reqidmiddleware "github.com/escolalink/escola-api/pkg/middleware/requestid"
)

// @title Escola Console API
// @version 1.0.0
// @description Administrative console backend for school management
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	st := store.New()
	st.Seed()

	metrics := service.NewMetricsService()

	var backend *repository.Backend
	if cfg.Database.Configured() {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
		backend = repository.NewBackend(db, metrics)
	}
	backend.LogMode(logr)

	var cacheRepo service.CacheRepository
	cacheEnabled := false
	if cfg.Redis.Configured() {
		client, err := rediscache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect to redis", zap.Error(err))
		}
		cacheRepo = repository.NewCacheRepository(client, logr)
		cacheEnabled = true
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, cacheEnabled)

	validate := validator.New()
	vw := views.New(st)

	authSvc := service.NewAuthService(st, service.NewStoreVerifier(st), validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(st, backend, validate, logr)
	classSvc := service.NewClassService(st, vw, backend, validate, logr)
	teacherSvc := service.NewTeacherService(st, validate, logr)
	subjectSvc := service.NewSubjectService(st, validate, logr)
	gradeSvc := service.NewGradeService(st, validate, logr)
	calendarSvc := service.NewCalendarService(st, vw, validate, logr)
	financeSvc := service.NewFinanceService(st, validate, logr)
	librarySvc := service.NewLibraryService(st, validate, logr, cfg.Library.LoanPeriod)
	announcementSvc := service.NewAnnouncementService(st, validate, logr)
	recordsSvc := service.NewRecordsService(st, validate, logr)
	userSvc := service.NewUserService(st, validate, logr)
	dashboardSvc := service.NewDashboardService(st, vw, financeSvc, gradeSvc, cacheSvc, logr, cfg.Dashboard)

	exportArchive, err := service.NewExportArchive(cfg.Export.ArchiveDir, cfg.JWT.Secret, cfg.Export.LinkTTL, cfg.Export.RetentionTTL, logr)
	if err != nil {
		logr.Fatal("failed to init export archive", zap.Error(err))
	}
	exportArchive.Start(context.Background())
	defer exportArchive.Stop()
	exportSvc := service.NewExportService(gradeSvc, financeSvc, exportArchive, metrics, logr)

	handlers := handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Students:      handler.NewStudentHandler(studentSvc, gradeSvc, recordsSvc),
		Teachers:      handler.NewTeacherHandler(teacherSvc),
		Classes:       handler.NewClassHandler(classSvc, gradeSvc),
		Subjects:      handler.NewSubjectHandler(subjectSvc),
		Calendar:      handler.NewCalendarHandler(calendarSvc),
		Finance:       handler.NewFinanceHandler(financeSvc),
		Library:       handler.NewLibraryHandler(librarySvc),
		Announcements: handler.NewAnnouncementHandler(announcementSvc),
		Records:       handler.NewRecordsHandler(recordsSvc),
		Users:         handler.NewUserHandler(userSvc),
		Dashboard:     handler.NewDashboardHandler(dashboardSvc),
		Exports:       handler.NewExportHandler(exportSvc),
		Metrics:       handler.NewMetricsHandler(metrics),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", handlers.Metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", handlers.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	handler.Routes(api, handlers, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

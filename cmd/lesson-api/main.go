package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lessonplan-api/api/swagger"
	"github.com/noah-isme/lessonplan-api/internal/handler"
	"github.com/noah-isme/lessonplan-api/internal/middleware"
	"github.com/noah-isme/lessonplan-api/internal/repository"
	"github.com/noah-isme/lessonplan-api/internal/service"
	"github.com/noah-isme/lessonplan-api/pkg/cache"
	"github.com/noah-isme/lessonplan-api/pkg/config"
	"github.com/noah-isme/lessonplan-api/pkg/database"
	"github.com/noah-isme/lessonplan-api/pkg/jobs"
	"github.com/noah-isme/lessonplan-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lessonplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lessonplan-api/pkg/middleware/requestid"
)

// @title Lesson Plan API
// @version 1.0.0
// @description Lesson plan review workflow and curriculum tree
// @BasePath /
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis, cfg.Cache.Enabled)
	if err != nil {
		logr.Warn("redis unavailable, module cache disabled", zap.Error(err))
		redisClient = nil
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		repo := repository.NewCacheRepository(redisClient, "lessonplan")
		defer repo.Close() //nolint:errcheck
		cacheRepo = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.ModuleTTL, logr)

	gradeRepo := repository.NewGradeRepository(db)
	curriculumRepo := repository.NewCurriculumRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	planRepo := repository.NewLessonPlanRepository(db)

	authSvc := service.NewAuthService(service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		Expiry: cfg.JWT.Expiration,
	})
	gradeSvc := service.NewGradeService(gradeRepo, logr)
	curriculumSvc := service.NewCurriculumService(curriculumRepo, gradeRepo, validate, logr)
	moduleSvc := service.NewModuleService(moduleRepo, lessonRepo, curriculumRepo, cacheSvc, validate, logr)
	planSvc := service.NewLessonPlanService(planRepo, moduleRepo, metrics, validate, logr)

	if cacheSvc.Enabled() {
		warmer := service.NewModuleCacheWarmer(moduleSvc, jobs.Config{
			Workers: cfg.Cache.WarmWorkers,
			Logger:  logr,
		})
		warmer.Start(ctx)
		defer warmer.Stop()
		moduleSvc.UseWarmer(warmer)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.Metrics(metrics))

	ops := handler.NewMetricsHandler(metrics, db)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), authSvc, handler.Handlers{
		Grades:      handler.NewGradeHandler(gradeSvc),
		Curriculums: handler.NewCurriculumHandler(curriculumSvc),
		Modules:     handler.NewModuleHandler(moduleSvc),
		LessonPlans: handler.NewLessonPlanHandler(planSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "cache", cacheSvc.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

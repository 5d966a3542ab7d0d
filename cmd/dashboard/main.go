package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Bunrieu-sketch/content-pipeline/internal/config"
	"github.com/Bunrieu-sketch/content-pipeline/internal/middleware"
	productionentity "github.com/Bunrieu-sketch/content-pipeline/internal/production/entity"
	productionhandler "github.com/Bunrieu-sketch/content-pipeline/internal/production/handler"
	productionrepo "github.com/Bunrieu-sketch/content-pipeline/internal/production/repository"
	productionsvc "github.com/Bunrieu-sketch/content-pipeline/internal/production/service"
	sponsorentity "github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/entity"
	sponsorhandler "github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/handler"
	sponsorrepo "github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/repository"
	sponsorsvc "github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting creator-dashboard service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&sponsorentity.Deal{},
		&sponsorentity.Deliverable{},
		&sponsorentity.Note{},
		&productionentity.Series{},
		&productionentity.Episode{},
		&productionentity.PreProTask{},
		&productionentity.Video{},
	); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Columns added after the first release; AutoMigrate does not touch rows
	// created before the defaults existed.
	touchupSQL := []string{
		"UPDATE videos SET youtube_video_id = '' WHERE youtube_video_id IS NULL",
		"UPDATE videos SET view_count = 0 WHERE view_count IS NULL",
		"UPDATE videos SET outlier_score = 0 WHERE outlier_score IS NULL",
	}
	for _, sql := range touchupSQL {
		if err := db.Exec(sql).Error; err != nil {
			zapLogger.Warn("Migration touch-up warning", zap.String("sql", sql), zap.Error(err))
		}
	}

	rdb := initRedis(cfg.Redis)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zapLogger.Warn("Redis unavailable, dashboard stats cache disabled", zap.Error(err))
	}

	sponsorRepos := sponsorrepo.NewRepositories(db)
	sponsorServices := sponsorsvc.NewServices(db, rdb, sponsorRepos)
	sponsorHandlers := sponsorhandler.NewHandlers(sponsorServices)

	productionRepos := productionrepo.NewRepositories(db)
	productionServices := productionsvc.NewServices(productionRepos)
	productionHandlers := productionhandler.NewHandlers(productionServices)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, sponsorHandlers, productionHandlers)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: 0, // Disable for SSE long-lived connections
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, sponsorH *sponsorhandler.Handlers, productionH *productionhandler.Handlers) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		// SSE board updates
		sseHandler := sponsorhandler.NewSSEHandler()
		v1.GET("/sse/events", sseHandler.Stream)

		v1.GET("/stats", sponsorH.Dashboard.GetStats)

		sponsors := v1.Group("/sponsors")
		{
			sponsors.GET("", sponsorH.Deal.ListDeals)
			sponsors.POST("", sponsorH.Deal.CreateDeal)
			sponsors.GET("/:id", sponsorH.Deal.GetDeal)
			sponsors.PATCH("/:id", sponsorH.Deal.PatchDeal)
			sponsors.POST("/:id/move", sponsorH.Deal.MoveDeal)
			sponsors.DELETE("/:id", sponsorH.Deal.DeleteDeal)

			sponsors.GET("/:id/deliverables", sponsorH.Deal.ListDeliverables)
			sponsors.POST("/:id/deliverables", sponsorH.Deal.CreateDeliverable)
			sponsors.PATCH("/:id/deliverables/:deliverableId", sponsorH.Deal.UpdateDeliverable)
			sponsors.DELETE("/:id/deliverables/:deliverableId", sponsorH.Deal.DeleteDeliverable)

			sponsors.GET("/:id/notes", sponsorH.Deal.ListNotes)
			sponsors.POST("/:id/notes", sponsorH.Deal.CreateNote)
			sponsors.DELETE("/:id/notes/:noteId", sponsorH.Deal.DeleteNote)
		}

		series := v1.Group("/series")
		{
			series.GET("", productionH.Series.ListSeries)
			series.POST("", productionH.Series.CreateSeries)
			series.GET("/:id", productionH.Series.GetSeries)
			series.PATCH("/:id", productionH.Series.PatchSeries)
			series.DELETE("/:id", productionH.Series.DeleteSeries)

			series.GET("/:id/episodes", productionH.Series.ListEpisodes)
			series.POST("/:id/episodes", productionH.Series.CreateEpisode)
		}

		episodes := v1.Group("/episodes")
		{
			episodes.PATCH("/:id", productionH.Series.PatchEpisode)
			episodes.DELETE("/:id", productionH.Series.DeleteEpisode)
		}

		tasks := v1.Group("/tasks")
		{
			tasks.PATCH("/:id", productionH.Series.PatchTask)
		}

		videos := v1.Group("/videos")
		{
			videos.GET("", productionH.Video.ListVideos)
			videos.POST("", productionH.Video.CreateVideo)
			videos.PATCH("/:id", productionH.Video.PatchVideo)
			videos.DELETE("/:id", productionH.Video.DeleteVideo)
		}
	}
}

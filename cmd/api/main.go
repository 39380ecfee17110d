package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"housing-prediction-api/artifacts"
	"housing-prediction-api/config"
	"housing-prediction-api/handlers"
	"housing-prediction-api/middleware"
	"housing-prediction-api/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := newLogger(cfg.Log)
	gin.SetMode(cfg.Server.Mode)

	// Load artifacts; the service does not start without them
	bundle, err := artifacts.Load(cfg.Artifacts.Dir, artifacts.Files{
		Model:      cfg.Artifacts.ModelFile,
		Scaler:     cfg.Artifacts.ScalerFile,
		Features:   cfg.Artifacts.FeaturesFile,
		Confidence: cfg.Artifacts.ConfidenceFile,
	})
	if err != nil {
		log.Fatalf("Failed to load artifacts: %v", err)
	}
	log.WithFields(logrus.Fields{
		"dir":         cfg.Artifacts.Dir,
		"features":    bundle.Schema.Len(),
		"fingerprint": bundle.Schema.Fingerprint(),
	}).Info("artifacts loaded")

	var cache *services.CacheService
	if cfg.Redis.Enabled {
		cache, err = services.NewCacheService(cfg.Redis, log)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, result cache and live feed disabled")
		} else {
			log.WithField("addr", cfg.Redis.Addr()).Info("redis connected")
		}
		defer cache.Close()
	}

	var history services.HistoryStore
	if cfg.Database.Enabled {
		store, err := openHistory(cfg.Database)
		if err != nil {
			log.WithError(err).Warn("database unavailable, prediction history disabled")
		} else {
			history = store
			log.Info("prediction history enabled")
		}
	}

	opts := []services.Option{services.WithLogger(log)}
	if cache.Available() {
		opts = append(opts, services.WithCache(cache, cfg.Redis.CacheTTL))
	}
	if history != nil {
		opts = append(opts, services.WithHistory(history))
	}
	predictor := services.NewPredictor(bundle, opts...)

	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(gin.Recovery())
	router.Use(middleware.SetupCORS(cfg.CORS))

	handlers.RegisterRoutes(router, handlers.Dependencies{
		Bundle:    bundle,
		Predictor: predictor,
		Cache:     cache,
		History:   history,
		Log:       log,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		log.WithField("level", cfg.Level).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func openHistory(cfg config.DatabaseConfig) (*services.GormHistoryStore, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql db handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	store := services.NewGormHistoryStore(db)
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

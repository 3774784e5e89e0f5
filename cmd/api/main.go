package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"landmark-catalog/internal/api"
	"landmark-catalog/internal/config"
	"landmark-catalog/internal/database"
	"landmark-catalog/internal/logger"
	"landmark-catalog/internal/repository"
	"landmark-catalog/internal/services"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load .env file: %v", err)
	}

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	landmarkRepo, err := initRepository(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize landmark store")
	}

	var cache services.CacheService
	if cfg.Cache.Enabled() {
		redisCache, err := services.NewRedisCacheService(cfg.Cache)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to cache")
		}
		defer redisCache.Close()
		cache = redisCache
	}

	verifier := initVerifier(cfg)
	landmarkService := services.NewLandmarkService(landmarkRepo, cache, cfg.Cache.DefaultTTL)

	handler := api.SetupRoutes(api.Dependencies{
		LandmarkRepo:   landmarkRepo,
		Cache:          cache,
		Verifier:       verifier,
		AllowedOrigins: cfg.AllowedOrigins,
	}, landmarkService)

	srv := &http.Server{
		Handler:      handler,
		Addr:         ":" + cfg.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":  cfg.Port,
			"store": landmarkRepo.Kind(),
			"cache": cache != nil,
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	log.Info("Server stopped")
}

func initRepository(cfg *config.Config, log *logrus.Logger) (repository.LandmarkRepository, error) {
	if cfg.DatabaseURL == "" {
		return repository.NewMemoryLandmarkRepository(), nil
	}

	db, err := database.InitDB(cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	return repository.NewLandmarkRepository(db), nil
}

func initVerifier(cfg *config.Config) services.CredentialVerifier {
	static := services.NewStaticTokenVerifier(cfg.AdminToken)
	if cfg.JWTSecret == "" {
		return static
	}
	return services.ChainVerifier{static, services.NewJWTVerifier(cfg.JWTSecret)}
}

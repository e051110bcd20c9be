package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/topicboard/engine/internal/api"
	"github.com/topicboard/engine/internal/api/handlers"
	"github.com/topicboard/engine/internal/repository"
	"github.com/topicboard/engine/internal/services"
	"github.com/topicboard/engine/pkg/config"
	"github.com/topicboard/engine/pkg/database"
	"github.com/topicboard/engine/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting topicboard engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	secret := []byte(cfg.JWTSecret)
	authSvc := services.NewAuthService(userRepo, secret, cfg.TokenTTL, cfg.BcryptCost)
	validate := validator.New()

	router := api.NewRouter(api.Dependencies{
		DB:             db,
		HMACSecret:     secret,
		Users:          userRepo,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		AuthHandler:    handlers.NewAuthHandler(authSvc, validate),
		UsersHandler:   handlers.NewUsersHandler(userRepo),
		PostsHandler:   handlers.NewPostsHandler(postRepo, commentRepo, validate),
		TopicsHandler:  handlers.NewTopicsHandler(topicRepo, ratingRepo, validate),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pagehub/pages-api/internal/api"
	"github.com/pagehub/pages-api/internal/api/handler"
	"github.com/pagehub/pages-api/internal/auth/authz"
	"github.com/pagehub/pages-api/internal/auth/password"
	"github.com/pagehub/pages-api/internal/auth/token"
	"github.com/pagehub/pages-api/internal/core/service"
	"github.com/pagehub/pages-api/internal/infrastructure/config"
	mongodb "github.com/pagehub/pages-api/internal/infrastructure/db/mongo"
	redisdb "github.com/pagehub/pages-api/internal/infrastructure/db/redis"
	"github.com/pagehub/pages-api/internal/infrastructure/queue"
	"github.com/pagehub/pages-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Level: "error"})
		log := logger.Get()
		log.Fatal().Err(err).Msg("loading configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to mongo")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnecting mongo")
		}
	}()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("closing redis")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("creating user indexes")
	}
	pageRepo := mongodb.NewPageRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	tokens, err := token.NewService(token.Config{
		Secret:                cfg.JWT.Secret,
		Issuer:                cfg.JWT.Issuer,
		Audience:              cfg.JWT.Audience,
		EnforceIssuerAudience: cfg.JWT.EnforceIssuerAudience,
		TTL:                   cfg.JWT.TTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("building token service")
	}

	gate := authz.NewGate(authz.DefaultPolicy(cfg.Auth.DefaultPolicy))

	dispatcher := queue.NewDispatcher(0, service.NewAuditService(auditRepo, log), log)
	dispatcher.Start(ctx)

	throttle := redisdb.NewLoginThrottle(redisClient, cfg.Auth.MaxLoginFailures, cfg.Auth.LockoutWindow)
	hasher := password.NewBcryptHasher(bcrypt.DefaultCost)
	authService := service.NewAuthService(userRepo, hasher, tokens, throttle, dispatcher, log)
	pageService := service.NewPageService(pageRepo, log)

	if err := authService.SeedAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("seeding administrator")
	}

	health := handler.NewHealthHandler(map[string]handler.Pinger{
		"mongo": handler.PingerFunc(func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		}),
		"redis": handler.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}),
	})

	e := api.NewRouter(api.RouterConfig{
		Log:    log,
		Tokens: tokens,
		Gate:   gate,
		Auth:   handler.NewAuthHandler(authService),
		Pages:  handler.NewPageHandler(pageService),
		Health: health,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}

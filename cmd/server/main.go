package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/miniiam/iam-service/internal/api"
	"github.com/miniiam/iam-service/internal/bootstrap"
	"github.com/miniiam/iam-service/internal/core/ports"
	"github.com/miniiam/iam-service/internal/core/service"
	mongostore "github.com/miniiam/iam-service/internal/infrastructure/db/mongo"
	redisstore "github.com/miniiam/iam-service/internal/infrastructure/db/redis"
	"github.com/miniiam/iam-service/internal/infrastructure/store/memory"
	"github.com/miniiam/iam-service/internal/pkg/config"
	"github.com/miniiam/iam-service/pkg/logger"

	redisdriver "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users, roles, mongoDB, disconnect := buildRepositories(ctx, cfg, log)
	defer disconnect()

	var rdb *redisdriver.Client
	var cache service.ProfileCache
	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		rdb = client
		cache = redisstore.NewProfileCache(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("profile cache enabled")
	}

	if cfg.Seed {
		if err := bootstrap.Seed(ctx, users, roles, log); err != nil {
			log.Fatal().Err(err).Msg("failed to seed store")
		}
	}

	userService := service.NewUserService(users, roles, cache, log)
	roleService := service.NewRoleService(roles, log)

	e := api.NewRouter(api.Dependencies{
		UserService: userService,
		RoleService: roleService,
		Mongo:       mongoDB,
		Redis:       rdb,
		Logger:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("iam service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildRepositories selects the store driver from configuration. The
// returned function tears down the mongo connection (no-op for memory).
func buildRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.UserRepository, ports.RoleRepository, *mongodriver.Database, func()) {
	switch cfg.StoreDriver {
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		disconnect := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}
		return mongostore.NewUserRepository(db), mongostore.NewRoleRepository(db), db, disconnect
	case "memory":
		return memory.NewUserRepository(), memory.NewRoleRepository(), nil, func() {}
	default:
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("unknown store driver")
		return nil, nil, nil, nil
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"shades-shop/internal/cache"
	"shades-shop/internal/config"
	apphttp "shades-shop/internal/http"
	"shades-shop/internal/repository"
	"shades-shop/internal/repository/memory"
	"shades-shop/internal/repository/sqlite"
	"shades-shop/internal/seed"
	"shades-shop/internal/service"
	"shades-shop/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	configureLogger(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo, db, err := buildUserRepository(cfg)
	if err != nil {
		logger.Fatalf("open user store: %v", err)
	}
	if db != nil {
		defer db.Close()
	}
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}

	var objects storage.Service
	if storage.IsLocation(cfg.Seed.Source) {
		objects, err = buildStorage(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("setup storage: %v", err)
		}
	}

	dataset, err := seed.NewLoader(objects, logger).Load(ctx, cfg.Seed.Source)
	if err != nil {
		logger.Fatalf("load seed data: %v", err)
	}
	if err := dataset.Apply(ctx, userRepo); err != nil {
		logger.Fatalf("seed users: %v", err)
	}
	catalogRepo, err := memory.NewCatalogRepository(dataset.Brands, dataset.Products)
	if err != nil {
		logger.Fatalf("build catalog: %v", err)
	}

	var tokenOpts []service.TokenOption
	tokenCache, closeCache, err := buildTokenCache(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup token cache: %v", err)
	}
	defer closeCache()
	if tokenCache != nil {
		tokenOpts = append(tokenOpts, service.WithTokenCache(tokenCache))
	}

	tokenService, err := service.NewTokenService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
		tokenOpts...,
	)
	if err != nil {
		logger.Fatalf("setup token service: %v", err)
	}

	handler := apphttp.NewHandler(
		service.NewCatalogService(catalogRepo),
		service.NewUserService(userRepo),
		tokenService,
		service.NewRequestGate(tokenService, userRepo),
		service.NewCartService(userRepo, catalogRepo, service.CartOptions{StrictQuantity: cfg.Cart.StrictQuantity}),
		logger,
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
	}
	if strings.EqualFold(cfg.Log.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
}

// buildUserRepository returns the configured user store. The *sql.DB is nil for the memory driver.
func buildUserRepository(cfg config.Config) (repository.UserRepository, *sql.DB, error) {
	switch cfg.Store.Driver {
	case config.StoreSQLite:
		db, err := sqlite.Open(sqlite.MemoryDSN)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewUserRepository(db), db, nil
	default:
		return memory.NewUserRepository(), nil, nil
	}
}

func buildTokenCache(ctx context.Context, cfg config.Config, logger *logrus.Logger) (cache.TokenCache, func(), error) {
	switch cfg.Auth.TokenCache {
	case config.TokenCacheMemory:
		logger.Info("caching issued tokens in memory")
		return cache.NewMemoryTokenCache(), func() {}, nil
	case config.TokenCacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
		logger.Infof("caching issued tokens in redis %s", cfg.Redis.Addr)
		return cache.NewRedisTokenCache(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.AWS.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AWS.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("reading seed data from %s (region %s)", cfg.Seed.Source, cfg.AWS.Region)
	return storage.NewS3Service(client), nil
}

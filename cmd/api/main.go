package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"

	"github.com/gamevault/storefront-api/internal/api"
	"github.com/gamevault/storefront-api/internal/core/ports"
	"github.com/gamevault/storefront-api/internal/infrastructure/config"
	storemongo "github.com/gamevault/storefront-api/internal/infrastructure/db/mongo"
	"github.com/gamevault/storefront-api/internal/infrastructure/identity"
	"github.com/gamevault/storefront-api/internal/infrastructure/storage"
	"github.com/gamevault/storefront-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	client, db, err := storemongo.Connect(ctx, storemongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	ensureIndexes(ctx, db, log)

	bucket, err := storage.Open(ctx, cfg.Blob.BucketURL, cfg.Blob.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("bucket", cfg.Blob.BucketURL).Msg("media bucket open failed")
	}
	defer func() { _ = bucket.Close() }()

	var provider ports.IdentityProvider
	if cfg.Firebase.CredentialsFile != "" {
		provider, err = identity.NewFirebaseProvider(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("firebase identity provider init failed")
		}
		log.Info().Msg("using firebase identity provider")
	} else {
		provider = identity.NewLocalProvider()
		log.Warn().Msg("FIREBASE_CREDENTIALS_FILE not set, using local identity provider")
	}

	e := api.NewRouter(api.RouterConfig{
		DB:        db,
		Bucket:    bucket,
		Identity:  provider,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting storefront api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// ensureIndexes creates the collection indexes at startup. Index creation is
// idempotent; failures are logged but do not prevent startup.
func ensureIndexes(ctx context.Context, db *mongo.Database, log zerolog.Logger) {
	if err := storemongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("user index creation failed")
	}
	if err := storemongo.NewCategoryRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("category index creation failed")
	}
	if err := storemongo.NewProductRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("product index creation failed")
	}
}

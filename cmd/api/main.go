package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/narcomap-api/internal/application/auth"
	"github.com/narcomap-api/internal/config"
	"github.com/narcomap-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/narcomap-api/internal/infrastructure/jwt"
	s3infra "github.com/narcomap-api/internal/infrastructure/s3"
	"github.com/narcomap-api/internal/infrastructure/sns"
	transporthttp "github.com/narcomap-api/internal/transport/http"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	setupLogger(cfg)

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// DB reachability prober feeds the health endpoint and the write guard.
	prober := dynamo.NewProber(dynamoClient, cfg.DynamoTables.Admins)
	prober.Check(context.Background())
	proberCtx, stopProber := context.WithCancel(context.Background())
	defer stopProber()
	go prober.Run(proberCtx, 30*time.Second)

	jwtProvider := jwtinfra.NewProvider(cfg)

	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName, cfg.AWSRegion, cfg.S3PublicBaseURL)

	// SNS fan-out is optional; without a topic the emitter only writes to
	// the notification table.
	var publisher sns.EventPublisher
	if cfg.SNSTopicARN != "" {
		p, err := sns.NewPublisher(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("sns publisher not available")
		} else {
			publisher = p
		}
	}

	adminRepo := dynamo.NewAdminRepo(dynamoClient, cfg.DynamoTables.Admins)

	// Seed the super-admin account on first run.
	authSvc := auth.NewService(adminRepo, jwtProvider, cfg.SuperAdminID)
	if err := authSvc.Bootstrap(context.Background(),
		cfg.SuperAdminUsername, cfg.SuperAdminPassword, cfg.SuperAdminName); err != nil {
		log.Warn().Err(err).Msg("super admin bootstrap failed")
	}

	deps := &transporthttp.Deps{
		AdminRepo:        adminRepo,
		BannerRepo:       dynamo.NewBannerRepo(dynamoClient, cfg.DynamoTables.Banners),
		LogoRepo:         dynamo.NewLogoRepo(dynamoClient, cfg.DynamoTables.Logos),
		LocationRepo:     dynamo.NewLocationRepo(dynamoClient, cfg.DynamoTables.Locations),
		NewsRepo:         dynamo.NewNewsRepo(dynamoClient, cfg.DynamoTables.News),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		S3Store:          s3Store,
		Publisher:        publisher,
		JWTProvider:      jwtProvider,
		DBProber:         prober,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.AppPort).Str("env", cfg.AppEnv).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.AppEnv == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

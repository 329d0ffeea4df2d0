// Command server runs the Zanith HTTP API.
//
//	@title						Zanith API
//	@version					1.0
//	@description				Music sharing backend: accounts, songs, likes, comments and direct media uploads.
//	@BasePath					/
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						sessionId
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

	"github.com/zanith/zanith-api/internal/api"
	"github.com/zanith/zanith-api/internal/api/handler"
	"github.com/zanith/zanith-api/internal/core/ports"
	"github.com/zanith/zanith-api/internal/core/service"
	"github.com/zanith/zanith-api/internal/infrastructure/db/mongo"
	"github.com/zanith/zanith-api/internal/infrastructure/db/redis"
	"github.com/zanith/zanith-api/internal/infrastructure/events"
	"github.com/zanith/zanith-api/internal/infrastructure/media"
	"github.com/zanith/zanith-api/internal/infrastructure/queue"
	"github.com/zanith/zanith-api/internal/pkg/config"
	"github.com/zanith/zanith-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "zanith-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	checks := []handler.DependencyCheck{
		handler.MongoCheck(db),
		handler.RedisCheck(rdb),
	}

	var activity ports.ActivityPublisher = events.Nop{}
	if cfg.NATS.URL != "" {
		nc, err := events.Connect(cfg.NATS.URL, logger.Component("nats"))
		if err != nil {
			return err
		}
		defer func() {
			if err := nc.Drain(); err != nil {
				log.Warn().Err(err).Msg("nats drain failed")
			}
		}()
		activity = events.NewPublisher(nc, cfg.NATS.SubjectPrefix)
		checks = append(checks, handler.DependencyCheck{
			Name:  "nats",
			Check: func(context.Context) error { return events.Healthy(nc) },
		})
	} else {
		log.Info().Msg("NATS_URL not set, activity events are discarded")
	}

	// --- Repositories ---
	users := mongo.NewUserRepository(db)
	songs := mongo.NewSongRepository(db)
	labels := mongo.NewRecordLabelRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, songs); err != nil {
		return err
	}
	sessions := redis.NewSessionCache(rdb, cfg.Session.CacheTTL)

	// --- Services ---
	playback := queue.NewDispatcher(cfg.Playback.Workers, service.NewPlaybackService(users, log), logger.Component("playback"))
	playback.Start(ctx)

	signer := media.NewSigner(media.Config{
		CloudName: cfg.Media.CloudName,
		APIKey:    cfg.Media.APIKey,
		APISecret: cfg.Media.APISecret,
	})
	if cfg.Media.APISecret == "" {
		log.Warn().Msg("MEDIA_API_SECRET is empty, upload signatures are not secret")
	}

	authService := service.NewAuthService(users, sessions, log)
	songService := service.NewSongService(songs, users, labels, playback, activity, cfg.FeaturedArtist, log)
	uploadService := service.NewUploadService(songs, signer, activity, log)

	e := api.NewRouter(api.Deps{
		Auth:           authService,
		Songs:          songService,
		Upload:         uploadService,
		Checks:         checks,
		Log:            log,
		CORSOrigins:    cfg.CORS.Origins,
		CookieSecure:   cfg.Session.CookieSecure,
		RequestTimeout: cfg.RequestTimeout,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		return err
	}
	return <-errCh
}

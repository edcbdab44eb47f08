package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/stagebook/internal/config"
	"github.com/iliyamo/stagebook/internal/database"
	"github.com/iliyamo/stagebook/internal/handler"
	"github.com/iliyamo/stagebook/internal/middleware"
	"github.com/iliyamo/stagebook/internal/migrate"
	"github.com/iliyamo/stagebook/internal/queue"
	"github.com/iliyamo/stagebook/internal/repository"
	"github.com/iliyamo/stagebook/internal/router"
	"github.com/iliyamo/stagebook/internal/service"
	"github.com/iliyamo/stagebook/internal/web"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database())
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("open database")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if _, err := migrate.Up(ctx, db, cfg.DBDriver); err != nil {
			log.Fatal().Err(err).Msg("auto migrate")
		}
	}

	var events service.EventPublisher
	if cfg.ListingEventsEnabled {
		events = queue.NewPublisher(cfg.RabbitMQURL)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("parse templates")
	}

	h := &handler.Handler{
		Venues:      repository.NewVenueRepo(db),
		Artists:     repository.NewArtistRepo(db),
		Shows:       repository.NewShowRepo(db),
		Genres:      repository.NewGenreRepo(db),
		Lister:      service.NewLister(db, events),
		FlashSecret: cfg.FlashSecret,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = h.HTTPErrorHandler
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(middleware.ReadFlash(cfg.FlashSecret))

	rdb := config.NewRedisClient(ctx)
	if rdb != nil {
		defer rdb.Close()
	}
	router.RegisterRoutes(e, h)
	router.RegisterForms(e, h, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Str("driver", cfg.DBDriver).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.ListingEventsEnabled {
		g.Go(func() error {
			err := queue.StartListingConsumer(gctx, cfg.RabbitMQURL, cfg.ListingLogPath)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return
	}
	log.Info().Msg("server stopped")
}

// setupLogger configures the global zerolog logger: console output in
// development, JSON otherwise.
func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsDev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

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

	"moviereview/follow"
	"moviereview/httpserver"
	"moviereview/internal/wiring"
	"moviereview/like"
	"moviereview/movie"
	"moviereview/pkg/config"
	"moviereview/pkg/logger"
	"moviereview/pkg/metrics"
	"moviereview/pkg/password"
	"moviereview/pkg/sentry"
	"moviereview/postgres"
	"moviereview/review"
	"moviereview/tmdb"
	"moviereview/user"

	sentrygo "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Errorw("server stopped with error", "error", err)
		sentry.WithTags(map[string]string{"component": "httpserver"}).Fatal(err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := wiring.OpenPostgres(cfg)
	if err != nil {
		return err
	}

	movieRepo, err := wiring.MovieRepository(ctx, cfg, db)
	if err != nil {
		return err
	}

	catalog, err := tmdb.New(tmdb.Options{
		BaseURL:    cfg.TMDB.BaseURL,
		APIKey:     cfg.TMDB.APIKey,
		Timeout:    cfg.TMDB.Timeout,
		MaxRetries: cfg.TMDB.MaxRetries,
		RateLimit:  cfg.TMDB.RateLimit,
	})
	if err != nil {
		return err
	}

	users := user.NewUsecase(postgres.NewUserRepository(db), password.NewBcrypt())
	movies := movie.NewUsecase(movieRepo, catalog).WithObserver(metrics.ResolveObserver{})
	reviews := review.NewUsecase(postgres.NewReviewRepository(db), users, movies)

	server := httpserver.Default(cfg)
	server.Logger = log
	server.MovieService = movies
	server.UserService = users
	server.ReviewService = reviews
	server.FollowService = follow.NewUsecase(postgres.NewFollowRepository(db), users)
	server.LikeService = like.NewUsecase(postgres.NewLikeRepository(db), users, reviews)

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started", "addr", server.Addr, "movie_store", cfg.MovieStore)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

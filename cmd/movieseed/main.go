package main

import (
	"archive/zip"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"moviereview/internal/wiring"
	"moviereview/movie"
	"moviereview/pkg/config"
	"moviereview/pkg/logger"
	"moviereview/tmdb"

	"go.uber.org/zap"
)

const (
	sourceTMDB      = "tmdb"
	sourceMovieLens = "movielens"

	defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"
)

type options struct {
	source string
	pages  int
	dir    string
	zipURL string
	limit  int
}

func main() {
	var opts options
	flag.StringVar(&opts.source, "source", sourceTMDB, "Seed source: tmdb or movielens")
	flag.IntVar(&opts.pages, "pages", 1, "Number of TMDB popular pages to resolve (tmdb source)")
	flag.StringVar(&opts.dir, "dir", "", "Directory holding movies.csv and links.csv (skip download)")
	flag.StringVar(&opts.zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&opts.limit, "limit", 0, "Limit number of movies to import (0 = all)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config failed:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, opts); err != nil {
		log.Errorw("seed failed", "source", opts.source, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger, opts options) error {
	repo, err := wiring.MovieRepository(ctx, cfg, nil)
	if err != nil {
		return err
	}

	switch opts.source {
	case sourceTMDB:
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
		stats, err := seedPopular(ctx, movie.NewUsecase(repo, catalog), opts.pages, log)
		log.Infow("tmdb seed completed", "resolved", stats.resolved, "failed", stats.failed)
		return err

	case sourceMovieLens:
		dir := opts.dir
		if dir == "" {
			path, cleanup, err := downloadAndExtract(ctx, opts.zipURL)
			if err != nil {
				return fmt.Errorf("download dataset: %w", err)
			}
			defer cleanup()
			dir = path
		}
		count, err := importMovieLens(ctx, movie.NewUsecase(repo, nil), dir, opts.limit)
		log.Infow("movielens import completed", "rows", count)
		return err
	}

	return fmt.Errorf("unknown source %q", opts.source)
}

func downloadAndExtract(ctx context.Context, zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(ctx, zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	if err := extractFiles(zipPath, tmpDir, moviesFile, linksFile); err != nil {
		cleanup()
		return "", func() {}, err
	}

	return tmpDir, cleanup, nil
}

func downloadFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

// extractFiles copies the named entries of the archive into destDir,
// ignoring the directory they live in.
func extractFiles(zipPath, destDir string, names ...string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	missing := make(map[string]bool, len(names))
	for _, n := range names {
		missing[n] = true
	}

	for _, file := range r.File {
		base := filepath.Base(file.Name)
		if !missing[base] {
			continue
		}
		if err := extractFile(file, filepath.Join(destDir, base)); err != nil {
			return err
		}
		delete(missing, base)
	}

	if len(missing) > 0 {
		left := make([]string, 0, len(missing))
		for n := range missing {
			left = append(left, n)
		}
		return fmt.Errorf("%s not found in zip", strings.Join(left, ", "))
	}
	return nil
}

func extractFile(file *zip.File, dest string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

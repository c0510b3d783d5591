package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"moviereview/movie"

	"go.uber.org/zap"
)

const (
	moviesFile = "movies.csv"
	linksFile  = "links.csv"
)

type seedStats struct {
	resolved int
	failed   int
}

// seedPopular resolves every movie listed on the first pages of the popular
// catalog, warming the local store. Single failures are logged and skipped;
// a failing page aborts the run.
func seedPopular(ctx context.Context, svc movie.Service, pages int, log *zap.SugaredLogger) (seedStats, error) {
	var stats seedStats
	if pages < 1 {
		pages = 1
	}

	for page := 1; page <= pages; page++ {
		listed, err := svc.Popular(ctx, page)
		if err != nil {
			return stats, fmt.Errorf("popular page %d: %w", page, err)
		}

		for _, m := range listed {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			if _, err := svc.Resolve(ctx, m.ExternalID); err != nil {
				stats.failed++
				log.Warnw("resolve failed", "tmdb_id", m.ExternalID, "error", err)
				continue
			}
			stats.resolved++
		}
	}
	return stats, nil
}

// importMovieLens saves every MovieLens movie that links to a TMDB id.
func importMovieLens(ctx context.Context, svc movie.Service, dir string, limit int) (int, error) {
	linksCSV, err := os.Open(filepath.Join(dir, linksFile))
	if err != nil {
		return 0, err
	}
	defer linksCSV.Close()

	links, err := readLinks(linksCSV)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", linksFile, err)
	}

	moviesCSV, err := os.Open(filepath.Join(dir, moviesFile))
	if err != nil {
		return 0, err
	}
	defer moviesCSV.Close()

	movies, err := readMovies(moviesCSV, links, limit)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", moviesFile, err)
	}

	count := 0
	for _, m := range movies {
		if _, err := svc.Save(ctx, m); err != nil {
			return count, fmt.Errorf("save tmdb id %d: %w", m.ExternalID, err)
		}
		count++
	}
	return count, nil
}

// readLinks maps MovieLens movie ids to TMDB ids. Rows without a TMDB id
// are skipped.
func readLinks(r io.Reader) (map[string]int64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idx, err := headerIndex(reader, "movieId", "tmdbId")
	if err != nil {
		return nil, err
	}

	links := make(map[string]int64)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if idx["movieId"] >= len(record) || idx["tmdbId"] >= len(record) {
			continue
		}

		tmdbID, err := strconv.ParseInt(strings.TrimSpace(record[idx["tmdbId"]]), 10, 64)
		if err != nil || tmdbID <= 0 {
			continue
		}
		links[strings.TrimSpace(record[idx["movieId"]])] = tmdbID
	}
	return links, nil
}

// readMovies joins movies.csv with links. A limit of zero reads all rows.
func readMovies(r io.Reader, links map[string]int64, limit int) ([]movie.Movie, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idx, err := headerIndex(reader, "movieId", "title")
	if err != nil {
		return nil, err
	}

	var movies []movie.Movie
	for limit <= 0 || len(movies) < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if idx["movieId"] >= len(record) || idx["title"] >= len(record) {
			continue
		}

		tmdbID, ok := links[strings.TrimSpace(record[idx["movieId"]])]
		title := strings.TrimSpace(record[idx["title"]])
		if !ok || title == "" {
			continue
		}
		movies = append(movies, movie.Movie{ExternalID: tmdbID, Title: title})
	}
	return movies, nil
}

func headerIndex(reader *csv.Reader, columns ...string) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(columns))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, c := range columns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("missing column %q in csv header", c)
		}
	}
	return idx, nil
}

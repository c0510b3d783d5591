package movie

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service interface {
	Resolve(ctx context.Context, externalID int64) (Movie, error)
	FindByExternalID(ctx context.Context, externalID int64) (Movie, error)
	Save(ctx context.Context, m Movie) (Movie, error)
	Search(ctx context.Context, query string, page int) ([]Movie, error)
	Popular(ctx context.Context, page int) ([]Movie, error)
}

// Repository is the local movie store. It must guarantee that at most one
// movie exists per ExternalID.
type Repository interface {
	// FindByExternalID reports found=false, with a nil error, when the
	// movie is not stored.
	FindByExternalID(ctx context.Context, externalID int64) (m Movie, found bool, err error)
	// Upsert stores m keyed by ExternalID, assigning ID on first insert.
	// An existing row keeps its ID.
	Upsert(ctx context.Context, m Movie) (Movie, error)
}

// Catalog is the remote metadata provider. Failures are reported wrapping
// ErrRemoteUnavailable.
type Catalog interface {
	FetchByID(ctx context.Context, externalID int64) (Movie, error)
	Search(ctx context.Context, query string, page int) ([]Movie, error)
	Popular(ctx context.Context, page int) ([]Movie, error)
}

// Observer is notified about how Resolve was served.
type Observer interface {
	ObserveResolve(outcome string)
}

const (
	OutcomeHit      = "hit"
	OutcomeMiss     = "miss"
	OutcomeRemote   = "remote_error"
	OutcomeConflict = "conflict"
)

type Usecase struct {
	r        Repository
	catalog  Catalog
	observer Observer
}

func NewUsecase(r Repository, c Catalog) *Usecase {
	return &Usecase{r: r, catalog: c}
}

// WithObserver attaches o to the usecase and returns it.
func (uc *Usecase) WithObserver(o Observer) *Usecase {
	uc.observer = o
	return uc
}

// Resolve returns the stored movie for externalID, fetching it from the
// catalog and storing it on a miss. A stored movie is returned as is and
// never refreshed.
func (uc *Usecase) Resolve(ctx context.Context, externalID int64) (Movie, error) {
	if externalID <= 0 {
		return Movie{}, ErrInvalidExternalID
	}

	m, found, err := uc.r.FindByExternalID(ctx, externalID)
	if err != nil {
		return Movie{}, fmt.Errorf("movie: find %d: %w", externalID, err)
	}
	if found {
		uc.observe(OutcomeHit)
		return m, nil
	}

	fetched, err := uc.catalog.FetchByID(ctx, externalID)
	if err != nil {
		uc.observe(OutcomeRemote)
		return Movie{}, remoteUnavailable(err)
	}
	if err := fetched.Validate(); err != nil {
		uc.observe(OutcomeRemote)
		return Movie{}, remoteUnavailable(err)
	}
	if fetched.ExternalID != externalID {
		uc.observe(OutcomeRemote)
		return Movie{}, remoteUnavailable(fmt.Errorf("catalog returned tmdb id %d for %d", fetched.ExternalID, externalID))
	}
	fetched.ID = 0

	saved, err := uc.r.Upsert(ctx, fetched)
	if err != nil {
		if errors.Is(err, ErrPersistenceConflict) {
			uc.observe(OutcomeConflict)
			return Movie{}, err
		}
		return Movie{}, fmt.Errorf("movie: upsert %d: %w", externalID, err)
	}

	uc.observe(OutcomeMiss)
	return saved, nil
}

func (uc *Usecase) FindByExternalID(ctx context.Context, externalID int64) (Movie, error) {
	if externalID <= 0 {
		return Movie{}, ErrInvalidExternalID
	}

	m, found, err := uc.r.FindByExternalID(ctx, externalID)
	if err != nil {
		return Movie{}, fmt.Errorf("movie: find %d: %w", externalID, err)
	}
	if !found {
		return Movie{}, ErrMovieNotFound
	}
	return m, nil
}

func (uc *Usecase) Save(ctx context.Context, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	m.Title = strings.TrimSpace(m.Title)
	m.PosterPath = strings.TrimSpace(m.PosterPath)

	return uc.r.Upsert(ctx, m)
}

func (uc *Usecase) Search(ctx context.Context, query string, page int) ([]Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	page, err := normalizePage(page)
	if err != nil {
		return nil, err
	}

	results, err := uc.catalog.Search(ctx, query, page)
	if err != nil {
		return nil, remoteUnavailable(err)
	}
	return results, nil
}

func (uc *Usecase) Popular(ctx context.Context, page int) ([]Movie, error) {
	page, err := normalizePage(page)
	if err != nil {
		return nil, err
	}

	results, err := uc.catalog.Popular(ctx, page)
	if err != nil {
		return nil, remoteUnavailable(err)
	}
	return results, nil
}

func (uc *Usecase) observe(outcome string) {
	if uc.observer != nil {
		uc.observer.ObserveResolve(outcome)
	}
}

func normalizePage(page int) (int, error) {
	if page < 1 {
		return 1, nil
	}
	if page > MaxPage {
		return 0, ErrInvalidPage
	}
	return page, nil
}

func remoteUnavailable(err error) error {
	if errors.Is(err, ErrRemoteUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
}

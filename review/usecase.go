package review

import (
	"context"
	"strings"

	"moviereview/movie"
	"moviereview/user"
)

type Service interface {
	Submit(ctx context.Context, userID, externalMovieID int64, content string, rating int) (Review, error)
	GetByID(ctx context.Context, id int64) (Review, error)
	ListByMovie(ctx context.Context, externalMovieID int64) ([]Review, error)
	ListByUser(ctx context.Context, userID int64) ([]Review, error)
}

type Repository interface {
	Create(ctx context.Context, r Review) (Review, error)
	GetByID(ctx context.Context, id int64) (Review, error)
	ListByMovie(ctx context.Context, movieID int64) ([]Review, error)
	ListByUser(ctx context.Context, userID int64) ([]Review, error)
}

type UserFinder interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

// MovieFinder looks movies up in the local store only.
type MovieFinder interface {
	FindByExternalID(ctx context.Context, externalID int64) (movie.Movie, error)
}

type Usecase struct {
	r      Repository
	users  UserFinder
	movies MovieFinder
}

func NewUsecase(r Repository, users UserFinder, movies MovieFinder) *Usecase {
	return &Usecase{r: r, users: users, movies: movies}
}

// Submit stores a review. The movie must already be known locally.
func (uc *Usecase) Submit(ctx context.Context, userID, externalMovieID int64, content string, rating int) (Review, error) {
	rv := Review{
		UserID:          userID,
		ExternalMovieID: externalMovieID,
		Content:         strings.TrimSpace(content),
		Rating:          rating,
	}
	if err := rv.Validate(); err != nil {
		return Review{}, err
	}

	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return Review{}, err
	}
	m, err := uc.movies.FindByExternalID(ctx, externalMovieID)
	if err != nil {
		return Review{}, err
	}

	rv.UserID = u.ID
	rv.MovieID = m.ID
	return uc.r.Create(ctx, rv)
}

func (uc *Usecase) GetByID(ctx context.Context, id int64) (Review, error) {
	if id <= 0 {
		return Review{}, ErrInvalidReviewID
	}
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) ListByMovie(ctx context.Context, externalMovieID int64) ([]Review, error) {
	m, err := uc.movies.FindByExternalID(ctx, externalMovieID)
	if err != nil {
		return nil, err
	}
	return uc.r.ListByMovie(ctx, m.ID)
}

func (uc *Usecase) ListByUser(ctx context.Context, userID int64) ([]Review, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.r.ListByUser(ctx, u.ID)
}

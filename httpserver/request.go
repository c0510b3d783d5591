package httpserver

import (
	"moviereview/movie"
	"moviereview/user"
)

type SaveMovieRequest struct {
	TmdbID     int64  `json:"tmdbId" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required,notblank,max=500"`
	PosterPath string `json:"posterPath" validate:"omitempty,max=255"`
}

func (r SaveMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		ExternalID: r.TmdbID,
		Title:      r.Title,
		PosterPath: r.PosterPath,
	}
}

type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,notblank,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r RegisterUserRequest) ToRegistration() user.Registration {
	return user.Registration{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}

type SubmitReviewRequest struct {
	Content string `json:"content" validate:"required,notblank,max=5000"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

type LikeRequest struct {
	UserID   int64 `json:"userId" validate:"required,gt=0"`
	ReviewID int64 `json:"reviewId" validate:"required,gt=0"`
}

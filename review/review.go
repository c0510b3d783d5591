package review

import (
	"strings"
	"time"
	"unicode/utf8"

	"moviereview/errs"
)

const (
	MinRating = 1
	MaxRating = 5

	maxContentLen = 5000
)

var (
	ErrInvalidContent  = errs.Errorf(errs.EINVALID, "review: invalid content")
	ErrInvalidRating   = errs.Errorf(errs.EINVALID, "review: rating must be between 1 and 5")
	ErrInvalidReviewID = errs.Errorf(errs.EINVALID, "review: invalid id")
	ErrReviewNotFound  = errs.Errorf(errs.ENOTFOUND, "review not found")
)

// Review is a user's rating of a stored movie. MovieID is the local movie
// id, ExternalMovieID the TMDB id it was submitted against.
type Review struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	MovieID         int64     `json:"movieId"`
	ExternalMovieID int64     `json:"tmdbMovieId"`
	Content         string    `json:"content"`
	Rating          int       `json:"rating"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (r Review) Validate() error {
	content := strings.TrimSpace(r.Content)
	if content == "" || utf8.RuneCountInString(content) > maxContentLen {
		return ErrInvalidContent
	}

	if r.Rating < MinRating || r.Rating > MaxRating {
		return ErrInvalidRating
	}

	return nil
}

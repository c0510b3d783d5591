package movie

import (
	"strings"

	"moviereview/errs"
)

// MaxPage is the last result page the catalog will serve.
const MaxPage = 500

var (
	ErrInvalidQuery        = errs.Errorf(errs.EINVALID, "invalid search query")
	ErrInvalidPage         = errs.Errorf(errs.EINVALID, "invalid page")
	ErrInvalidExternalID   = errs.Errorf(errs.EINVALID, "movie: invalid tmdb id")
	ErrInvalidTitle        = errs.Errorf(errs.EINVALID, "movie: invalid title")
	ErrMovieNotFound       = errs.Errorf(errs.ENOTFOUND, "movie not found")
	ErrRemoteUnavailable   = errs.Errorf(errs.EUNAVAILABLE, "movie catalog unavailable")
	ErrPersistenceConflict = errs.Errorf(errs.ECONFLICT, "movie: conflicting write, retry")
)

// Movie is a movie known to the service. ID is the local surrogate key and
// stays zero until the movie has been stored; ExternalID is the TMDB id.
type Movie struct {
	ID         int64  `json:"id,omitempty"`
	ExternalID int64  `json:"tmdbId"`
	Title      string `json:"title"`
	PosterPath string `json:"posterPath,omitempty"`
}

// Stored reports whether the movie carries a store-assigned id.
func (m Movie) Stored() bool {
	return m.ID > 0
}

func (m Movie) Validate() error {
	if m.ExternalID <= 0 {
		return ErrInvalidExternalID
	}

	if strings.TrimSpace(m.Title) == "" {
		return ErrInvalidTitle
	}

	return nil
}

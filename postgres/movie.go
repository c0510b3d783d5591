package postgres

import (
	"context"
	"errors"
	"fmt"

	"moviereview/movie"

	"gorm.io/gorm"
)

// MovieModel represents the database model for cached movies
type MovieModel struct {
	ID         int64  `gorm:"primaryKey"`
	TmdbID     int64  `gorm:"column:tmdb_id;not null;uniqueIndex"`
	Title      string `gorm:"not null"`
	PosterPath string `gorm:"column:poster_path;not null;default:''"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository on PostgreSQL.
// Uniqueness of tmdb_id is enforced by the movies_tmdb_id_key constraint.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) FindByExternalID(ctx context.Context, externalID int64) (movie.Movie, bool, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).Where("tmdb_id = ?", externalID).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, false, nil
		}
		return movie.Movie{}, false, err
	}
	return toDomainMovie(model), true, nil
}

// Upsert inserts m or, when its tmdb_id is already stored, overwrites title
// and poster while keeping the existing id.
func (r *MovieRepository) Upsert(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	const sql = `
INSERT INTO movies (tmdb_id, title, poster_path)
VALUES (?, ?, ?)
ON CONFLICT (tmdb_id) DO UPDATE
SET title = EXCLUDED.title,
    poster_path = EXCLUDED.poster_path
RETURNING id, tmdb_id, title, poster_path`

	var model MovieModel
	err := r.db.WithContext(ctx).Raw(sql, m.ExternalID, m.Title, m.PosterPath).Scan(&model).Error
	if err != nil {
		if isUniqueViolation(err) {
			return movie.Movie{}, fmt.Errorf("%w: %w", movie.ErrPersistenceConflict, err)
		}
		return movie.Movie{}, err
	}
	if model.ID == 0 {
		return movie.Movie{}, fmt.Errorf("%w: upsert of tmdb id %d returned no row", movie.ErrPersistenceConflict, m.ExternalID)
	}
	return toDomainMovie(model), nil
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:         model.ID,
		ExternalID: model.TmdbID,
		Title:      model.Title,
		PosterPath: model.PosterPath,
	}
}

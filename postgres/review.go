package postgres

import (
	"context"
	"errors"
	"time"

	"moviereview/review"
	"moviereview/user"

	"gorm.io/gorm"
)

type ReviewModel struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	MovieID   int64     `gorm:"not null;index"`
	TmdbID    int64     `gorm:"column:tmdb_id;not null"`
	Content   string    `gorm:"not null"`
	Rating    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// ReviewRepository implements review.Repository interface
type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv review.Review) (review.Review, error) {
	model := ReviewModel{
		UserID:  rv.UserID,
		MovieID: rv.MovieID,
		TmdbID:  rv.ExternalMovieID,
		Content: rv.Content,
		Rating:  rv.Rating,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isForeignKeyViolation(err) {
			return review.Review{}, user.ErrUserNotFound
		}
		return review.Review{}, err
	}
	return toDomainReview(model), nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (review.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return review.Review{}, review.ErrReviewNotFound
		}
		return review.Review{}, err
	}
	return toDomainReview(model), nil
}

// ListByMovie returns the reviews of a local movie id, newest first.
func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID int64) ([]review.Review, error) {
	return r.list(ctx, "movie_id = ?", movieID)
}

// ListByUser returns the reviews written by userID, newest first.
func (r *ReviewRepository) ListByUser(ctx context.Context, userID int64) ([]review.Review, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *ReviewRepository) list(ctx context.Context, query string, arg int64) ([]review.Review, error) {
	var models []ReviewModel
	err := r.db.WithContext(ctx).Where(query, arg).Order("created_at DESC, id DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}

	reviews := make([]review.Review, len(models))
	for i, model := range models {
		reviews[i] = toDomainReview(model)
	}
	return reviews, nil
}

func toDomainReview(model ReviewModel) review.Review {
	return review.Review{
		ID:              model.ID,
		UserID:          model.UserID,
		MovieID:         model.MovieID,
		ExternalMovieID: model.TmdbID,
		Content:         model.Content,
		Rating:          model.Rating,
		CreatedAt:       model.CreatedAt,
	}
}

package postgres

import (
	"context"
	"time"

	"moviereview/like"
	"moviereview/review"

	"gorm.io/gorm"
)

type LikeModel struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null"`
	ReviewID  int64     `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

func (LikeModel) TableName() string {
	return "likes"
}

// LikeRepository implements like.Repository interface
type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) FindOrCreate(ctx context.Context, userID, reviewID int64) (like.Like, error) {
	const sql = `
INSERT INTO likes (user_id, review_id)
VALUES (?, ?)
ON CONFLICT (user_id, review_id) DO NOTHING`

	db := r.db.WithContext(ctx)
	if err := db.Exec(sql, userID, reviewID).Error; err != nil {
		if isForeignKeyViolation(err) {
			return like.Like{}, review.ErrReviewNotFound
		}
		return like.Like{}, err
	}

	var model LikeModel
	if err := db.Where("user_id = ? AND review_id = ?", userID, reviewID).Take(&model).Error; err != nil {
		return like.Like{}, err
	}
	return toDomainLike(model), nil
}

func (r *LikeRepository) ListByReview(ctx context.Context, reviewID int64) ([]like.Like, error) {
	var models []LikeModel
	if err := r.db.WithContext(ctx).Where("review_id = ?", reviewID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	likes := make([]like.Like, len(models))
	for i, model := range models {
		likes[i] = toDomainLike(model)
	}
	return likes, nil
}

func toDomainLike(model LikeModel) like.Like {
	return like.Like{
		ID:        model.ID,
		UserID:    model.UserID,
		ReviewID:  model.ReviewID,
		CreatedAt: model.CreatedAt,
	}
}

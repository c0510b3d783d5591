package postgres

import (
	"context"
	"time"

	"moviereview/follow"
	"moviereview/user"

	"gorm.io/gorm"
)

type FollowModel struct {
	ID         int64     `gorm:"primaryKey"`
	FollowerID int64     `gorm:"not null"`
	FollowedID int64     `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
}

func (FollowModel) TableName() string {
	return "follows"
}

// FollowRepository implements follow.Repository interface
type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// FindOrCreate inserts the pair unless it exists and then reads it back, so
// concurrent callers converge on one row.
func (r *FollowRepository) FindOrCreate(ctx context.Context, followerID, followedID int64) (follow.Follow, error) {
	const sql = `
INSERT INTO follows (follower_id, followed_id)
VALUES (?, ?)
ON CONFLICT (follower_id, followed_id) DO NOTHING`

	db := r.db.WithContext(ctx)
	if err := db.Exec(sql, followerID, followedID).Error; err != nil {
		if isForeignKeyViolation(err) {
			return follow.Follow{}, user.ErrUserNotFound
		}
		return follow.Follow{}, err
	}

	var model FollowModel
	err := db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).Take(&model).Error
	if err != nil {
		return follow.Follow{}, err
	}
	return toDomainFollow(model), nil
}

func (r *FollowRepository) ListByFollowed(ctx context.Context, userID int64) ([]follow.Follow, error) {
	return r.list(ctx, "followed_id = ?", userID)
}

func (r *FollowRepository) ListByFollower(ctx context.Context, userID int64) ([]follow.Follow, error) {
	return r.list(ctx, "follower_id = ?", userID)
}

func (r *FollowRepository) list(ctx context.Context, query string, userID int64) ([]follow.Follow, error) {
	var models []FollowModel
	if err := r.db.WithContext(ctx).Where(query, userID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	follows := make([]follow.Follow, len(models))
	for i, model := range models {
		follows[i] = toDomainFollow(model)
	}
	return follows, nil
}

func toDomainFollow(model FollowModel) follow.Follow {
	return follow.Follow{
		ID:         model.ID,
		FollowerID: model.FollowerID,
		FollowedID: model.FollowedID,
		CreatedAt:  model.CreatedAt,
	}
}

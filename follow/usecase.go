package follow

import (
	"context"

	"moviereview/user"
)

type Service interface {
	Follow(ctx context.Context, followerID, followedID int64) (Follow, error)
	Followers(ctx context.Context, userID int64) ([]Follow, error)
	Following(ctx context.Context, userID int64) ([]Follow, error)
}

type Repository interface {
	// FindOrCreate returns the existing follow for the pair or creates it.
	FindOrCreate(ctx context.Context, followerID, followedID int64) (Follow, error)
	ListByFollowed(ctx context.Context, userID int64) ([]Follow, error)
	ListByFollower(ctx context.Context, userID int64) ([]Follow, error)
}

type UserFinder interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

type Usecase struct {
	r     Repository
	users UserFinder
}

func NewUsecase(r Repository, users UserFinder) *Usecase {
	return &Usecase{r: r, users: users}
}

func (uc *Usecase) Follow(ctx context.Context, followerID, followedID int64) (Follow, error) {
	if followerID == followedID {
		return Follow{}, ErrSelfFollow
	}
	if _, err := uc.users.GetByID(ctx, followerID); err != nil {
		return Follow{}, err
	}
	if _, err := uc.users.GetByID(ctx, followedID); err != nil {
		return Follow{}, err
	}
	return uc.r.FindOrCreate(ctx, followerID, followedID)
}

func (uc *Usecase) Followers(ctx context.Context, userID int64) ([]Follow, error) {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.r.ListByFollowed(ctx, userID)
}

func (uc *Usecase) Following(ctx context.Context, userID int64) ([]Follow, error) {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.r.ListByFollower(ctx, userID)
}

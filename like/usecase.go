package like

import (
	"context"

	"moviereview/review"
	"moviereview/user"
)

type Service interface {
	LikeReview(ctx context.Context, userID, reviewID int64) (Like, error)
	ListForReview(ctx context.Context, reviewID int64) ([]Like, error)
}

type Repository interface {
	// FindOrCreate returns the existing like for the pair or creates it.
	FindOrCreate(ctx context.Context, userID, reviewID int64) (Like, error)
	ListByReview(ctx context.Context, reviewID int64) ([]Like, error)
}

type UserFinder interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

type ReviewFinder interface {
	GetByID(ctx context.Context, id int64) (review.Review, error)
}

type Usecase struct {
	r       Repository
	users   UserFinder
	reviews ReviewFinder
}

func NewUsecase(r Repository, users UserFinder, reviews ReviewFinder) *Usecase {
	return &Usecase{r: r, users: users, reviews: reviews}
}

func (uc *Usecase) LikeReview(ctx context.Context, userID, reviewID int64) (Like, error) {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return Like{}, err
	}
	if _, err := uc.reviews.GetByID(ctx, reviewID); err != nil {
		return Like{}, err
	}
	return uc.r.FindOrCreate(ctx, userID, reviewID)
}

func (uc *Usecase) ListForReview(ctx context.Context, reviewID int64) ([]Like, error) {
	if _, err := uc.reviews.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}
	return uc.r.ListByReview(ctx, reviewID)
}

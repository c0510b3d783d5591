package like_test

import (
	"context"
	"testing"

	"moviereview/like"
	"moviereview/review"
	"moviereview/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) FindOrCreate(ctx context.Context, userID, reviewID int64) (like.Like, error) {
	args := m.Called(ctx, userID, reviewID)
	return args.Get(0).(like.Like), args.Error(1)
}

func (m *MockLikeRepository) ListByReview(ctx context.Context, reviewID int64) ([]like.Like, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).([]like.Like), args.Error(1)
}

type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) GetByID(ctx context.Context, id int64) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

type MockReviewFinder struct {
	mock.Mock
}

func (m *MockReviewFinder) GetByID(ctx context.Context, id int64) (review.Review, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(review.Review), args.Error(1)
}

func TestLikeReview(t *testing.T) {
	t.Run("should find or create like", func(t *testing.T) {
		r, users, reviews := new(MockLikeRepository), new(MockUserFinder), new(MockReviewFinder)
		uc := like.NewUsecase(r, users, reviews)
		users.On("GetByID", mock.Anything, int64(1)).Return(user.User{ID: 1}, nil).Once()
		reviews.On("GetByID", mock.Anything, int64(5)).Return(review.Review{ID: 5}, nil).Once()
		r.On("FindOrCreate", mock.Anything, int64(1), int64(5)).Return(like.Like{ID: 2, UserID: 1, ReviewID: 5}, nil).Once()

		got, err := uc.LikeReview(context.Background(), 1, 5)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), got.ID)
		r.AssertExpectations(t)
	})

	t.Run("should fail for unknown review", func(t *testing.T) {
		r, users, reviews := new(MockLikeRepository), new(MockUserFinder), new(MockReviewFinder)
		uc := like.NewUsecase(r, users, reviews)
		users.On("GetByID", mock.Anything, int64(1)).Return(user.User{ID: 1}, nil).Once()
		reviews.On("GetByID", mock.Anything, int64(6)).Return(review.Review{}, review.ErrReviewNotFound).Once()

		_, err := uc.LikeReview(context.Background(), 1, 6)

		assert.Equal(t, review.ErrReviewNotFound, err)
		r.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should fail for unknown user", func(t *testing.T) {
		r, users, reviews := new(MockLikeRepository), new(MockUserFinder), new(MockReviewFinder)
		uc := like.NewUsecase(r, users, reviews)
		users.On("GetByID", mock.Anything, int64(4)).Return(user.User{}, user.ErrUserNotFound).Once()

		_, err := uc.LikeReview(context.Background(), 4, 5)

		assert.Equal(t, user.ErrUserNotFound, err)
		reviews.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestListForReview(t *testing.T) {
	r, users, reviews := new(MockLikeRepository), new(MockUserFinder), new(MockReviewFinder)
	uc := like.NewUsecase(r, users, reviews)
	likes := []like.Like{{ID: 1, UserID: 1, ReviewID: 5}, {ID: 2, UserID: 2, ReviewID: 5}}
	reviews.On("GetByID", mock.Anything, int64(5)).Return(review.Review{ID: 5}, nil).Once()
	r.On("ListByReview", mock.Anything, int64(5)).Return(likes, nil).Once()

	got, err := uc.ListForReview(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, likes, got)
}

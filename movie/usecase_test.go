package movie_test

import (
	"context"
	"errors"
	"testing"

	"moviereview/errs"
	"moviereview/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) FindByExternalID(ctx context.Context, externalID int64) (movie.Movie, bool, error) {
	args := m.Called(ctx, externalID)
	return args.Get(0).(movie.Movie), args.Bool(1), args.Error(2)
}

func (m *MockMovieRepository) Upsert(ctx context.Context, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) FetchByID(ctx context.Context, externalID int64) (movie.Movie, error) {
	args := m.Called(ctx, externalID)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockCatalog) Search(ctx context.Context, query string, page int) ([]movie.Movie, error) {
	args := m.Called(ctx, query, page)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockCatalog) Popular(ctx context.Context, page int) ([]movie.Movie, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

type recordingObserver struct {
	outcomes []string
}

func (o *recordingObserver) ObserveResolve(outcome string) {
	o.outcomes = append(o.outcomes, outcome)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	inception := movie.Movie{ExternalID: 42, Title: "Inception", PosterPath: "/i.jpg"}

	t.Run("should return stored movie without calling catalog", func(t *testing.T) {
		r, c := new(MockMovieRepository), new(MockCatalog)
		obs := new(recordingObserver)
		uc := movie.NewUsecase(r, c).WithObserver(obs)
		stored := movie.Movie{ID: 7, ExternalID: 42, Title: "Inception"}
		r.On("FindByExternalID", mock.Anything, int64(42)).Return(stored, true, nil).Once()

		got, err := uc.Resolve(ctx, 42)

		require.NoError(t, err)
		assert.Equal(t, stored, got)
		c.AssertNotCalled(t, "FetchByID", mock.Anything, mock.Anything)
		r.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		assert.Equal(t, []string{movie.OutcomeHit}, obs.outcomes)
	})

	t.Run("should fetch and store movie on miss", func(t *testing.T) {
		r, c := new(MockMovieRepository), new(MockCatalog)
		uc := movie.NewUsecase(r, c)
		saved := inception
		saved.ID = 1
		r.On("FindByExternalID", mock.Anything, int64(42)).Return(movie.Movie{}, false, nil).Once()
		c.On("FetchByID", mock.Anything, int64(42)).Return(inception, nil).Once()
		r.On("Upsert", mock.Anything, inception).Return(saved, nil).Once()

		got, err := uc.Resolve(ctx, 42)

		require.NoError(t, err)
		assert.True(t, got.Stored())
		assert.Equal(t, int64(42), got.ExternalID)
		assert.Equal(t, "Inception", got.Title)
		r.AssertExpectations(t)
		c.AssertExpectations(t)
		c.AssertNumberOfCalls(t, "FetchByID", 1)
		r.AssertNumberOfCalls(t, "Upsert", 1)
	})

	t.Run("should not assign a second id on repeated resolve", func(t *testing.T) {
		r, c := new(MockMovieRepository), new(MockCatalog)
		uc := movie.NewUsecase(r, c)
		saved := inception
		saved.ID = 3
		r.On("FindByExternalID", mock.Anything, int64(42)).Return(movie.Movie{}, false, nil).Once()
		c.On("FetchByID", mock.Anything, int64(42)).Return(inception, nil).Once()
		r.On("Upsert", mock.Anything, inception).Return(saved, nil).Once()
		r.On("FindByExternalID", mock.Anything, int64(42)).Return(saved, true, nil).Once()

		first, err := uc.Resolve(ctx, 42)
		require.NoError(t, err)
		second, err := uc.Resolve(ctx, 42)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		c.AssertNumberOfCalls(t, "FetchByID", 1)
	})

	t.Run("should fail with remote unavailable and write nothing", func(t *testing.T) {
		r, c := new(MockMovieRepository), new(MockCatalog)
		obs := new(recordingObserver)
		uc := movie.NewUsecase(r, c).WithObserver(obs)
		r.On("FindByExternalID", mock.Anything, int64(999)).Return(movie.Movie{}, false, nil).Once()
		c.On("FetchByID", mock.Anything, int64(999)).Return(movie.Movie{}, errors.New("connection refused")).Once()

		_, err := uc.Resolve(ctx, 999)

		assert.ErrorIs(t, err, movie.ErrRemoteUnavailable)
		assert.Equal(t, errs.EUNAVAILABLE, errs.ErrorCode(err))
		r.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		assert.Equal(t, []string{movie.OutcomeRemote}, obs.outcomes)
	})

	t.Run("should keep catalog error already marked unavailable", func(t *testing.T) {
		r, c := new(MockMovieRepository), new(MockCatalog)
		uc := movie.NewUsecase(r, c)
		cause := movie.ErrRemoteUnavailable
		r.On("FindByExternalID", mock.Anything, int64(5)).Return(movie.Movie{}, false, nil).Once()
		c.On("FetchByID", mock.Anything, int64(5)).Return(movie.Movie{}, cause).Once()

		_, err := uc.Resolve(ctx, 5)

		assert.Same(t, cause, err)
	})

	t.Run("should reject unusable catalog payload", func(t *testing.T) {
		r, c := new(MockMovieRepository), new(MockCatalog)
		uc := movie.NewUsecase(r, c)
		r.On("FindByExternalID", mock.Anything, int64(8)).Return(movie.Movie{}, false, nil).Once()
		c.On("FetchByID", mock.Anything, int64(8)).Return(movie.Movie{ExternalID: 8}, nil).Once()

		_, err := uc.Resolve(ctx, 8)

		assert.ErrorIs(t, err, movie.ErrRemoteUnavailable)
		r.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("should reject payload for a different tmdb id", func(t *testing.T) {
		r, c := new(MockMovieRepository), new(MockCatalog)
		uc := movie.NewUsecase(r, c)
		r.On("FindByExternalID", mock.Anything, int64(9)).Return(movie.Movie{}, false, nil).Once()
		c.On("FetchByID", mock.Anything, int64(9)).Return(inception, nil).Once()

		_, err := uc.Resolve(ctx, 9)

		assert.ErrorIs(t, err, movie.ErrRemoteUnavailable)
		r.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("should surface persistence conflict", func(t *testing.T) {
		r, c := new(MockMovieRepository), new(MockCatalog)
		uc := movie.NewUsecase(r, c)
		r.On("FindByExternalID", mock.Anything, int64(42)).Return(movie.Movie{}, false, nil).Once()
		c.On("FetchByID", mock.Anything, int64(42)).Return(inception, nil).Once()
		r.On("Upsert", mock.Anything, inception).Return(movie.Movie{}, movie.ErrPersistenceConflict).Once()

		_, err := uc.Resolve(ctx, 42)

		assert.ErrorIs(t, err, movie.ErrPersistenceConflict)
		assert.Equal(t, errs.ECONFLICT, errs.ErrorCode(err))
	})

	t.Run("should wrap store lookup failure", func(t *testing.T) {
		r, c := new(MockMovieRepository), new(MockCatalog)
		uc := movie.NewUsecase(r, c)
		dbErr := errors.New("connection reset")
		r.On("FindByExternalID", mock.Anything, int64(42)).Return(movie.Movie{}, false, dbErr).Once()

		_, err := uc.Resolve(ctx, 42)

		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, errs.EINTERNAL, errs.ErrorCode(err))
		c.AssertNotCalled(t, "FetchByID", mock.Anything, mock.Anything)
	})

	t.Run("should reject non positive id", func(t *testing.T) {
		uc := movie.NewUsecase(new(MockMovieRepository), new(MockCatalog))

		_, err := uc.Resolve(ctx, 0)

		assert.Equal(t, movie.ErrInvalidExternalID, err)
	})
}

func TestFindByExternalID(t *testing.T) {
	r := new(MockMovieRepository)
	uc := movie.NewUsecase(r, new(MockCatalog))

	t.Run("should return not found on miss", func(t *testing.T) {
		r.On("FindByExternalID", mock.Anything, int64(1)).Return(movie.Movie{}, false, nil).Once()

		_, err := uc.FindByExternalID(context.Background(), 1)

		assert.Equal(t, movie.ErrMovieNotFound, err)
	})

	t.Run("should return stored movie", func(t *testing.T) {
		stored := movie.Movie{ID: 2, ExternalID: 1, Title: "Heat"}
		r.On("FindByExternalID", mock.Anything, int64(1)).Return(stored, true, nil).Once()

		got, err := uc.FindByExternalID(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, stored, got)
	})
}

func TestSave(t *testing.T) {
	r := new(MockMovieRepository)
	uc := movie.NewUsecase(r, new(MockCatalog))

	t.Run("should upsert trimmed movie", func(t *testing.T) {
		in := movie.Movie{ExternalID: 11, Title: "  Alien ", PosterPath: " /a.jpg "}
		want := movie.Movie{ExternalID: 11, Title: "Alien", PosterPath: "/a.jpg"}
		r.On("Upsert", mock.Anything, want).Return(movie.Movie{ID: 4, ExternalID: 11, Title: "Alien", PosterPath: "/a.jpg"}, nil).Once()

		got, err := uc.Save(context.Background(), in)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), got.ID)
		r.AssertExpectations(t)
	})

	t.Run("should fail on blank title", func(t *testing.T) {
		_, err := uc.Save(context.Background(), movie.Movie{ExternalID: 11, Title: " "})

		assert.Equal(t, movie.ErrInvalidTitle, err)
	})

	t.Run("should fail on missing tmdb id", func(t *testing.T) {
		_, err := uc.Save(context.Background(), movie.Movie{Title: "Alien"})

		assert.Equal(t, movie.ErrInvalidExternalID, err)
	})
}

func TestSearch(t *testing.T) {
	r, c := new(MockMovieRepository), new(MockCatalog)
	uc := movie.NewUsecase(r, c)

	t.Run("should pass through to catalog without storing", func(t *testing.T) {
		results := []movie.Movie{{ExternalID: 1, Title: "Alien"}, {ExternalID: 2, Title: "Aliens"}}
		c.On("Search", mock.Anything, "alien", 2).Return(results, nil).Once()

		got, err := uc.Search(context.Background(), " alien ", 2)

		assert.NoError(t, err)
		assert.Equal(t, results, got)
		r.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("should default page to one", func(t *testing.T) {
		c.On("Search", mock.Anything, "heat", 1).Return([]movie.Movie{}, nil).Once()

		_, err := uc.Search(context.Background(), "heat", 0)

		assert.NoError(t, err)
		c.AssertExpectations(t)
	})

	t.Run("should fail on blank query", func(t *testing.T) {
		_, err := uc.Search(context.Background(), "  ", 1)

		assert.Equal(t, movie.ErrInvalidQuery, err)
	})

	t.Run("should fail on page beyond catalog limit", func(t *testing.T) {
		_, err := uc.Search(context.Background(), "heat", movie.MaxPage+1)

		assert.Equal(t, movie.ErrInvalidPage, err)
	})

	t.Run("should mark catalog failure unavailable", func(t *testing.T) {
		c.On("Search", mock.Anything, "down", 1).Return([]movie.Movie(nil), errors.New("timeout")).Once()

		_, err := uc.Search(context.Background(), "down", 1)

		assert.ErrorIs(t, err, movie.ErrRemoteUnavailable)
	})
}

func TestPopular(t *testing.T) {
	r, c := new(MockMovieRepository), new(MockCatalog)
	uc := movie.NewUsecase(r, c)

	t.Run("should pass through to catalog", func(t *testing.T) {
		results := []movie.Movie{{ExternalID: 550, Title: "Fight Club"}}
		c.On("Popular", mock.Anything, 3).Return(results, nil).Once()

		got, err := uc.Popular(context.Background(), 3)

		assert.NoError(t, err)
		assert.Equal(t, results, got)
		r.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("should mark catalog failure unavailable", func(t *testing.T) {
		c.On("Popular", mock.Anything, 1).Return([]movie.Movie(nil), errors.New("503")).Once()

		_, err := uc.Popular(context.Background(), -4)

		assert.ErrorIs(t, err, movie.ErrRemoteUnavailable)
	})
}

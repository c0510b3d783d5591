package httpserver

import (
	"net/http"

	"moviereview/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterReviewRoutes(g *echo.Group) {
	g.POST("/user/:userId/movie/:movieId", s.handleSubmitReview)
	g.GET("/movie/:movieId", s.handleListMovieReviews)
	g.GET("/user/:userId", s.handleListUserReviews)
	g.GET("/:id", s.handleGetReview)
}

func (s *Server) reviewService() error {
	if s.ReviewService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "review service not configured")
	}
	return nil
}

// handleSubmitReview godoc
// @Summary Submit Review
// @Description Review a movie already stored locally, addressed by TMDB id
// @Tags reviews
// @Accept json
// @Produce json
// @Param userId path int true "User id"
// @Param movieId path int true "TMDB id"
// @Param review body SubmitReviewRequest true "Review Data"
// @Success 201 {object} review.Review
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/reviews/user/{userId}/movie/{movieId} [post]
func (s *Server) handleSubmitReview(c echo.Context) error {
	if err := s.reviewService(); err != nil {
		return err
	}

	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	movieID, err := pathID(c, "movieId")
	if err != nil {
		return err
	}

	var req SubmitReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := s.ReviewService.Submit(c.Request().Context(), userID, movieID, req.Content, req.Rating)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, r)
}

// handleListMovieReviews godoc
// @Summary List Movie Reviews
// @Tags reviews
// @Produce json
// @Param movieId path int true "TMDB id"
// @Success 200 {array} review.Review
// @Failure 404 {object} APIResponse
// @Router /api/reviews/movie/{movieId} [get]
func (s *Server) handleListMovieReviews(c echo.Context) error {
	if err := s.reviewService(); err != nil {
		return err
	}

	movieID, err := pathID(c, "movieId")
	if err != nil {
		return err
	}

	reviews, err := s.ReviewService.ListByMovie(c.Request().Context(), movieID)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, reviews)
}

// handleListUserReviews godoc
// @Summary List User Reviews
// @Tags reviews
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {array} review.Review
// @Failure 404 {object} APIResponse
// @Router /api/reviews/user/{userId} [get]
func (s *Server) handleListUserReviews(c echo.Context) error {
	if err := s.reviewService(); err != nil {
		return err
	}

	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	reviews, err := s.ReviewService.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, reviews)
}

func (s *Server) handleGetReview(c echo.Context) error {
	if err := s.reviewService(); err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	r, err := s.ReviewService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, r)
}

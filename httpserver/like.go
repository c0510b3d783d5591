package httpserver

import (
	"net/http"

	"moviereview/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterLikeRoutes(g *echo.Group) {
	g.POST("", s.handleLikeReview)
	g.GET("/review/:reviewId", s.handleListReviewLikes)
}

// handleLikeReview godoc
// @Summary Like Review
// @Description Like a review; repeating the call returns the same like
// @Tags likes
// @Accept json
// @Produce json
// @Param like body LikeRequest true "Like Data"
// @Success 200 {object} like.Like
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/likes [post]
func (s *Server) handleLikeReview(c echo.Context) error {
	if s.LikeService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "like service not configured")
	}

	var req LikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	l, err := s.LikeService.LikeReview(c.Request().Context(), req.UserID, req.ReviewID)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, l)
}

// handleListReviewLikes godoc
// @Summary List Review Likes
// @Tags likes
// @Produce json
// @Param reviewId path int true "Review id"
// @Success 200 {array} like.Like
// @Router /api/likes/review/{reviewId} [get]
func (s *Server) handleListReviewLikes(c echo.Context) error {
	if s.LikeService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "like service not configured")
	}

	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return err
	}

	likes, err := s.LikeService.ListForReview(c.Request().Context(), reviewID)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, likes)
}

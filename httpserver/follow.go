package httpserver

import (
	"net/http"

	"moviereview/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/:followerId/follow/:followedId", s.handleFollow)
	g.GET("/:userId/followers", s.handleListFollowers)
	g.GET("/:userId/following", s.handleListFollowing)
}

// handleFollow godoc
// @Summary Follow User
// @Description Make followerId follow followedId; repeating the call returns the same follow
// @Tags follows
// @Produce json
// @Param followerId path int true "Follower id"
// @Param followedId path int true "Followed id"
// @Success 200 {object} follow.Follow
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/follows/{followerId}/follow/{followedId} [post]
func (s *Server) handleFollow(c echo.Context) error {
	if s.FollowService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "follow service not configured")
	}

	followerID, err := pathID(c, "followerId")
	if err != nil {
		return err
	}
	followedID, err := pathID(c, "followedId")
	if err != nil {
		return err
	}

	f, err := s.FollowService.Follow(c.Request().Context(), followerID, followedID)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, f)
}

// handleListFollowers godoc
// @Summary List Followers
// @Tags follows
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {array} follow.Follow
// @Router /api/follows/{userId}/followers [get]
func (s *Server) handleListFollowers(c echo.Context) error {
	if s.FollowService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "follow service not configured")
	}

	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	follows, err := s.FollowService.Followers(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, follows)
}

// handleListFollowing godoc
// @Summary List Following
// @Tags follows
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {array} follow.Follow
// @Router /api/follows/{userId}/following [get]
func (s *Server) handleListFollowing(c echo.Context) error {
	if s.FollowService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "follow service not configured")
	}

	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	follows, err := s.FollowService.Following(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, follows)
}

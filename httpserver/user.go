package httpserver

import (
	"net/http"

	"moviereview/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterUserRoutes(g *echo.Group) {
	g.POST("/register", s.handleRegisterUser)
	g.GET("/:id", s.handleGetUser)
	g.GET("/username/:username", s.handleGetUserByUsername)
}

// handleRegisterUser godoc
// @Summary Register User
// @Description Create a user account
// @Tags users
// @Accept json
// @Produce json
// @Param user body RegisterUserRequest true "User Data"
// @Success 201 {object} user.User
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/users/register [post]
func (s *Server) handleRegisterUser(c echo.Context) error {
	if s.UserService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "user service not configured")
	}

	var req RegisterUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	u, err := s.UserService.Register(c.Request().Context(), req.ToRegistration())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, u)
}

// handleGetUser godoc
// @Summary Get User
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} user.User
// @Failure 404 {object} APIResponse
// @Router /api/users/{id} [get]
func (s *Server) handleGetUser(c echo.Context) error {
	if s.UserService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "user service not configured")
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	u, err := s.UserService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, u)
}

// handleGetUserByUsername godoc
// @Summary Get User By Username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} user.User
// @Failure 404 {object} APIResponse
// @Router /api/users/username/{username} [get]
func (s *Server) handleGetUserByUsername(c echo.Context) error {
	if s.UserService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "user service not configured")
	}

	u, err := s.UserService.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, u)
}

package httpserver

import (
	"net/http"

	"moviereview/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.POST("", s.handleSaveMovie)
	g.GET("/tmdb/:tmdbId", s.handleResolveMovie)
	g.GET("/search", s.handleSearchMovies)
	g.GET("/popular", s.handlePopularMovies)
}

func (s *Server) movieService() error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}
	return nil
}

// handleSaveMovie godoc
// @Summary Save Movie
// @Description Store a movie with all fields; an existing TMDB id keeps its local id
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body SaveMovieRequest true "Movie Data"
// @Success 201 {object} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleSaveMovie(c echo.Context) error {
	if err := s.movieService(); err != nil {
		return err
	}

	var req SaveMovieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := s.MovieService.Save(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, m)
}

// handleResolveMovie godoc
// @Summary Resolve Movie
// @Description Return the stored movie for a TMDB id, fetching and storing it on first access
// @Tags movies
// @Produce json
// @Param tmdbId path int true "TMDB id"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /api/movies/tmdb/{tmdbId} [get]
func (s *Server) handleResolveMovie(c echo.Context) error {
	if err := s.movieService(); err != nil {
		return err
	}

	tmdbID, err := pathID(c, "tmdbId")
	if err != nil {
		return err
	}

	m, err := s.MovieService.Resolve(c.Request().Context(), tmdbID)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Search the TMDB catalog by title; nothing is stored
// @Tags movies
// @Produce json
// @Param query query string true "Search query"
// @Param page query int false "Catalog page, default 1"
// @Success 200 {array} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /api/movies/search [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	if err := s.movieService(); err != nil {
		return err
	}

	page, err := queryPage(c)
	if err != nil {
		return err
	}

	results, err := s.MovieService.Search(c.Request().Context(), c.QueryParam("query"), page)
	if err != nil {
		return err
	}

	return writePage(c, http.StatusOK, results, max(page, 1))
}

// handlePopularMovies godoc
// @Summary Popular Movies
// @Description List popular movies from TMDB; nothing is stored
// @Tags movies
// @Produce json
// @Param page query int false "Catalog page, default 1"
// @Success 200 {array} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /api/movies/popular [get]
func (s *Server) handlePopularMovies(c echo.Context) error {
	if err := s.movieService(); err != nil {
		return err
	}

	page, err := queryPage(c)
	if err != nil {
		return err
	}

	results, err := s.MovieService.Popular(c.Request().Context(), page)
	if err != nil {
		return err
	}

	return writePage(c, http.StatusOK, results, max(page, 1))
}

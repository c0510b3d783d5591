package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"moviereview/errs"
	"moviereview/follow"
	"moviereview/like"
	"moviereview/movie"
	"moviereview/pkg/config"
	"moviereview/pkg/logger"
	"moviereview/pkg/metrics"
	"moviereview/pkg/sentry"
	"moviereview/review"
	"moviereview/user"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Logger *zap.SugaredLogger

	MovieService  movie.Service
	UserService   user.Service
	ReviewService review.Service
	FollowService follow.Service
	LikeService   like.Service
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		Logger:       logger.NOOPLogger,
	}
	if cfg.Port != 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if cfg.AllowOrigins != "" {
		s.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
	}

	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleError
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api")
	s.RegisterMovieRoutes(api.Group("/movies"))
	s.RegisterUserRoutes(api.Group("/users"))
	s.RegisterReviewRoutes(api.Group("/reviews"))
	s.RegisterFollowRoutes(api.Group("/follows"))
	s.RegisterLikeRoutes(api.Group("/likes"))

	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(metrics.Middleware())
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// handleError maps application errors to HTTP statuses and writes the
// response envelope. Server side failures are logged and sent to Sentry.
func (s *Server) handleError(err error, c echo.Context) {
	status, message := statusOf(err)

	if status >= http.StatusInternalServerError {
		s.Logger.Errorw(err.Error(),
			"request_id", s.requestID(c),
			"method", c.Request().Method,
			"path", c.Path(),
			"status", status,
		)
		sentry.WithContext(c).
			WithTags(map[string]string{"error_code": errs.ErrorCode(err)}).
			WithExtras(map[string]interface{}{"request_id": s.requestID(c), "status": status}).
			Error(err)
	} else if errors.Is(err, movie.ErrPersistenceConflict) {
		s.Logger.Warnw(err.Error(), "request_id", s.requestID(c), "path", c.Path(), "status", status)
		sentry.WithContext(c).
			WithTags(map[string]string{"error_code": errs.ECONFLICT}).
			Warningf("movie store conflict on %s: %v", c.Path(), err)
	} else {
		s.Logger.Debugw(err.Error(), "request_id", s.requestID(c), "status", status)
	}

	// Don't write response if already committed
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = writeError(c, status, message, "", err)
	}
	if err != nil {
		s.Logger.Errorw("write error response", "error", err)
	}
}

func statusOf(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}

	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		return http.StatusBadRequest, errs.ErrorMessage(err)
	case errs.ENOTFOUND:
		return http.StatusNotFound, errs.ErrorMessage(err)
	case errs.ECONFLICT:
		return http.StatusConflict, errs.ErrorMessage(err)
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized, errs.ErrorMessage(err)
	case errs.EUNAVAILABLE:
		return http.StatusBadGateway, errs.ErrorMessage(err)
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented, errs.ErrorMessage(err)
	}
	return http.StatusInternalServerError, "Internal server error"
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

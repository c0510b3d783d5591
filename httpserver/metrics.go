package httpserver

import (
	"moviereview/pkg/metrics"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMetricsRoutes() {
	s.Router.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

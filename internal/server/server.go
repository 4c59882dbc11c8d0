package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/t0sssik/gsd-ci-cd/internal/app"
	"github.com/t0sssik/gsd-ci-cd/internal/config"
	"github.com/t0sssik/gsd-ci-cd/internal/correlation"
	"github.com/t0sssik/gsd-ci-cd/internal/domain"
	apperrors "github.com/t0sssik/gsd-ci-cd/internal/errors"
	"github.com/t0sssik/gsd-ci-cd/internal/metrics"
)

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       *app.Service
	store     domain.Store
	startTime time.Time
}

func NewServer(cfg *config.Config, appSvc *app.Service, store domain.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(correlation.Middleware())
	e.Use(requestMetrics())
	e.Use(apperrors.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Origins(),
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       appSvc,
		store:     store,
		startTime: time.Now(),
	}

	// Register routes
	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestMetrics records request counts and latency per route.
func requestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			method := c.Request().Method
			route := c.Path()
			metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

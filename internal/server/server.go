// Package server is the HTTP transport: echo routes, bearer-token auth, and
// the JSON handlers in front of the application service.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/wafflestudio18-5/team4-server/internal/config"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
	apperrors "github.com/wafflestudio18-5/team4-server/internal/errors"
)

// redisPinger is a minimal interface for Redis health checks
type redisPinger interface {
	Ping(ctx context.Context) error
}

// postgresPinger is a minimal interface for PostgreSQL health checks
type postgresPinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       domain.AppService
	redis     redisPinger
	postgres  postgresPinger
	startTime time.Time
}

func NewServer(cfg *config.Config, app domain.AppService, redis redisPinger, postgres postgresPinger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       app,
		redis:     redis,
		postgres:  postgres,
		startTime: time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Accounts and sessions
	s.echo.POST("/user/", s.handleSignUp)
	s.echo.POST("/user/signin/", s.handleSignIn)
	s.echo.DELETE("/user/signout/", s.handleSignOut, s.requireAuth)
	s.echo.GET("/user/me/", s.handleMe, s.requireAuth)

	// Rating (one handler, three target kinds)
	s.echo.PUT("/rate/question/:id/", s.handleRate(domain.KindQuestion), s.requireAuth)
	s.echo.PUT("/rate/answer/:id/", s.handleRate(domain.KindAnswer), s.requireAuth)
	s.echo.PUT("/rate/comment/:id/", s.handleRate(domain.KindComment), s.requireAuth)

	// Acceptance
	s.echo.POST("/answer/:id/acception/", s.handleAccept, s.requireAuth)
	s.echo.DELETE("/answer/:id/acception/", s.handleUnaccept, s.requireAuth)

	// Questions
	s.echo.POST("/question/", s.handleCreateQuestion, s.requireAuth)
	s.echo.GET("/question/:id/", s.handleGetQuestion)
	s.echo.DELETE("/question/:id/", s.handleDeleteQuestion, s.requireAuth)
	s.echo.POST("/bookmark/question/:id/", s.handleBookmark(true), s.requireAuth)
	s.echo.DELETE("/bookmark/question/:id/", s.handleBookmark(false), s.requireAuth)

	// Answers
	s.echo.POST("/question/:id/answer/", s.handleCreateAnswer, s.requireAuth)
	s.echo.GET("/answer/:id/", s.handleGetAnswer)
	s.echo.DELETE("/answer/:id/", s.handleDeleteAnswer, s.requireAuth)

	// Comments
	s.echo.POST("/question/:id/comment/", s.handleCommentOnQuestion, s.requireAuth)
	s.echo.POST("/answer/:id/comment/", s.handleCommentOnAnswer, s.requireAuth)
	s.echo.GET("/comment/:id/", s.handleGetComment)
}

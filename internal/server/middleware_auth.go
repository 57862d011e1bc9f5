package server

import (
	"strings"

	"github.com/labstack/echo/v4"
	apperrors "github.com/wafflestudio18-5/team4-server/internal/errors"
)

const bearerPrefix = "Bearer "

// requireAuth resolves the Authorization bearer token to a user id and stores
// it in the request context under "userID".
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return apperrors.UnauthorizedError("missing bearer token")
		}
		token := strings.TrimPrefix(header, bearerPrefix)

		userID, err := s.app.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set("userID", userID)
		c.Set("token", token)
		return next(c)
	}
}

// callerID returns the authenticated user id set by requireAuth.
func callerID(c echo.Context) (int64, error) {
	userID, ok := c.Get("userID").(int64)
	if !ok {
		return 0, apperrors.InternalError("invalid user ID in context", nil)
	}
	return userID, nil
}

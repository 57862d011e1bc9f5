package server

import (
	"github.com/labstack/echo/v4"
	apperrors "github.com/wafflestudio18-5/team4-server/internal/errors"
)

type signUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

func (s *Server) handleSignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Username == "" || req.Password == "" || req.Nickname == "" {
		return apperrors.ValidationError("username, password and nickname are required")
	}

	user, token, err := s.app.SignUp(c.Request().Context(), req.Username, req.Password, req.Nickname)
	if err != nil {
		return err
	}

	return c.JSON(201, map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
		"token":    token,
	})
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.ValidationError("username and password are required")
	}

	user, token, err := s.app.SignIn(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(200, map[string]any{
		"user_id": user.ID,
		"token":   token,
	})
}

func (s *Server) handleSignOut(c echo.Context) error {
	token, ok := c.Get("token").(string)
	if !ok {
		return apperrors.InternalError("invalid token in context", nil)
	}

	if err := s.app.SignOut(c.Request().Context(), token); err != nil {
		return err
	}
	return c.JSON(200, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	user, profile, err := s.app.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(200, map[string]any{
		"user_id":    user.ID,
		"username":   user.Username,
		"nickname":   profile.Nickname,
		"intro":      profile.Intro,
		"reputation": profile.Reputation,
	})
}

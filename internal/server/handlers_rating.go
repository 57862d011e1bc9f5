package server

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
	apperrors "github.com/wafflestudio18-5/team4-server/internal/errors"
)

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ValidationError("invalid id").WithField("id", raw)
	}
	return id, nil
}

type rateRequest struct {
	// Pointer so an absent rating key is distinguishable from an explicit 0.
	Rating *int `json:"rating"`
}

func (s *Server) handleRate(kind domain.TargetKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c)
		if err != nil {
			return err
		}
		targetID, err := pathID(c)
		if err != nil {
			return err
		}

		var req rateRequest
		if err := c.Bind(&req); err != nil {
			return apperrors.ValidationError("invalid request body")
		}
		if req.Rating == nil {
			return apperrors.ValidationError("rating is required")
		}

		result, err := s.app.Rate(c.Request().Context(), userID, kind, targetID, *req.Rating)
		if err != nil {
			return err
		}

		// The target id key is named after the kind: question_id,
		// answer_id, or comment_id.
		response := map[string]any{
			"user_id": result.UserID,
			"vote":    result.Vote,
			"rating":  int(result.Rating),
		}
		response[string(kind)+"_id"] = result.TargetID
		return c.JSON(200, response)
	}
}

func (s *Server) handleAccept(c echo.Context) error {
	return s.handleAcception(c, s.app.AcceptAnswer)
}

func (s *Server) handleUnaccept(c echo.Context) error {
	return s.handleAcception(c, s.app.UnacceptAnswer)
}

func (s *Server) handleAcception(c echo.Context, transition func(ctx context.Context, answerID, callerID int64) (*domain.AcceptionResult, error)) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	answerID, err := pathID(c)
	if err != nil {
		return err
	}

	result, err := transition(c.Request().Context(), answerID, userID)
	if err != nil {
		return err
	}

	return c.JSON(200, map[string]any{
		"question_id":  result.QuestionID,
		"has_accepted": result.HasAccepted,
		"answer_id":    result.AnswerID,
		"is_accepted":  result.IsAccepted,
	})
}

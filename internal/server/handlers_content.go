package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
	apperrors "github.com/wafflestudio18-5/team4-server/internal/errors"
)

// --- Questions ---

type createQuestionRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (s *Server) handleCreateQuestion(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req createQuestionRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Title == "" || req.Content == "" {
		return apperrors.ValidationError("title and content are required")
	}

	question, err := s.app.CreateQuestion(c.Request().Context(), userID, req.Title, req.Content, req.Tags)
	if err != nil {
		return err
	}
	return c.JSON(201, questionResponse(question))
}

func (s *Server) handleGetQuestion(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	question, err := s.app.GetQuestion(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(200, questionResponse(question))
}

func (s *Server) handleDeleteQuestion(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := s.app.DeleteQuestion(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return c.JSON(200, map[string]string{"status": "ok"})
}

func (s *Server) handleBookmark(bookmarked bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c)
		if err != nil {
			return err
		}
		questionID, err := pathID(c)
		if err != nil {
			return err
		}

		if err := s.app.SetBookmark(c.Request().Context(), userID, questionID, bookmarked); err != nil {
			return err
		}
		return c.JSON(200, map[string]any{
			"question_id": questionID,
			"bookmark":    bookmarked,
		})
	}
}

func questionResponse(q *domain.Question) map[string]any {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"question_id":  q.ID,
		"user_id":      q.UserID,
		"title":        q.Title,
		"content":      q.Content,
		"vote":         q.Vote,
		"has_accepted": q.HasAccepted,
		"tags":         tags,
		"created_at":   q.CreatedAt,
	}
}

// --- Answers ---

type contentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleCreateAnswer(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	questionID, err := pathID(c)
	if err != nil {
		return err
	}

	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Content == "" {
		return apperrors.ValidationError("content is required")
	}

	answer, err := s.app.CreateAnswer(c.Request().Context(), questionID, userID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(201, answerResponse(answer))
}

func (s *Server) handleGetAnswer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	answer, err := s.app.GetAnswer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(200, answerResponse(answer))
}

func (s *Server) handleDeleteAnswer(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := s.app.DeleteAnswer(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return c.JSON(200, map[string]string{"status": "ok"})
}

func answerResponse(a *domain.Answer) map[string]any {
	return map[string]any{
		"answer_id":   a.ID,
		"question_id": a.QuestionID,
		"user_id":     a.UserID,
		"content":     a.Content,
		"vote":        a.Vote,
		"is_accepted": a.IsAccepted,
		"created_at":  a.CreatedAt,
	}
}

// --- Comments ---

func (s *Server) handleCommentOnQuestion(c echo.Context) error {
	return s.handleCreateComment(c, s.app.CommentOnQuestion)
}

func (s *Server) handleCommentOnAnswer(c echo.Context) error {
	return s.handleCreateComment(c, s.app.CommentOnAnswer)
}

func (s *Server) handleCreateComment(c echo.Context, create func(ctx context.Context, parentID, userID int64, content string) (*domain.Comment, error)) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	parentID, err := pathID(c)
	if err != nil {
		return err
	}

	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Content == "" {
		return apperrors.ValidationError("content is required")
	}

	comment, err := create(c.Request().Context(), parentID, userID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(201, commentResponse(comment))
}

func (s *Server) handleGetComment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	comment, err := s.app.GetComment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(200, commentResponse(comment))
}

func commentResponse(cm *domain.Comment) map[string]any {
	return map[string]any{
		"comment_id":  cm.ID,
		"user_id":     cm.UserID,
		"question_id": cm.QuestionID,
		"answer_id":   cm.AnswerID,
		"content":     cm.Content,
		"vote":        cm.Vote,
		"created_at":  cm.CreatedAt,
	}
}

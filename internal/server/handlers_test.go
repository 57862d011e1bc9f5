package server

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wafflestudio18-5/team4-server/internal/config"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
)

// --- Mock implementations ---

type mockAppService struct {
	signUpFn         func(ctx context.Context, username, password, nickname string) (*domain.User, string, error)
	signInFn         func(ctx context.Context, username, password string) (*domain.User, string, error)
	signOutFn        func(ctx context.Context, token string) error
	authenticateFn   func(ctx context.Context, token string) (int64, error)
	meFn             func(ctx context.Context, userID int64) (*domain.User, *domain.UserProfile, error)
	createQuestionFn func(ctx context.Context, userID int64, title, content string, tags []string) (*domain.Question, error)
	getQuestionFn    func(ctx context.Context, id int64) (*domain.Question, error)
	deleteQuestionFn func(ctx context.Context, id, callerID int64) error
	setBookmarkFn    func(ctx context.Context, userID, questionID int64, bookmarked bool) error
	createAnswerFn   func(ctx context.Context, questionID, userID int64, content string) (*domain.Answer, error)
	getAnswerFn      func(ctx context.Context, id int64) (*domain.Answer, error)
	deleteAnswerFn   func(ctx context.Context, id, callerID int64) error
	commentQFn       func(ctx context.Context, questionID, userID int64, content string) (*domain.Comment, error)
	commentAFn       func(ctx context.Context, answerID, userID int64, content string) (*domain.Comment, error)
	getCommentFn     func(ctx context.Context, id int64) (*domain.Comment, error)
	rateFn           func(ctx context.Context, raterID int64, kind domain.TargetKind, targetID int64, rawValue int) (*domain.RateResult, error)
	acceptFn         func(ctx context.Context, answerID, callerID int64) (*domain.AcceptionResult, error)
	unacceptFn       func(ctx context.Context, answerID, callerID int64) (*domain.AcceptionResult, error)
}

func (m *mockAppService) SignUp(ctx context.Context, username, password, nickname string) (*domain.User, string, error) {
	if m.signUpFn != nil {
		return m.signUpFn(ctx, username, password, nickname)
	}
	return nil, "", fmt.Errorf("not implemented")
}

func (m *mockAppService) SignIn(ctx context.Context, username, password string) (*domain.User, string, error) {
	if m.signInFn != nil {
		return m.signInFn(ctx, username, password)
	}
	return nil, "", fmt.Errorf("not implemented")
}

func (m *mockAppService) SignOut(ctx context.Context, token string) error {
	if m.signOutFn != nil {
		return m.signOutFn(ctx, token)
	}
	return nil
}

func (m *mockAppService) Authenticate(ctx context.Context, token string) (int64, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, token)
	}
	// Default: any token belongs to user 1.
	return 1, nil
}

func (m *mockAppService) Me(ctx context.Context, userID int64) (*domain.User, *domain.UserProfile, error) {
	if m.meFn != nil {
		return m.meFn(ctx, userID)
	}
	return nil, nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) CreateQuestion(ctx context.Context, userID int64, title, content string, tags []string) (*domain.Question, error) {
	if m.createQuestionFn != nil {
		return m.createQuestionFn(ctx, userID, title, content, tags)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	if m.getQuestionFn != nil {
		return m.getQuestionFn(ctx, id)
	}
	return nil, domain.ErrQuestionNotFound
}

func (m *mockAppService) DeleteQuestion(ctx context.Context, id, callerID int64) error {
	if m.deleteQuestionFn != nil {
		return m.deleteQuestionFn(ctx, id, callerID)
	}
	return nil
}

func (m *mockAppService) SetBookmark(ctx context.Context, userID, questionID int64, bookmarked bool) error {
	if m.setBookmarkFn != nil {
		return m.setBookmarkFn(ctx, userID, questionID, bookmarked)
	}
	return nil
}

func (m *mockAppService) CreateAnswer(ctx context.Context, questionID, userID int64, content string) (*domain.Answer, error) {
	if m.createAnswerFn != nil {
		return m.createAnswerFn(ctx, questionID, userID, content)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) GetAnswer(ctx context.Context, id int64) (*domain.Answer, error) {
	if m.getAnswerFn != nil {
		return m.getAnswerFn(ctx, id)
	}
	return nil, domain.ErrAnswerNotFound
}

func (m *mockAppService) DeleteAnswer(ctx context.Context, id, callerID int64) error {
	if m.deleteAnswerFn != nil {
		return m.deleteAnswerFn(ctx, id, callerID)
	}
	return nil
}

func (m *mockAppService) CommentOnQuestion(ctx context.Context, questionID, userID int64, content string) (*domain.Comment, error) {
	if m.commentQFn != nil {
		return m.commentQFn(ctx, questionID, userID, content)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) CommentOnAnswer(ctx context.Context, answerID, userID int64, content string) (*domain.Comment, error) {
	if m.commentAFn != nil {
		return m.commentAFn(ctx, answerID, userID, content)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) GetComment(ctx context.Context, id int64) (*domain.Comment, error) {
	if m.getCommentFn != nil {
		return m.getCommentFn(ctx, id)
	}
	return nil, domain.ErrCommentNotFound
}

func (m *mockAppService) Rate(ctx context.Context, raterID int64, kind domain.TargetKind, targetID int64, rawValue int) (*domain.RateResult, error) {
	if m.rateFn != nil {
		return m.rateFn(ctx, raterID, kind, targetID, rawValue)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) AcceptAnswer(ctx context.Context, answerID, callerID int64) (*domain.AcceptionResult, error) {
	if m.acceptFn != nil {
		return m.acceptFn(ctx, answerID, callerID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) UnacceptAnswer(ctx context.Context, answerID, callerID int64) (*domain.AcceptionResult, error) {
	if m.unacceptFn != nil {
		return m.unacceptFn(ctx, answerID, callerID)
	}
	return nil, fmt.Errorf("not implemented")
}

type healthyPinger struct{ err error }

func (p healthyPinger) Ping(context.Context) error { return p.err }

// --- Test helpers ---

func newTestServer(t *testing.T, app domain.AppService) *Server {
	t.Helper()

	cfg := &config.Config{AppEnv: "test", Port: "0"}
	return NewServer(cfg, app, healthyPinger{}, healthyPinger{})
}

func doRequest(t *testing.T, srv *Server, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer test-token")
	}

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

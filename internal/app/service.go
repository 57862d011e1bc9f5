// Package app is the application layer. Service is the only component that
// references multiple repositories; it orchestrates all use cases and is what
// the HTTP handlers talk to.
package app

import (
	"context"

	"github.com/wafflestudio18-5/team4-server/internal/crypto"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
)

var _ domain.AppService = (*Service)(nil)

// Service orchestrates accounts, sessions, content, and the rating and
// acceptance operations.
type Service struct {
	users     domain.UserRepository
	questions domain.QuestionRepository
	answers   domain.AnswerRepository
	comments  domain.CommentRepository
	ratings   domain.RatingRepository
	sessions  domain.SessionRepository
	hasher    crypto.Hasher
}

func NewService(
	users domain.UserRepository,
	questions domain.QuestionRepository,
	answers domain.AnswerRepository,
	comments domain.CommentRepository,
	ratings domain.RatingRepository,
	sessions domain.SessionRepository,
	hasher crypto.Hasher,
) *Service {
	return &Service{
		users:     users,
		questions: questions,
		answers:   answers,
		comments:  comments,
		ratings:   ratings,
		sessions:  sessions,
		hasher:    hasher,
	}
}

// --- Accounts and sessions ---

// SignUp creates an account and opens a session for it.
func (s *Service) SignUp(ctx context.Context, username, password, nickname string) (*domain.User, string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Create(ctx, username, hash, nickname)
	if err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignIn verifies credentials and opens a session. An unknown username and a
// wrong password both come back as ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignOut revokes the session token.
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a bearer token to a user id.
func (s *Service) Authenticate(ctx context.Context, token string) (int64, error) {
	return s.sessions.UserID(ctx, token)
}

// Me returns the caller's account and profile.
func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, *domain.UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

// --- Content ---

func (s *Service) CreateQuestion(ctx context.Context, userID int64, title, content string, tags []string) (*domain.Question, error) {
	return s.questions.Create(ctx, userID, title, content, tags)
}

func (s *Service) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	return s.questions.GetByID(ctx, id)
}

func (s *Service) DeleteQuestion(ctx context.Context, id, callerID int64) error {
	return s.questions.SoftDelete(ctx, id, callerID)
}

func (s *Service) SetBookmark(ctx context.Context, userID, questionID int64, bookmarked bool) error {
	return s.questions.SetBookmark(ctx, userID, questionID, bookmarked)
}

func (s *Service) CreateAnswer(ctx context.Context, questionID, userID int64, content string) (*domain.Answer, error) {
	return s.answers.Create(ctx, questionID, userID, content)
}

func (s *Service) GetAnswer(ctx context.Context, id int64) (*domain.Answer, error) {
	return s.answers.GetByID(ctx, id)
}

func (s *Service) DeleteAnswer(ctx context.Context, id, callerID int64) error {
	return s.answers.SoftDelete(ctx, id, callerID)
}

func (s *Service) CommentOnQuestion(ctx context.Context, questionID, userID int64, content string) (*domain.Comment, error) {
	return s.comments.CreateOnQuestion(ctx, questionID, userID, content)
}

func (s *Service) CommentOnAnswer(ctx context.Context, answerID, userID int64, content string) (*domain.Comment, error) {
	return s.comments.CreateOnAnswer(ctx, answerID, userID, content)
}

func (s *Service) GetComment(ctx context.Context, id int64) (*domain.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

// --- Rating and acceptance ---

// Rate applies a rating to a target. The raw value comes straight from the
// request body; anything outside {-1, 0, 1} is rejected here.
func (s *Service) Rate(ctx context.Context, raterID int64, kind domain.TargetKind, targetID int64, rawValue int) (*domain.RateResult, error) {
	rating, err := domain.ParseRating(rawValue)
	if err != nil {
		return nil, err
	}
	return s.ratings.Rate(ctx, raterID, kind, targetID, rating)
}

func (s *Service) AcceptAnswer(ctx context.Context, answerID, callerID int64) (*domain.AcceptionResult, error) {
	return s.answers.Accept(ctx, answerID, callerID)
}

func (s *Service) UnacceptAnswer(ctx context.Context, answerID, callerID int64) (*domain.AcceptionResult, error) {
	return s.answers.Unaccept(ctx, answerID, callerID)
}

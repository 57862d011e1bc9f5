package domain

import "context"

// AppService is the application layer surface the HTTP handlers depend on.
type AppService interface {
	SignUp(ctx context.Context, username, password, nickname string) (*User, string, error)
	SignIn(ctx context.Context, username, password string) (*User, string, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (int64, error)
	Me(ctx context.Context, userID int64) (*User, *UserProfile, error)

	CreateQuestion(ctx context.Context, userID int64, title, content string, tags []string) (*Question, error)
	GetQuestion(ctx context.Context, id int64) (*Question, error)
	DeleteQuestion(ctx context.Context, id, callerID int64) error
	SetBookmark(ctx context.Context, userID, questionID int64, bookmarked bool) error

	CreateAnswer(ctx context.Context, questionID, userID int64, content string) (*Answer, error)
	GetAnswer(ctx context.Context, id int64) (*Answer, error)
	DeleteAnswer(ctx context.Context, id, callerID int64) error

	CommentOnQuestion(ctx context.Context, questionID, userID int64, content string) (*Comment, error)
	CommentOnAnswer(ctx context.Context, answerID, userID int64, content string) (*Comment, error)
	GetComment(ctx context.Context, id int64) (*Comment, error)

	Rate(ctx context.Context, raterID int64, kind TargetKind, targetID int64, rawValue int) (*RateResult, error)
	AcceptAnswer(ctx context.Context, answerID, callerID int64) (*AcceptionResult, error)
	UnacceptAnswer(ctx context.Context, answerID, callerID int64) (*AcceptionResult, error)
}

package domain

import "context"

// UserRepository persists accounts and profiles.
type UserRepository interface {
	Create(ctx context.Context, username, passwordHash, nickname string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetProfile(ctx context.Context, userID int64) (*UserProfile, error)
}

// QuestionRepository persists questions. Create attaches tags and applies
// the tagged-question reputation bonus in the same transaction.
type QuestionRepository interface {
	Create(ctx context.Context, userID int64, title, content string, tags []string) (*Question, error)
	GetByID(ctx context.Context, id int64) (*Question, error)
	SoftDelete(ctx context.Context, id, callerID int64) error
	SetBookmark(ctx context.Context, userID, questionID int64, bookmarked bool) error
}

// AnswerRepository persists answers and owns the acceptance transitions.
// Accept and Unaccept run the whole transition (flag pair plus reputation
// deltas) as one transaction with the question row locked.
type AnswerRepository interface {
	Create(ctx context.Context, questionID, userID int64, content string) (*Answer, error)
	GetByID(ctx context.Context, id int64) (*Answer, error)
	SoftDelete(ctx context.Context, id, callerID int64) error
	Accept(ctx context.Context, answerID, callerID int64) (*AcceptionResult, error)
	Unaccept(ctx context.Context, answerID, callerID int64) (*AcceptionResult, error)
}

// CommentRepository persists comments on questions and answers.
type CommentRepository interface {
	CreateOnQuestion(ctx context.Context, questionID, userID int64, content string) (*Comment, error)
	CreateOnAnswer(ctx context.Context, answerID, userID int64, content string) (*Comment, error)
	GetByID(ctx context.Context, id int64) (*Comment, error)
}

// RatingRepository runs the rate operation: one transaction that locks the
// target row, upserts the (rater, target) ledger entry, and moves the vote
// total by the delta. One implementation serves all three target kinds.
type RatingRepository interface {
	Rate(ctx context.Context, raterID int64, kind TargetKind, targetID int64, value Rating) (*RateResult, error)
}

// SessionRepository issues and resolves bearer tokens.
type SessionRepository interface {
	Create(ctx context.Context, userID int64) (string, error)
	UserID(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

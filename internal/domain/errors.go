package domain

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrCommentNotFound  = errors.New("comment not found")

	ErrInvalidRating = errors.New("rating must be one of -1, 0, 1")
	ErrSelfRating    = errors.New("cannot rate your own post")

	ErrNotQuestionOwner = errors.New("only the question owner may change acceptance")
	ErrAlreadyAccepted  = errors.New("the question has already accepted an answer")
	ErrNotAccepted      = errors.New("the answer is not accepted")

	ErrNotOwner       = errors.New("not the owner of this post")
	ErrAnswerAccepted = errors.New("an accepted answer cannot be deleted")

	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

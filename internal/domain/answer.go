package domain

import "time"

// Answer belongs to exactly one question. At most one active answer per
// question has IsAccepted set.
type Answer struct {
	ID         int64
	QuestionID int64
	UserID     int64
	Content    string
	Vote       int
	IsAccepted bool
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Comment is attached to either a question or an answer, never both.
type Comment struct {
	ID         int64
	UserID     int64
	QuestionID *int64
	AnswerID   *int64
	Content    string
	Vote       int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

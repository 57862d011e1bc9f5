package domain

import "time"

// Question is a top-level post. Vote is the denormalized sum of the rating
// ledger entries pointing at it; HasAccepted mirrors the existence of an
// accepted answer and is only mutated together with Answer.IsAccepted.
type Question struct {
	ID          int64
	UserID      int64
	Title       string
	Content     string
	Vote        int
	ViewCount   int
	HasAccepted bool
	IsActive    bool
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tag is a label attached to questions at creation time.
type Tag struct {
	ID   int64
	Name string
}

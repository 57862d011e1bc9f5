package domain

import "time"

// Rating is a single user's signed contribution to a target's vote count.
type Rating int

const (
	RatingDown    Rating = -1
	RatingNeutral Rating = 0
	RatingUp      Rating = 1
)

// ParseRating validates a raw rating value from a request body.
func ParseRating(v int) (Rating, error) {
	switch Rating(v) {
	case RatingDown, RatingNeutral, RatingUp:
		return Rating(v), nil
	default:
		return RatingNeutral, ErrInvalidRating
	}
}

// TargetKind identifies which kind of post a rating points at.
type TargetKind string

const (
	KindQuestion TargetKind = "question"
	KindAnswer   TargetKind = "answer"
	KindComment  TargetKind = "comment"
)

// RatingEntry is one row of the rating ledger: the single rating a user
// holds against a target. There is at most one entry per (user, target)
// pair; it is created lazily with a neutral rating and upserted afterwards,
// never deleted. Removing a rating means setting it back to neutral.
type RatingEntry struct {
	UserID    int64
	Kind      TargetKind
	TargetID  int64
	Rating    Rating
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RateResult is what a successful Rate call reports back.
type RateResult struct {
	UserID   int64
	TargetID int64
	Vote     int
	Rating   Rating
}

// Votable is the slice of a post the vote aggregator needs. Question,
// Answer, and Comment implement it, as do the row adapters in the storage
// layer, so one rate operation serves every target kind.
type Votable interface {
	Owner() int64
	VoteTotal() int
	AddVote(delta int)
}

func (q *Question) Owner() int64      { return q.UserID }
func (q *Question) VoteTotal() int    { return q.Vote }
func (q *Question) AddVote(delta int) { q.Vote += delta }

func (a *Answer) Owner() int64      { return a.UserID }
func (a *Answer) VoteTotal() int    { return a.Vote }
func (a *Answer) AddVote(delta int) { a.Vote += delta }

func (c *Comment) Owner() int64      { return c.UserID }
func (c *Comment) VoteTotal() int    { return c.Vote }
func (c *Comment) AddVote(delta int) { c.Vote += delta }

// ApplyRating sets the ledger entry to newRating and moves the target's vote
// total by the difference. The request value is always the new authoritative
// rating; resubmitting the same value is a zero-delta no-op, and a neutral
// rating clears a previous one. Self-rating is rejected for every target
// kind. The caller must persist both mutations in one transaction.
func ApplyRating(target Votable, entry *RatingEntry, newRating Rating) (*RateResult, error) {
	if entry.UserID == target.Owner() {
		return nil, ErrSelfRating
	}

	delta := int(newRating) - int(entry.Rating)
	target.AddVote(delta)
	entry.Rating = newRating

	return &RateResult{
		UserID:   entry.UserID,
		TargetID: entry.TargetID,
		Vote:     target.VoteTotal(),
		Rating:   newRating,
	}, nil
}

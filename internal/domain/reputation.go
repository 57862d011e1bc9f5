package domain

// Reputation deltas for the named events that may mutate a profile's
// reputation. These are the only ways reputation changes; every delta is
// applied in the same transaction as its triggering event.
const (
	RepAnswerAccepted        = 15 // answer author, on accept
	RepOwnQuestionAnswered   = 2  // question author, on accept
	RepTaggedQuestionCreated = 40 // question author, on creating a question with at least one tag
)

// ReputationEvent is a single additive adjustment to one user's reputation.
type ReputationEvent struct {
	UserID int64
	Delta  int
}

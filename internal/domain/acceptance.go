package domain

// AcceptionResult reports the acceptance flag pair after a transition.
type AcceptionResult struct {
	QuestionID  int64
	HasAccepted bool
	AnswerID    int64
	IsAccepted  bool
}

// Accept transitions a question from NoAccepted to HasAccepted(answer).
// Only the question owner may accept, and a question holds at most one
// accepted answer, so accepting while another acceptance stands is an error
// rather than a silent replacement. Both flags are flipped together and the
// returned reputation events must be applied in the same transaction.
func Accept(q *Question, a *Answer, callerID int64) ([]ReputationEvent, error) {
	if callerID != q.UserID {
		return nil, ErrNotQuestionOwner
	}
	if q.HasAccepted {
		return nil, ErrAlreadyAccepted
	}

	a.IsAccepted = true
	q.HasAccepted = true

	return []ReputationEvent{
		{UserID: a.UserID, Delta: RepAnswerAccepted},
		{UserID: q.UserID, Delta: RepOwnQuestionAnswered},
	}, nil
}

// Unaccept reverses Accept for the currently-accepted answer. Unaccepting an
// answer that is not the accepted one is an error, not a no-op; the inverse
// reputation events bring both profiles back to their pre-accept values.
func Unaccept(q *Question, a *Answer, callerID int64) ([]ReputationEvent, error) {
	if callerID != q.UserID {
		return nil, ErrNotQuestionOwner
	}
	if !a.IsAccepted {
		return nil, ErrNotAccepted
	}

	a.IsAccepted = false
	q.HasAccepted = false

	return []ReputationEvent{
		{UserID: a.UserID, Delta: -RepAnswerAccepted},
		{UserID: q.UserID, Delta: -RepOwnQuestionAnswered},
	}, nil
}

// Acception snapshots the current flag pair for a response body.
func Acception(q *Question, a *Answer) *AcceptionResult {
	return &AcceptionResult{
		QuestionID:  q.ID,
		HasAccepted: q.HasAccepted,
		AnswerID:    a.ID,
		IsAccepted:  a.IsAccepted,
	}
}

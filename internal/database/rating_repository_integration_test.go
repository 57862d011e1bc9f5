package database

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
)

func TestRate_FirstUpvoteThenFlip(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRatingRepo(pool)
	ctx := context.Background()

	owner := createTestUser(t, pool, "owner")
	rater := createTestUser(t, pool, "rater")
	question := createTestQuestion(t, pool, owner.ID)
	answer := createTestAnswer(t, pool, question.ID, owner.ID)

	result, err := repo.Rate(ctx, rater.ID, domain.KindAnswer, answer.ID, domain.RatingUp)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Vote)
	assert.Equal(t, domain.RatingUp, result.Rating)
	assert.Equal(t, rater.ID, result.UserID)
	assert.Equal(t, answer.ID, result.TargetID)

	// Flip to -1: delta of -2, not a stacked -1.
	result, err = repo.Rate(ctx, rater.ID, domain.KindAnswer, answer.ID, domain.RatingDown)
	require.NoError(t, err)
	assert.Equal(t, -1, result.Vote)

	stored, err := NewAnswerRepo(pool).GetByID(ctx, answer.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, stored.Vote)
	assert.Equal(t, stored.Vote, ledgerSum(t, pool, ratingTargets[domain.KindAnswer], answer.ID))
}

func TestRate_AllTargetKinds(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRatingRepo(pool)
	ctx := context.Background()

	owner := createTestUser(t, pool, "owner")
	rater := createTestUser(t, pool, "rater")
	question := createTestQuestion(t, pool, owner.ID)
	answer := createTestAnswer(t, pool, question.ID, owner.ID)
	comment, err := NewCommentRepo(pool).CreateOnAnswer(ctx, answer.ID, owner.ID, "nice")
	require.NoError(t, err)

	for _, tc := range []struct {
		kind     domain.TargetKind
		targetID int64
	}{
		{domain.KindQuestion, question.ID},
		{domain.KindAnswer, answer.ID},
		{domain.KindComment, comment.ID},
	} {
		result, err := repo.Rate(ctx, rater.ID, tc.kind, tc.targetID, domain.RatingUp)
		require.NoError(t, err, "kind %s", tc.kind)
		assert.Equal(t, 1, result.Vote, "kind %s", tc.kind)
	}
}

func TestRate_SelfRatingForbidden(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRatingRepo(pool)
	ctx := context.Background()

	owner := createTestUser(t, pool, "owner")
	question := createTestQuestion(t, pool, owner.ID)

	_, err := repo.Rate(ctx, owner.ID, domain.KindQuestion, question.ID, domain.RatingUp)
	assert.ErrorIs(t, err, domain.ErrSelfRating)

	// No ledger entry is created for a rejected rating.
	assert.Equal(t, 0, ledgerSum(t, pool, ratingTargets[domain.KindQuestion], question.ID))
}

func TestRate_InactiveTarget(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRatingRepo(pool)
	ctx := context.Background()

	owner := createTestUser(t, pool, "owner")
	rater := createTestUser(t, pool, "rater")
	question := createTestQuestion(t, pool, owner.ID)
	answer := createTestAnswer(t, pool, question.ID, owner.ID)

	require.NoError(t, NewAnswerRepo(pool).SoftDelete(ctx, answer.ID, owner.ID))

	_, err := repo.Rate(ctx, rater.ID, domain.KindAnswer, answer.ID, domain.RatingUp)
	assert.ErrorIs(t, err, domain.ErrAnswerNotFound)
	assert.Equal(t, 0, ledgerSum(t, pool, ratingTargets[domain.KindAnswer], answer.ID))
}

func TestRate_MissingTarget(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRatingRepo(pool)

	rater := createTestUser(t, pool, "rater")

	_, err := repo.Rate(context.Background(), rater.ID, domain.KindQuestion, 424242, domain.RatingUp)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

// Concurrent raters of the same target must serialize their delta
// applications; the vote total must equal the ledger sum afterwards.
func TestRate_ConcurrentRaters(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRatingRepo(pool)
	ctx := context.Background()

	owner := createTestUser(t, pool, "owner")
	question := createTestQuestion(t, pool, owner.ID)

	const raters = 8
	users := make([]*domain.User, raters)
	for i := range users {
		users[i] = createTestUser(t, pool, "rater"+string(rune('a'+i)))
	}

	var wg sync.WaitGroup
	for i, user := range users {
		wg.Add(1)
		rating := domain.RatingUp
		if i%2 == 1 {
			rating = domain.RatingDown
		}
		go func(userID int64, rating domain.Rating) {
			defer wg.Done()
			_, err := repo.Rate(ctx, userID, domain.KindQuestion, question.ID, rating)
			assert.NoError(t, err)
		}(user.ID, rating)
	}
	wg.Wait()

	stored, err := NewQuestionRepo(pool).GetByID(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Vote)
	assert.Equal(t, stored.Vote, ledgerSum(t, pool, ratingTargets[domain.KindQuestion], question.ID))
}

package app

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wafflestudio18-5/team4-server/internal/crypto"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// --- In-memory fakes ---

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, username, passwordHash, _ string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return nil, domain.ErrUsernameTaken
		}
	}
	f.nextID++
	user := &domain.User{ID: f.nextID, Username: username, PasswordHash: passwordHash}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetProfile(_ context.Context, userID int64) (*domain.UserProfile, error) {
	if _, ok := f.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.UserProfile{UserID: userID}, nil
}

type fakeSessionRepo struct {
	nextID int
	tokens map[string]int64
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{tokens: make(map[string]int64)}
}

func (f *fakeSessionRepo) Create(_ context.Context, userID int64) (string, error) {
	f.nextID++
	token := "token-" + strconv.Itoa(f.nextID)
	f.tokens[token] = userID
	return token, nil
}

func (f *fakeSessionRepo) UserID(_ context.Context, token string) (int64, error) {
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return 0, domain.ErrInvalidToken
}

func (f *fakeSessionRepo) Delete(_ context.Context, token string) error {
	if _, ok := f.tokens[token]; !ok {
		return domain.ErrInvalidToken
	}
	delete(f.tokens, token)
	return nil
}

type fakeRatingRepo struct {
	lastKind   domain.TargetKind
	lastValue  domain.Rating
	lastRater  int64
	lastTarget int64
}

func (f *fakeRatingRepo) Rate(_ context.Context, raterID int64, kind domain.TargetKind, targetID int64, value domain.Rating) (*domain.RateResult, error) {
	f.lastRater, f.lastKind, f.lastTarget, f.lastValue = raterID, kind, targetID, value
	return &domain.RateResult{UserID: raterID, TargetID: targetID, Rating: value, Vote: int(value)}, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *fakeSessionRepo, *fakeRatingRepo) {
	t.Helper()

	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	ratings := &fakeRatingRepo{}
	hasher := crypto.NewBcryptHasherWithCost(bcrypt.MinCost)
	svc := NewService(users, nil, nil, nil, ratings, sessions, hasher)
	return svc, users, sessions, ratings
}

// --- Tests ---

func TestSignUp_OpensSession(t *testing.T) {
	svc, users, sessions, _ := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.SignUp(ctx, "alice", "s3cret", "Alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret", users.users[user.ID].PasswordHash)

	userID, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Len(t, sessions.tokens, 1)
}

func TestSignIn(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	created, _, err := svc.SignUp(ctx, "alice", "s3cret", "Alice")
	require.NoError(t, err)

	user, token, err := svc.SignIn(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestSignIn_BadCredentials(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "alice", "s3cret", "Alice")
	require.NoError(t, err)

	_, _, err = svc.SignIn(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// An unknown username gives the same error as a wrong password.
	_, _, err = svc.SignIn(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignOut(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, token, err := svc.SignUp(ctx, "alice", "s3cret", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, token))

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRate_ParsesRawValue(t *testing.T) {
	svc, _, _, ratings := newTestService(t)
	ctx := context.Background()

	result, err := svc.Rate(ctx, 1, domain.KindAnswer, 7, -1)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingDown, result.Rating)
	assert.Equal(t, domain.KindAnswer, ratings.lastKind)
	assert.Equal(t, int64(7), ratings.lastTarget)
}

func TestRate_RejectsOutOfRangeValue(t *testing.T) {
	svc, _, _, ratings := newTestService(t)

	for _, raw := range []int{-2, 2, 5} {
		_, err := svc.Rate(context.Background(), 1, domain.KindQuestion, 7, raw)
		assert.ErrorIs(t, err, domain.ErrInvalidRating, "raw value %d", raw)
	}
	// The repository was never reached.
	assert.Zero(t, ratings.lastRater)
}

func TestMe(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	created, _, err := svc.SignUp(ctx, "alice", "s3cret", "Alice")
	require.NoError(t, err)

	user, profile, err := svc.Me(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, created.ID, profile.UserID)

	_, _, err = svc.Me(ctx, 424242)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

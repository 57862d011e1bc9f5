package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
)

func TestCreateUser(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepo(pool)
	ctx := context.Background()

	user, err := repo.Create(ctx, "alice", "hash", "Alice")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)

	profile, err := repo.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Nickname)
	assert.Equal(t, 0, profile.Reputation)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepo(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", "hash", "Alice")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "alice", "otherhash", "Other")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	// The failed insert must not leave an orphaned profile behind.
	var profiles int
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_profiles`).Scan(&profiles)
	require.NoError(t, err)
	assert.Equal(t, 1, profiles)
}

func TestGetUser(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepo(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", "hash", "Alice")
	require.NoError(t, err)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Username, byID.Username)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = repo.GetByID(ctx, 424242)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

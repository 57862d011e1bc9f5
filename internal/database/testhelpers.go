package database

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
)

// setupTestDB starts a throwaway PostgreSQL container, runs migrations, and
// returns a connected pool. Skipped with -short.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithDatabase("wafflow_test"),
		postgres.WithUsername("wafflow"),
		postgres.WithPassword("wafflow"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := Connect(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, RunMigrationsWithLock(ctx, pool))
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool, username string) *domain.User {
	t.Helper()

	user, err := NewUserRepo(pool).Create(context.Background(), username, "hash:"+username, "nick_"+username)
	require.NoError(t, err)
	return user
}

func createTestQuestion(t *testing.T, pool *pgxpool.Pool, userID int64, tags ...string) *domain.Question {
	t.Helper()

	question, err := NewQuestionRepo(pool).Create(context.Background(), userID, "title", "content", tags)
	require.NoError(t, err)
	return question
}

func createTestAnswer(t *testing.T, pool *pgxpool.Pool, questionID, userID int64) *domain.Answer {
	t.Helper()

	answer, err := NewAnswerRepo(pool).Create(context.Background(), questionID, userID, "answer content")
	require.NoError(t, err)
	return answer
}

func getReputation(t *testing.T, pool *pgxpool.Pool, userID int64) int {
	t.Helper()

	profile, err := NewUserRepo(pool).GetProfile(context.Background(), userID)
	require.NoError(t, err)
	return profile.Reputation
}

func ledgerSum(t *testing.T, pool *pgxpool.Pool, target ratingTarget, targetID int64) int {
	t.Helper()

	var sum int
	err := pool.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(rating), 0) FROM `+target.ledger+` WHERE `+target.fkColumn+` = $1`,
		targetID,
	).Scan(&sum)
	require.NoError(t, err)
	return sum
}

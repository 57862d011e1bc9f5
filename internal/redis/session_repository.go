package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
)

// SessionRepo issues opaque bearer tokens backed by Redis keys with a TTL.
// Each token maps to the owning user id; the TTL slides on every lookup so
// active sessions stay alive.
type SessionRepo struct {
	rdb   *goredis.Client
	clock clockwork.Clock
	ttl   time.Duration
}

func NewSessionRepo(rdb *goredis.Client, clock clockwork.Clock, ttl time.Duration) *SessionRepo {
	return &SessionRepo{rdb: rdb, clock: clock, ttl: ttl}
}

func (s *SessionRepo) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	sk := sessionKey(token)

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, sk, strconv.FormatInt(userID, 10), 0)
	pipe.ExpireAt(ctx, sk, s.clock.Now().Add(s.ttl))
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (s *SessionRepo) UserID(ctx context.Context, token string) (int64, error) {
	sk := sessionKey(token)

	val, err := s.rdb.Get(ctx, sk).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, domain.ErrInvalidToken
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value %q: %w", val, err)
	}

	// Slide the expiry; a best-effort refresh, the lookup already succeeded.
	s.rdb.ExpireAt(ctx, sk, s.clock.Now().Add(s.ttl))

	return userID, nil
}

func (s *SessionRepo) Delete(ctx context.Context, token string) error {
	n, err := s.rdb.Del(ctx, sessionKey(token)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return domain.ErrInvalidToken
	}
	return nil
}

func sessionKey(token string) string {
	return "session:" + token
}

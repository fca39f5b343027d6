package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/muhammadheryan/marketplace/constant"
	cerr "github.com/muhammadheryan/marketplace/utils/errors"
	goredis "github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix     = "session:"
	userSessionKeyPrefix = "user_sessions:"
)

var ErrSessionNotFound = errors.New("session not found")

// Repository keeps the server-side registry of issued bearer tokens, keyed by token id,
// with a per-user index so every token of a user can be revoked at once.
type Repository interface {
	SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uint64, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteUserSessions(ctx context.Context, userID uint64) error
}

type redis struct {
	client *goredis.Client
}

// NewRepository returns a Redis Repository implementation
func NewRepository(client *goredis.Client) Repository {
	return &redis{client: client}
}

func userSessionsKey(userID uint64) string {
	return userSessionKeyPrefix + strconv.FormatUint(userID, 10)
}

// SetSession stores a session with userID and TTL and adds it to the user's index.
// The index lives as long as the newest session.
func (r *redis) SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error {
	indexKey := userSessionsKey(userID)
	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, sessionKeyPrefix+sessionID, strconv.FormatUint(userID, 10), ttl)
		pipe.SAdd(ctx, indexKey, sessionID)
		pipe.Expire(ctx, indexKey, ttl)
		return nil
	})
	return err
}

// GetSession retrieves userID from session. A missing or expired key yields ErrSessionNotFound.
func (r *redis) GetSession(ctx context.Context, sessionID string) (uint64, error) {
	userID, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Uint64()
	if errors.Is(err, goredis.Nil) {
		return 0, ErrSessionNotFound
	}
	return userID, err
}

// DeleteSession removes a single session. Its id may linger in the user index until
// the index expires; deleting a missing key is harmless.
func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// DeleteUserSessions revokes every session registered for the user.
func (r *redis) DeleteUserSessions(ctx context.Context, userID uint64) error {
	indexKey := userSessionsKey(userID)
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKeyPrefix+id)
	}
	keys = append(keys, indexKey)
	return r.client.Del(ctx, keys...).Err()
}

// AsCustomError maps a failed session store call to the outcome reported to clients.
// Every Redis failure other than a missing key means the store cannot be reached.
func AsCustomError(err error) cerr.CustomError {
	return cerr.SetCustomError(constant.ErrServiceUnavailable).WithCause(err)
}

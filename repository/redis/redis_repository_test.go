package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/muhammadheryan/marketplace/constant"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRepository(client), mr
}

func TestSessionLifecycle(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSession(ctx, "jti-1", 42, time.Hour))
	assert.True(t, mr.Exists("session:jti-1"))
	assert.True(t, mr.Exists("user_sessions:42"))
	assert.Equal(t, time.Hour, mr.TTL("user_sessions:42"))

	userID, err := repo.GetSession(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)

	require.NoError(t, repo.DeleteSession(ctx, "jti-1"))
	_, err = repo.GetSession(ctx, "jti-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionExpires(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSession(ctx, "jti-2", 7, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := repo.GetSession(ctx, "jti-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteUserSessions(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSession(ctx, "jti-a", 5, time.Hour))
	require.NoError(t, repo.SetSession(ctx, "jti-b", 5, time.Hour))
	require.NoError(t, repo.SetSession(ctx, "jti-c", 6, time.Hour))

	require.NoError(t, repo.DeleteUserSessions(ctx, 5))

	for _, id := range []string{"jti-a", "jti-b"} {
		_, err := repo.GetSession(ctx, id)
		assert.ErrorIs(t, err, ErrSessionNotFound, id)
	}
	assert.False(t, mr.Exists("user_sessions:5"))

	userID, err := repo.GetSession(ctx, "jti-c")
	require.NoError(t, err)
	assert.Equal(t, uint64(6), userID)

	// nothing registered is not an error
	assert.NoError(t, repo.DeleteUserSessions(ctx, 99))
}

func TestAsCustomError(t *testing.T) {
	repo, mr := newTestRepository(t)
	mr.Close()

	err := repo.SetSession(context.Background(), "jti-1", 1, time.Hour)
	require.Error(t, err)

	ce := AsCustomError(err)
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrServiceUnavailable], ce.ErrorCode())
	assert.ErrorIs(t, ce, err)
}

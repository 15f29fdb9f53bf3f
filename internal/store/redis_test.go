package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client)
}

func TestRedisStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	kv := newTestRedisStore(t)

	require.NoError(t, kv.Put(ctx, "teacher-1", EntityQuestions, "q1", []byte(`{"id":"q1"}`)))

	value, err := kv.Get(ctx, "teacher-1", EntityQuestions, "q1")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"q1"}`, string(value))

	require.NoError(t, kv.Delete(ctx, "teacher-1", EntityQuestions, "q1"))

	_, err = kv.Get(ctx, "teacher-1", EntityQuestions, "q1")
	require.ErrorIs(t, err, ErrNotFound)

	err = kv.Delete(ctx, "teacher-1", EntityQuestions, "q1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreListIsScopedToOwnerAndType(t *testing.T) {
	ctx := context.Background()
	kv := newTestRedisStore(t)

	require.NoError(t, kv.Put(ctx, "teacher-1", EntityQuestions, "q1", []byte(`{"id":"q1"}`)))
	require.NoError(t, kv.Put(ctx, "teacher-1", EntityQuestions, "q2", []byte(`{"id":"q2"}`)))
	require.NoError(t, kv.Put(ctx, "teacher-1", EntityExams, "e1", []byte(`{"id":"e1"}`)))
	require.NoError(t, kv.Put(ctx, "teacher-2", EntityQuestions, "q3", []byte(`{"id":"q3"}`)))

	payloads, err := kv.List(ctx, "teacher-1", EntityQuestions)
	require.NoError(t, err)
	require.Len(t, payloads, 2)

	payloads, err = kv.List(ctx, "teacher-2", EntityExams)
	require.NoError(t, err)
	require.Empty(t, payloads)
}

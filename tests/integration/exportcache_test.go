package integration

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vannarellifabrizio-hash/ses-app/internal/exportcache"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	ctx := context.Background()
	err = client.Ping(ctx).Err()
	require.NoError(t, err)

	return client, mr
}

func TestExportCache_RoundTrip(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := exportcache.NewRepo(client, time.Minute)
	ctx := context.Background()

	t.Run("miss before put", func(t *testing.T) {
		_, err := repo.Get(ctx, "digest-1")
		assert.Equal(t, exportcache.ErrMiss, err)
	})

	t.Run("put then get", func(t *testing.T) {
		payload := []byte("%PDF-1.3 test payload")
		require.NoError(t, repo.Put(ctx, "digest-1", payload))

		got, err := repo.Get(ctx, "digest-1")
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("digests are independent", func(t *testing.T) {
		_, err := repo.Get(ctx, "digest-2")
		assert.Equal(t, exportcache.ErrMiss, err)
	})
}

func TestExportCache_TTLExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := exportcache.NewRepo(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "digest-ttl", []byte("payload")))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, "digest-ttl")
	assert.Equal(t, exportcache.ErrMiss, err)
}

func TestExportCache_Purge(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := exportcache.NewRepo(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "digest-a", []byte("a")))
	require.NoError(t, repo.Put(ctx, "digest-b", []byte("b")))

	// Keys outside the export namespace survive a purge.
	require.NoError(t, client.Set(ctx, "ses:digest:2024-06-15", "kept", 0).Err())

	require.NoError(t, repo.Purge(ctx))

	_, err := repo.Get(ctx, "digest-a")
	assert.Equal(t, exportcache.ErrMiss, err)
	_, err = repo.Get(ctx, "digest-b")
	assert.Equal(t, exportcache.ErrMiss, err)

	kept, err := client.Get(ctx, "ses:digest:2024-06-15").Result()
	require.NoError(t, err)
	assert.Equal(t, "kept", kept)
}

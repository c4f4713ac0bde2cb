// Package exportcache keeps rendered PDF exports in Redis so repeated
// downloads of an unchanged view don't re-run layout and serialization.
package exportcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	exportKeyPrefix = "ses:export:" // Cached PDF bytes: ses:export:{digest}
	defaultTTL      = 15 * time.Minute
)

// ErrMiss is returned when no export is cached under the digest.
var ErrMiss = errors.New("export cache miss")

// Repo handles Redis operations for cached exports.
type Repo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRepo creates a new Repo. A non-positive ttl falls back to the
// default.
func NewRepo(client *redis.Client, ttl time.Duration) *Repo {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Repo{client: client, ttl: ttl}
}

// Get returns the cached PDF bytes for a digest, or ErrMiss.
func (r *Repo) Get(ctx context.Context, digest string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(digest)).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached export: %w", err)
	}
	return data, nil
}

// Put stores the PDF bytes under the digest with the configured TTL.
func (r *Repo) Put(ctx context.Context, digest string, data []byte) error {
	if err := r.client.Set(ctx, r.key(digest), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache export: %w", err)
	}
	return nil
}

// Purge drops every cached export, for use after bulk data edits.
func (r *Repo) Purge(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, exportKeyPrefix+"*", 0).Iterator()

	pipe := r.client.Pipeline()
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached exports: %w", err)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to purge cached exports: %w", err)
	}
	return nil
}

func (r *Repo) key(digest string) string {
	return exportKeyPrefix + digest
}

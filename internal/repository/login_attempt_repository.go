package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptPrefix = "orari:login:fail:"

// LoginAttemptRepository counts failed logins per key in Redis. A nil client
// turns every call into a no-op.
type LoginAttemptRepository struct {
	client *redis.Client
}

// NewLoginAttemptRepository creates the repository.
func NewLoginAttemptRepository(client *redis.Client) *LoginAttemptRepository {
	return &LoginAttemptRepository{client: client}
}

// LoginAttemptKey builds the counter key for an email and client address.
func LoginAttemptKey(email, ip string) string {
	return strings.ToLower(strings.TrimSpace(email)) + "|" + ip
}

// Failures returns the current failure count and how long until it resets.
func (r *LoginAttemptRepository) Failures(ctx context.Context, key string) (int, time.Duration, error) {
	if r.client == nil {
		return 0, 0, nil
	}
	pipe := r.client.Pipeline()
	get := pipe.Get(ctx, loginAttemptPrefix+key)
	ttl := pipe.TTL(ctx, loginAttemptPrefix+key)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return 0, 0, fmt.Errorf("redis login failures %s: %w", key, err)
	}
	count, err := get.Int()
	if err == redis.Nil {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("parse login failures %s: %w", key, err)
	}
	return count, ttl.Val(), nil
}

// RecordFailure increments the counter, starting the window on the first failure.
func (r *LoginAttemptRepository) RecordFailure(ctx context.Context, key string, window time.Duration) (int, error) {
	if r.client == nil {
		return 0, nil
	}
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, loginAttemptPrefix+key)
	pipe.ExpireNX(ctx, loginAttemptPrefix+key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis record login failure %s: %w", key, err)
	}
	return int(incr.Val()), nil
}

// Reset clears the counter after a successful login.
func (r *LoginAttemptRepository) Reset(ctx context.Context, key string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, loginAttemptPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis reset login failures %s: %w", key, err)
	}
	return nil
}

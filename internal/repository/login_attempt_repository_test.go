package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAttemptKeyNormalizesEmail(t *testing.T) {
	assert.Equal(t, "admin@orari.test|10.0.0.1", LoginAttemptKey("  Admin@Orari.TEST ", "10.0.0.1"))
}

func TestLoginAttemptRepositoryWithoutRedis(t *testing.T) {
	repo := NewLoginAttemptRepository(nil)
	ctx := context.Background()

	count, err := repo.RecordFailure(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, ttl, err := repo.Failures(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, ttl)
	assert.NoError(t, repo.Reset(ctx, "k"))
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	a := Key("nu:14", "1.5")
	assert.Equal(t, a, Key("nu:14", "1.5"))
	assert.NotEqual(t, a, Key("nu:141", ".5"))
	assert.Len(t, a, len("resxsec:")+64)
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "k", 1.5e-38, 0))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1.5e-38, v)

	require.NoError(t, c.Set(ctx, "short", 2, time.Nanosecond))
	time.Sleep(time.Millisecond)
	_, err = c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 2, c.Len())
}

func TestRedisGetSet(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	c := NewRedis(db, time.Second)

	mock.ExpectSet("k", Encode(3.25e-39), time.Minute).SetVal("OK")
	require.NoError(t, c.Set(ctx, "k", 3.25e-39, time.Minute))

	mock.ExpectGet("k").SetVal(string(Encode(3.25e-39)))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 3.25e-39, v)

	mock.ExpectGet("missing").RedisNil()
	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	mock.ExpectGet("short").SetVal("abc")
	_, err = c.Get(ctx, "short")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisBreakerOpensAfterFailures(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	c := NewRedis(db, time.Second)
	down := errors.New("connection refused")

	for i := 0; i < 3; i++ {
		mock.ExpectGet("k").SetErr(down)
		_, err := c.Get(ctx, "k")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrMiss)
	}
	// the breaker is open: no redis call is made
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Error(t, c.Set(ctx, "k", 1, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package redis_test

import (
	"context"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Cotizaciones-api/internal/infrastructure/redis"
)

func newCounter(t *testing.T) (*redis.SequenceCounter, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewSequenceCounter(client), mr
}

func TestSequenceCounterIncrementsPerScope(t *testing.T) {
	c, mr := newCounter(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := c.Next(ctx, "company-a:standard")
		require.NoError(t, err)
		require.Equal(t, want, n)
	}
	n, err := c.Next(ctx, "company-a:catering")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	v, err := mr.Get("quotation:seq:company-a:standard")
	require.NoError(t, err)
	require.Equal(t, "3", v)
}

func TestSequenceCounterConcurrentDistinct(t *testing.T) {
	c, _ := newCounter(t)
	ctx := context.Background()

	const workers = 40
	var (
		mu   sync.Mutex
		seen = make(map[int64]bool, workers)
	)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			n, err := c.Next(ctx, "company-a:standard")
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			seen[n] = true
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Len(t, seen, workers)
	for i := int64(1); i <= workers; i++ {
		require.True(t, seen[i], "falta el consecutivo %d", i)
	}
}

func TestSequenceCounterSeed(t *testing.T) {
	c, _ := newCounter(t)
	ctx := context.Background()

	ok, err := c.Seed(ctx, "company-a:standard", 41)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.Seed(ctx, "company-a:standard", 7)
	require.NoError(t, err)
	require.False(t, ok)

	n, err := c.Next(ctx, "company-a:standard")
	require.NoError(t, err)
	require.Equal(t, int64(42), n)
}

func TestSequenceCounterSeedFromContinuesSeries(t *testing.T) {
	c, mr := newCounter(t)
	ctx := context.Background()

	// llave existente en Redis: gana sobre el valor de la tabla
	require.NoError(t, mr.Set("quotation:seq:company-a:catering", "9"))

	seeded, err := c.SeedFrom(ctx, map[string]int64{
		"company-a:standard": 17,
		"company-a:catering": 3,
	})
	require.NoError(t, err)
	require.Equal(t, 1, seeded)

	n, err := c.Next(ctx, "company-a:standard")
	require.NoError(t, err)
	require.Equal(t, int64(18), n)

	n, err = c.Next(ctx, "company-a:catering")
	require.NoError(t, err)
	require.Equal(t, int64(10), n)

	seeded, err = c.SeedFrom(ctx, nil)
	require.NoError(t, err)
	require.Zero(t, seeded)
}

func TestSequenceCounterRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	c := redis.NewSequenceCounter(client)
	mr.Close()

	_, err = c.Next(context.Background(), "company-a:standard")
	require.Error(t, err)
}

func TestSequenceCounterEmptyScope(t *testing.T) {
	c, _ := newCounter(t)
	_, err := c.Next(context.Background(), "")
	require.Error(t, err)
}

package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caches(t *testing.T) map[string]Cache {
	return map[string]Cache{
		"memory": NewMemoryCache(),
		"disk":   NewDiskCache(filepath.Join(t.TempDir(), "cache")),
	}
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, c := range caches(t) {
		t.Run(name, func(t *testing.T) {
			_, err := c.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrCacheMiss)

			require.NoError(t, c.Set(ctx, "k", []byte("response"), 0))
			got, err := c.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "response", string(got))

			require.NoError(t, c.Set(ctx, "k", []byte("newer"), time.Hour))
			got, err = c.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "newer", string(got))

			require.NoError(t, c.Delete(ctx, "k"))
			_, err = c.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrCacheMiss)
			assert.NoError(t, c.Delete(ctx, "k"))
		})
	}
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	for name, c := range caches(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Millisecond))
			time.Sleep(10 * time.Millisecond)
			_, err := c.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrCacheMiss)
		})
	}
}

func TestCacheClear(t *testing.T) {
	ctx := context.Background()
	for name, c := range caches(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
			require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
			require.NoError(t, c.Clear(ctx))
			_, err := c.Get(ctx, "a")
			assert.ErrorIs(t, err, ErrCacheMiss)
			_, err = c.Get(ctx, "b")
			assert.ErrorIs(t, err, ErrCacheMiss)
		})
	}
}

func TestDiskCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	d := NewDiskCache(t.TempDir())
	require.NoError(t, os.WriteFile(d.file("k"), []byte("{not json"), 0o644))

	_, err := d.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, statErr := os.Stat(d.file("k"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMemoryCacheCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryCache()

	in := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", in, 0))
	in[0] = 'X'

	out, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
	out[0] = 'Y'

	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryCacheSweepsExpired(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryCache()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "short", []byte("1"), time.Minute))
	require.NoError(t, m.Set(ctx, "forever", []byte("2"), 0))
	assert.Equal(t, 2, m.Len())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, m.Len())
	_, err := m.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = m.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryCacheHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMemoryCache()
	assert.ErrorIs(t, m.Set(ctx, "k", []byte("v"), 0), context.Canceled)
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiskCacheClearMissingDir(t *testing.T) {
	d := NewDiskCache(filepath.Join(t.TempDir(), "never-created"))
	assert.NoError(t, d.Clear(context.Background()))
}

func TestKeyGenerator(t *testing.T) {
	kg := NewKeyGenerator()

	k1 := kg.ForPrompt("gemini-1.5-flash", "prompt")
	assert.True(t, strings.HasPrefix(k1, "readme-llm:"))
	assert.Equal(t, k1, kg.ForPrompt("gemini-1.5-flash", "prompt"))
	assert.NotEqual(t, k1, kg.ForPrompt("gemini-1.5-pro", "prompt"))
	assert.NotEqual(t, kg.Generate("ab", "c"), kg.Generate("a", "bc"))
}

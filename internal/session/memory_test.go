package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, got, "unknown session reads as empty")

	require.NoError(t, s.Set(ctx, "abc", "Orissa"))
	got, err = s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Orissa", got)

	// A second session is independent.
	got, err = s.Get(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Set(ctx, "abc", "Kerala"))
	got, err = s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Kerala", got, "later click overwrites")

	require.NoError(t, s.Clear(ctx, "abc"))
	got, err = s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Set(ctx, "shared", "Orissa")
				_, _ = s.Get(ctx, "shared")
			}
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, "Orissa", got)
}

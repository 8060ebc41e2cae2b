package uniqueid

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	g := NewGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := g.Generate()
		require.NoError(t, err)
		assert.True(t, Valid(id), "id %q", id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 40)
}

func TestUnique_SkipsTakenIDs(t *testing.T) {
	g := NewGenerator()
	var tried []string

	id, err := g.Unique(context.Background(), func(_ context.Context, c string) (bool, error) {
		tried = append(tried, c)
		return len(tried) < 3, nil
	})
	require.NoError(t, err)
	assert.Len(t, tried, 3)
	assert.Equal(t, tried[2], id)
}

func TestUnique_Exhausted(t *testing.T) {
	g := NewGenerator()
	calls := 0

	_, err := g.Unique(context.Background(), func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	})
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, MaxAttempts, calls)
}

func TestUnique_ExistsError(t *testing.T) {
	g := NewGenerator()

	_, err := g.Unique(context.Background(), func(context.Context, string) (bool, error) {
		return false, fmt.Errorf("db down")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestUnique_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator().Unique(ctx, func(context.Context, string) (bool, error) {
		t.Fatal("exists must not be called")
		return false, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_SourceExhausted(t *testing.T) {
	g := NewGeneratorWithSource(bytes.NewReader(nil))
	_, err := g.Generate()
	assert.Error(t, err)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("0912345678"))
	assert.False(t, Valid("091234567"))
	assert.False(t, Valid("09123456789"))
	assert.False(t, Valid("09123a5678"))
	assert.False(t, Valid(""))
}

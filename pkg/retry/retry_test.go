package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func fastConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      1.5,
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.NewNop(), "flaky", func() error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	}, fastConfig())

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	boom := errors.New("still down")
	err := Do(context.Background(), logger.NewNop(), "down", func() error {
		calls++
		return boom
	}, fastConfig())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 4, calls)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	calls := 0
	notFound := errors.New("not found")
	err := Do(context.Background(), logger.NewNop(), "lookup", func() error {
		calls++
		return Permanent(notFound)
	}, fastConfig())

	assert.ErrorIs(t, err, notFound)
	assert.Equal(t, 1, calls)
}

func TestDo_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, logger.NewNop(), "cancelled", func() error {
		calls++
		return errors.New("temporary")
	}, fastConfig())

	assert.Error(t, err)
	assert.LessOrEqual(t, calls, 1)
}

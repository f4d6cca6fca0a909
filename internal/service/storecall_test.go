package service

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_RetriesTransientOnce(t *testing.T) {
	t.Parallel()
	sc := newStoreCaller(time.Second)
	calls := 0

	_, err := read(context.Background(), sc, func(context.Context) (int, error) {
		calls++
		return 0, apperrors.Unavailable(errors.New("down"))
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestRead_DoesNotRetryPermanentErrors(t *testing.T) {
	t.Parallel()
	sc := newStoreCaller(time.Second)
	calls := 0

	_, err := read(context.Background(), sc, func(context.Context) (int, error) {
		calls++
		return 0, apperrors.NotFound("missing")
	})

	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, 1, calls)
}

func TestWrite_NeverRetries(t *testing.T) {
	t.Parallel()
	sc := newStoreCaller(time.Second)
	calls := 0

	err := writeErr(context.Background(), sc, func(context.Context) error {
		calls++
		return apperrors.Unavailable(errors.New("down"))
	})

	assert.True(t, apperrors.IsTransient(err))
	assert.Equal(t, 1, calls)
}

func TestCallOnce_TimeoutBecomesTimeoutError(t *testing.T) {
	t.Parallel()
	sc := newStoreCaller(10 * time.Millisecond)

	v, err := write(context.Background(), sc, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "late", ctx.Err()
	})

	assert.Empty(t, v)
	assert.True(t, apperrors.IsTimeout(err))
}

func TestRead_CallerCancellationIsNotRetried(t *testing.T) {
	t.Parallel()
	sc := newStoreCaller(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := read(ctx, sc, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, apperrors.Unavailable(errors.New("down"))
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestNewStoreCaller_DefaultsTimeout(t *testing.T) {
	t.Parallel()
	assert.Equal(t, DefaultStoreTimeout, newStoreCaller(0).timeout)
}

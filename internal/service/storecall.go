package service

import (
	"context"
	"time"

	apperrors "github.com/nazmul162001/educonnect/internal/errors"
)

// DefaultStoreTimeout bounds a single store call when no timeout is configured.
const DefaultStoreTimeout = 3 * time.Second

// storeCaller runs store calls under a per-call timeout.
// Reads may be retried once on a transient failure; writes never are.
type storeCaller struct {
	timeout time.Duration
}

func newStoreCaller(timeout time.Duration) storeCaller {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return storeCaller{timeout: timeout}
}

// read runs an idempotent call, retrying once when the first attempt failed transiently
// and the caller's context is still live.
func read[T any](ctx context.Context, sc storeCaller, fn func(context.Context) (T, error)) (T, error) {
	v, err := callOnce(ctx, sc, fn)
	if err != nil && apperrors.IsTransient(err) && ctx.Err() == nil {
		return callOnce(ctx, sc, fn)
	}
	return v, err
}

// write runs a mutating call exactly once.
func write[T any](ctx context.Context, sc storeCaller, fn func(context.Context) (T, error)) (T, error) {
	return callOnce(ctx, sc, fn)
}

// writeErr is write for calls without a result.
func writeErr(ctx context.Context, sc storeCaller, fn func(context.Context) error) error {
	_, err := callOnce(ctx, sc, func(c context.Context) (struct{}, error) {
		return struct{}{}, fn(c)
	})
	return err
}

func callOnce[T any](ctx context.Context, sc storeCaller, fn func(context.Context) (T, error)) (T, error) {
	callCtx, cancel := context.WithTimeout(ctx, sc.timeout)
	defer cancel()

	v, err := fn(callCtx)
	if err != nil && ctx.Err() == nil && callCtx.Err() == context.DeadlineExceeded && !apperrors.IsTimeout(err) {
		var zero T
		return zero, apperrors.Wrap(err, apperrors.ErrCodeTimeout, "store call timed out")
	}
	return v, err
}

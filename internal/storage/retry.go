package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"

	"credd/internal/models"
	"credd/internal/structures"
)

type retrier struct {
	retries uint64
	delay   time.Duration
}

func newRetrier(conf *structures.Config) retrier {
	return retrier{retries: uint64(max(conf.Store.Retries, 0)), delay: conf.Store.RetryDelay}
}

// do runs op until it succeeds, fails permanently or the retry budget is spent.
// Whatever error remains is reported as ErrStoreUnavailable.
func (r retrier) do(ctx context.Context, what string, op func() error) error {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(r.delay), r.retries), ctx)

	err := backoff.Retry(func() error {
		err := op()
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrInvalidInput):
		return err
	default:
		return fmt.Errorf("%w: %s: %v", models.ErrStoreUnavailable, what, err)
	}
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrInvalidInput):
		return false
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, gorm.ErrDuplicatedKey):
		return false
	}
	return true
}

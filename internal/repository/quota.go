package repository

import (
	"context"
	"errors"
	"fmt"
)

// ErrQuotaExceeded is returned when a value is larger than the store quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

type quotaStore struct {
	Store
	max int
}

// WithQuota wraps store so that Set rejects values longer than max bytes.
func WithQuota(store Store, max int) Store {
	return &quotaStore{Store: store, max: max}
}

func (q *quotaStore) Set(ctx context.Context, key, value string) error {
	if len(value) > q.max {
		return fmt.Errorf("%w: %s needs %d bytes, limit is %d", ErrQuotaExceeded, key, len(value), q.max)
	}
	return q.Store.Set(ctx, key, value)
}

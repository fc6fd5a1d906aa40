package services

import (
	"context"

	"github.com/renato0307/keebs/internal/domain"
)

type trackerContextKey struct{}

// WithTracker returns a context carrying t for consumers further down the call tree
func WithTracker(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, trackerContextKey{}, t)
}

// FromContext returns the active tracker bound to ctx, or ErrNoTracker
func FromContext(ctx context.Context) (*Tracker, error) {
	t, ok := ctx.Value(trackerContextKey{}).(*Tracker)
	if !ok || t == nil || !t.Active() {
		return nil, domain.ErrNoTracker
	}
	return t, nil
}

// MustFromContext is FromContext for wiring code: a missing tracker is a
// programming error and panics.
func MustFromContext(ctx context.Context) *Tracker {
	t, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return t
}

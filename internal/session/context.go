package session

import (
	"context"
	"errors"
)

type contextKey string

const storeKey contextKey = "fittrack-session-store"

// ErrNotConfigured is returned when a caller asks for the session store from
// a context that never had one attached. This is a composition mistake, not a
// runtime condition, so it fails loudly instead of handing back a default.
var ErrNotConfigured = errors.New("session: store not configured in context")

// NewContext returns a context carrying the given store. The application
// attaches exactly one store at startup and every consumer reads it from
// there.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey, s)
}

// FromContext retrieves the store attached by NewContext, or ErrNotConfigured
// when the caller is running outside an established session scope.
func FromContext(ctx context.Context) (*Store, error) {
	s, ok := ctx.Value(storeKey).(*Store)
	if !ok || s == nil {
		return nil, ErrNotConfigured
	}
	return s, nil
}

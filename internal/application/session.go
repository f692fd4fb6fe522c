package application

import (
	"context"
	"errors"
	"time"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

// ErrNoBrowser is returned when a session value is written outside a request
// that carries a browser id.
var ErrNoBrowser = errors.New("no browser id in context")

type browserIDKey struct{}

// WithBrowserID returns a copy of ctx bound to the given browser.
func WithBrowserID(ctx context.Context, browserID string) context.Context {
	return context.WithValue(ctx, browserIDKey{}, browserID)
}

// BrowserIDFromContext returns the browser id bound to ctx, or "".
func BrowserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(browserIDKey{}).(string)
	return id
}

// Compile-time interface satisfaction check.
var _ driven.SessionContext = (*BrowserSession)(nil)

// BrowserSession implements driven.SessionContext on top of a StorageStore,
// scoping every value to the browser id carried by the context. Reads without
// a browser id behave like an empty store.
type BrowserSession struct {
	store driven.StorageStore
}

// NewBrowserSession creates a BrowserSession backed by store.
func NewBrowserSession(store driven.StorageStore) *BrowserSession {
	return &BrowserSession{store: store}
}

func (s *BrowserSession) Token(ctx context.Context) (string, error) {
	return s.get(ctx, model.StorageKeyToken)
}

func (s *BrowserSession) SetToken(ctx context.Context, token string) error {
	return s.set(ctx, model.StorageKeyToken, token)
}

func (s *BrowserSession) DisplayName(ctx context.Context) (string, error) {
	return s.get(ctx, model.StorageKeyDisplayName)
}

func (s *BrowserSession) SetDisplayName(ctx context.Context, name string) error {
	return s.set(ctx, model.StorageKeyDisplayName, name)
}

// Clear removes the token and the display name. Other keys are kept.
func (s *BrowserSession) Clear(ctx context.Context) error {
	id := BrowserIDFromContext(ctx)
	if id == "" {
		return nil
	}
	return s.store.Delete(ctx, id, model.StorageKeyToken, model.StorageKeyDisplayName)
}

// LastActivity returns the newest write or touch of the browser's values, or
// the zero time when nothing is stored.
func (s *BrowserSession) LastActivity(ctx context.Context) (time.Time, error) {
	id := BrowserIDFromContext(ctx)
	if id == "" {
		return time.Time{}, nil
	}
	entries, err := s.store.List(ctx, id)
	if err != nil {
		return time.Time{}, err
	}

	var last time.Time
	for _, e := range entries {
		if e.UpdatedAt.After(last) {
			last = e.UpdatedAt
		}
	}
	return last, nil
}

func (s *BrowserSession) get(ctx context.Context, key string) (string, error) {
	id := BrowserIDFromContext(ctx)
	if id == "" {
		return "", nil
	}
	return s.store.Get(ctx, id, key)
}

func (s *BrowserSession) set(ctx context.Context, key, value string) error {
	id := BrowserIDFromContext(ctx)
	if id == "" {
		return ErrNoBrowser
	}
	return s.store.Set(ctx, id, key, value)
}

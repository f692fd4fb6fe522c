package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserSession_ScopedByBrowserID(t *testing.T) {
	store := newMemStore()
	session := NewBrowserSession(store)
	alice := WithBrowserID(context.Background(), "alice")
	bob := WithBrowserID(context.Background(), "bob")

	require.NoError(t, session.SetToken(alice, "tok-a"))
	require.NoError(t, session.SetDisplayName(alice, "Alice"))

	token, err := session.Token(alice)
	require.NoError(t, err)
	assert.Equal(t, "tok-a", token)

	token, err = session.Token(bob)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestBrowserSession_ClearRemovesBothKeysOnly(t *testing.T) {
	store := newMemStore()
	session := NewBrowserSession(store)
	ctx := WithBrowserID(context.Background(), "b")

	require.NoError(t, session.SetToken(ctx, "tok"))
	require.NoError(t, session.SetDisplayName(ctx, "Ana"))
	require.NoError(t, store.Set(ctx, "b", "theme", "dark"))

	require.NoError(t, session.Clear(ctx))

	token, _ := session.Token(ctx)
	name, _ := session.DisplayName(ctx)
	assert.Empty(t, token)
	assert.Empty(t, name)

	entries, err := store.List(ctx, "b")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "theme", entries[0].Key)
	assert.Equal(t, "dark", entries[0].Value)
}

func TestBrowserSession_LastActivityFollowsTouch(t *testing.T) {
	store := newMemStore()
	session := NewBrowserSession(store)
	ctx := WithBrowserID(context.Background(), "b")

	last, err := session.LastActivity(ctx)
	require.NoError(t, err)
	assert.True(t, last.IsZero())

	require.NoError(t, session.SetToken(ctx, "tok"))
	store.updated["b"] = time.Now().Add(-48 * time.Hour)

	last, err = session.LastActivity(ctx)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(-48*time.Hour), last, time.Minute)

	require.NoError(t, store.Touch(ctx, "b"))

	last, err = session.LastActivity(ctx)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), last, time.Minute)

	n, err := store.PurgeIdle(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBrowserSession_WithoutBrowserID(t *testing.T) {
	session := NewBrowserSession(newMemStore())
	ctx := context.Background()

	token, err := session.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	assert.NoError(t, session.Clear(ctx))
	assert.ErrorIs(t, session.SetToken(ctx, "x"), ErrNoBrowser)
}

func TestBrowserIDFromContext(t *testing.T) {
	assert.Empty(t, BrowserIDFromContext(context.Background()))
	assert.Equal(t, "id-1", BrowserIDFromContext(WithBrowserID(context.Background(), "id-1")))
}

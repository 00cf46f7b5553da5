package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecms/backend/services/content-service/internal/models"
	"sitecms/backend/services/content-service/internal/style"
)

type stubLoader struct {
	overrides []models.StyleOverride
	err       error
	calls     int
}

func (l *stubLoader) LoadSnapshot(context.Context) (*style.Snapshot, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return style.NewSnapshot(l.overrides, nil, time.Now()), nil
}

type memoryStore struct {
	snap    *style.Snapshot
	deletes int
}

func (m *memoryStore) Get(context.Context) (*style.Snapshot, error) {
	if m.snap == nil {
		return nil, goredis.Nil
	}
	return m.snap, nil
}

func (m *memoryStore) Set(_ context.Context, snap *style.Snapshot) error {
	m.snap = snap
	return nil
}

func (m *memoryStore) Delete(context.Context) error {
	m.deletes++
	m.snap = nil
	return nil
}

func TestStyleCacheLifecycle(t *testing.T) {
	loader := &stubLoader{overrides: []models.StyleOverride{{ElementID: "hero", BackgroundClass: "bg-card"}}}
	c := NewStyleCache(loader, nil, nil)

	state, err := c.State()
	assert.Equal(t, StateLoading, state)
	assert.NoError(t, err)
	assert.Nil(t, c.Snapshot())
	assert.Equal(t, "bg-muted", c.Resolve("hero", style.Defaults{Background: "bg-muted"}).Background)

	require.NoError(t, c.Load(context.Background()))
	state, _ = c.State()
	assert.Equal(t, StateReady, state)
	assert.Equal(t, "bg-card", c.Resolve("hero", style.Defaults{Background: "bg-muted"}).Background)
}

func TestStyleCacheFailedReloadKeepsSnapshot(t *testing.T) {
	loader := &stubLoader{overrides: []models.StyleOverride{{ElementID: "hero", BackgroundClass: "bg-card"}}}
	c := NewStyleCache(loader, nil, nil)
	require.NoError(t, c.Load(context.Background()))

	loader.err = errors.New("db down")
	err := c.Invalidate(context.Background())
	require.Error(t, err)

	state, lastErr := c.State()
	assert.Equal(t, StateError, state)
	assert.ErrorIs(t, lastErr, loader.err)
	assert.Equal(t, "bg-card", c.Resolve("hero", style.Defaults{}).Background)

	loader.err = nil
	require.NoError(t, c.Invalidate(context.Background()))
	state, lastErr = c.State()
	assert.Equal(t, StateReady, state)
	assert.NoError(t, lastErr)
}

func TestStyleCacheFirstLoadFailure(t *testing.T) {
	c := NewStyleCache(&stubLoader{err: errors.New("boom")}, nil, nil)
	require.Error(t, c.Load(context.Background()))

	state, _ := c.State()
	assert.Equal(t, StateError, state)

	got := c.Resolve("anything", style.Defaults{Background: "bg-muted", TextColor: "text-muted"})
	assert.Equal(t, "bg-muted", got.Background)
	assert.Equal(t, "text-muted", got.TextColor)
}

func TestStyleCacheUsesSharedSnapshot(t *testing.T) {
	loader := &stubLoader{}
	store := &memoryStore{}
	c := NewStyleCache(loader, store, nil)

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, 1, loader.calls)
	require.NotNil(t, store.snap)

	other := NewStyleCache(loader, store, nil)
	require.NoError(t, other.Load(context.Background()))
	assert.Equal(t, 1, loader.calls, "second instance should read the shared snapshot")

	require.NoError(t, other.Invalidate(context.Background()))
	assert.Equal(t, 1, store.deletes)
	assert.Equal(t, 2, loader.calls)
	assert.NotNil(t, store.snap)
}

func TestStyleCacheRefreshSeesOtherInstanceWrites(t *testing.T) {
	loader := &stubLoader{}
	store := &memoryStore{}
	writer := NewStyleCache(loader, store, nil)
	reader := NewStyleCache(loader, store, nil)
	ctx := context.Background()
	require.NoError(t, writer.Load(ctx))
	require.NoError(t, reader.Load(ctx))

	loader.overrides = []models.StyleOverride{{ElementID: "hero", BackgroundClass: "bg-primary"}}
	require.NoError(t, writer.Invalidate(ctx))
	assert.False(t, reader.Resolve("hero", style.Defaults{}).Overridden)

	require.NoError(t, reader.Refresh(ctx))
	assert.Equal(t, "bg-primary", reader.Resolve("hero", style.Defaults{}).Background)
	assert.Equal(t, 1, store.deletes, "refresh keeps the shared snapshot")
}

func TestDecodeInvalidation(t *testing.T) {
	inv, err := DecodeInvalidation(`{"origin":"a1","element_id":"hero"}`)
	require.NoError(t, err)
	assert.Equal(t, Invalidation{Origin: "a1", ElementID: "hero"}, inv)

	_, err = DecodeInvalidation(`not json`)
	assert.Error(t, err)
}

func TestStateText(t *testing.T) {
	text, err := StateReady.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ready", string(text))
	assert.Equal(t, "error", StateError.String())
}

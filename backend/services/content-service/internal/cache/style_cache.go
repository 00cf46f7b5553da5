// Package cache holds the in-process style snapshot shared by request handlers.
package cache

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	libredis "sitecms/backend/libs/redis"
	"sitecms/backend/services/content-service/internal/style"
)

// State is the lifecycle position of a StyleCache.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Loader reads a fresh snapshot from the source of truth.
type Loader interface {
	LoadSnapshot(ctx context.Context) (*style.Snapshot, error)
}

// SnapshotStore shares snapshots between instances.
type SnapshotStore interface {
	Get(ctx context.Context) (*style.Snapshot, error)
	Set(ctx context.Context, snap *style.Snapshot) error
	Delete(ctx context.Context) error
}

// StyleCache holds the current snapshot. Lifecycle: loading until the first load finishes, then
// ready or error. A failed reload keeps serving the previous snapshot.
type StyleCache struct {
	loader Loader
	store  SnapshotStore
	logger *zap.Logger

	mu      sync.RWMutex
	state   State
	snap    *style.Snapshot
	lastErr error
}

// NewStyleCache builds an empty cache in the loading state. store may be nil.
func NewStyleCache(loader Loader, store SnapshotStore, logger *zap.Logger) *StyleCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StyleCache{
		loader: loader,
		store:  store,
		logger: logger,
		state:  StateLoading,
	}
}

// Load fills the cache, preferring the shared snapshot when one exists.
func (c *StyleCache) Load(ctx context.Context) error {
	if c.store != nil {
		snap, err := c.store.Get(ctx)
		switch {
		case err == nil && snap != nil:
			c.setReady(snap)
			return nil
		case err != nil && !libredis.IsMiss(err):
			c.logger.Warn("style snapshot read failed", zap.Error(err))
		}
	}
	return c.reload(ctx)
}

// Invalidate drops the shared snapshot and reloads from the source of truth.
func (c *StyleCache) Invalidate(ctx context.Context) error {
	if c.store != nil {
		if err := c.store.Delete(ctx); err != nil {
			c.logger.Warn("style snapshot delete failed", zap.Error(err))
		}
	}
	return c.reload(ctx)
}

// Refresh reloads from the source of truth without dropping the shared snapshot first.
func (c *StyleCache) Refresh(ctx context.Context) error {
	return c.reload(ctx)
}

func (c *StyleCache) reload(ctx context.Context) error {
	c.mu.Lock()
	if c.snap == nil {
		c.state = StateLoading
	}
	c.mu.Unlock()

	snap, err := c.loader.LoadSnapshot(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = StateError
		c.lastErr = err
		c.mu.Unlock()
		c.logger.Error("style snapshot load failed", zap.Error(err))
		return fmt.Errorf("load style snapshot: %w", err)
	}

	c.setReady(snap)
	if c.store != nil {
		if err := c.store.Set(ctx, snap); err != nil {
			c.logger.Warn("style snapshot write failed", zap.Error(err))
		}
	}
	return nil
}

func (c *StyleCache) setReady(snap *style.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	c.state = StateReady
	c.lastErr = nil
}

// State returns the lifecycle state and the last load error, if any.
func (c *StyleCache) State() (State, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state, c.lastErr
}

// Snapshot returns the current snapshot, nil before the first successful load. Callers must treat
// it as read-only.
func (c *StyleCache) Snapshot() *style.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Resolve resolves elementID against the current snapshot.
func (c *StyleCache) Resolve(elementID string, defaults style.Defaults) style.Resolved {
	return style.Resolve(c.Snapshot(), elementID, defaults)
}

package repository

import (
	"context"
	"time"

	"sitecms/backend/services/content-service/internal/style"
)

// SnapshotLoader reads overrides and tokens into one style snapshot.
type SnapshotLoader struct {
	styles *StyleRepository
	tokens *TokenRepository
}

// NewSnapshotLoader builds loader.
func NewSnapshotLoader(styles *StyleRepository, tokens *TokenRepository) *SnapshotLoader {
	return &SnapshotLoader{styles: styles, tokens: tokens}
}

// LoadSnapshot implements cache.Loader.
func (l *SnapshotLoader) LoadSnapshot(ctx context.Context) (*style.Snapshot, error) {
	overrides, err := l.styles.List(ctx)
	if err != nil {
		return nil, err
	}
	tokens, err := l.tokens.List(ctx)
	if err != nil {
		return nil, err
	}
	return style.NewSnapshot(overrides, tokens, time.Now().UTC()), nil
}

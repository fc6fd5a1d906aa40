package ports

import (
	"context"

	"github.com/renato0307/keebs/internal/domain"
)

// OverrideReader reads persisted shortcut overrides
type OverrideReader interface {
	List(ctx context.Context) (domain.ShortcutMap, error)
}

// OverrideWriter persists shortcut overrides
type OverrideWriter interface {
	Set(ctx context.Context, id, shortcut string) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// OverrideRepository is the composite interface
type OverrideRepository interface {
	OverrideReader
	OverrideWriter
	Close() error
}

package cache

import (
	"context"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/cache"
)

// NopCache используется, когда Redis выключен: ничего не хранит.
type NopCache struct{}

// NewNopCache создает пустой кэш.
func NewNopCache() cache.NoteCache { return NopCache{} }

// Get всегда сообщает о промахе.
func (NopCache) Get(context.Context, int64) (*entities.Note, error) { return nil, nil }

// Set ничего не делает.
func (NopCache) Set(context.Context, *entities.Note) error { return nil }

// Delete ничего не делает.
func (NopCache) Delete(context.Context, int64) error { return nil }

// Close ничего не делает.
func (NopCache) Close() error { return nil }

// Package cache определяет интерфейс кэша заметок.
package cache

import (
	"context"

	"gonotes/internal/notes/domain/entities"
)

// NoteCache кэширует заметки по идентификатору.
// Get возвращает (nil, nil), если записи нет.
type NoteCache interface {
	Get(ctx context.Context, id int64) (*entities.Note, error)
	Set(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, id int64) error
	Close() error
}

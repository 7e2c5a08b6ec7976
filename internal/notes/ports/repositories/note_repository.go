// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"

	"gonotes/internal/notes/domain/entities"
)

// NoteRepository определяет контракт хранилища заметок.
//
// Ошибки отсутствия данных и некорректного ввода возвращаются
// как entities.ErrNoteNotFound, entities.ErrEmptyCollection и entities.ErrInvalidInput.
type NoteRepository interface {
	// ListAll возвращает все заметки в порядке создания.
	ListAll(ctx context.Context) ([]entities.Note, error)
	GetByID(ctx context.Context, id int64) (*entities.Note, error)
	// GetByTitle возвращает первую по порядку создания заметку с точно совпадающим заголовком.
	GetByTitle(ctx context.Context, title string) (*entities.Note, error)
	Create(ctx context.Context, title, content string) (*entities.Note, error)
	Update(ctx context.Context, id int64, patch entities.NotePatch) error
	Delete(ctx context.Context, id int64) error
}

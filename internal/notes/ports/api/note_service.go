// Package api определяет интерфейс бизнес-логики, который использует HTTP слой.
package api

import (
	"context"

	"gonotes/internal/notes/domain/entities"
)

// NoteService определяет операции над заметками.
type NoteService interface {
	ListNotes(ctx context.Context) ([]entities.Note, error)
	GetNote(ctx context.Context, noteID int64) (*entities.Note, error)
	GetNoteByTitle(ctx context.Context, title string) (*entities.Note, error)
	CreateNote(ctx context.Context, title, content string) (*entities.Note, error)
	UpdateNote(ctx context.Context, noteID int64, patch entities.NotePatch) error
	DeleteNote(ctx context.Context, noteID int64) error
}

// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/cache"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

// Сообщения об ошибках уровня бизнес-логики.
const (
	ErrMsgListNotes  = "failed to list notes"
	ErrMsgGetNote    = "failed to get note"
	ErrMsgCreateNote = "failed to create note"
	ErrMsgUpdateNote = "failed to update note"
	ErrMsgDeleteNote = "failed to delete note"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
// Кэш используется только для чтения по id; его ошибки не прерывают запрос.
type NoteUseCase struct {
	noteRepo  repositories.NoteRepository
	noteCache cache.NoteCache
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, noteCache cache.NoteCache) *NoteUseCase {
	return &NoteUseCase{
		noteRepo:  noteRepo,
		noteCache: noteCache,
	}
}

// ListNotes возвращает все заметки в порядке создания.
func (uc *NoteUseCase) ListNotes(ctx context.Context) ([]entities.Note, error) {
	notes, err := uc.noteRepo.ListAll(ctx)
	if err != nil {
		return nil, wrap(ErrMsgListNotes, err)
	}
	return notes, nil
}

// GetNote возвращает заметку по ID, сначала проверяя кэш.
func (uc *NoteUseCase) GetNote(ctx context.Context, noteID int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.GetNote"), zap.Int64("noteID", noteID))

	if cached, err := uc.noteCache.Get(ctx, noteID); err == nil && cached != nil {
		log.Debug(ctx, "note served from cache")
		return cached, nil
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, wrap(ErrMsgGetNote, err)
	}

	if err := uc.noteCache.Set(ctx, note); err != nil {
		log.Warn(ctx, "failed to cache note", zap.Error(err))
		return note, nil
	}

	// Update или Delete мог завершиться между чтением и Set и уже сбросить кэш.
	current, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil || !current.Changed.Equal(note.Changed) {
		log.Debug(ctx, "note changed while caching, dropping cached copy")
		uc.invalidate(ctx, noteID)
	}
	return note, nil
}

// GetNoteByTitle возвращает первую заметку с точно совпадающим заголовком.
func (uc *NoteUseCase) GetNoteByTitle(ctx context.Context, title string) (*entities.Note, error) {
	note, err := uc.noteRepo.GetByTitle(ctx, title)
	if err != nil {
		return nil, wrap(ErrMsgGetNote, err)
	}
	return note, nil
}

// CreateNote создает новую заметку.
func (uc *NoteUseCase) CreateNote(ctx context.Context, title, content string) (*entities.Note, error) {
	note, err := uc.noteRepo.Create(ctx, title, content)
	if err != nil {
		return nil, wrap(ErrMsgCreateNote, err)
	}

	logger.Log(ctx).Info(ctx, "note created", zap.Int64("noteID", note.ID))
	return note, nil
}

// UpdateNote частично обновляет заметку и сбрасывает ее из кэша.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, noteID int64, patch entities.NotePatch) error {
	if err := uc.noteRepo.Update(ctx, noteID, patch); err != nil {
		return wrap(ErrMsgUpdateNote, err)
	}

	uc.invalidate(ctx, noteID)
	logger.Log(ctx).Info(ctx, "note updated", zap.Int64("noteID", noteID))
	return nil
}

// DeleteNote удаляет заметку и сбрасывает ее из кэша.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, noteID int64) error {
	if err := uc.noteRepo.Delete(ctx, noteID); err != nil {
		return wrap(ErrMsgDeleteNote, err)
	}

	uc.invalidate(ctx, noteID)
	logger.Log(ctx).Info(ctx, "note deleted", zap.Int64("noteID", noteID))
	return nil
}

func (uc *NoteUseCase) invalidate(ctx context.Context, noteID int64) {
	if err := uc.noteCache.Delete(ctx, noteID); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to invalidate cached note",
			zap.Int64("noteID", noteID), zap.Error(err))
	}
}

// wrap оставляет доменные ошибки как есть, остальные оборачивает сообщением.
func wrap(msg string, err error) error {
	switch {
	case errors.Is(err, entities.ErrNoteNotFound),
		errors.Is(err, entities.ErrEmptyCollection),
		errors.Is(err, entities.ErrInvalidInput):
		return err
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

// Package memory provides the in-process implementation of the note repository.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"dario.cat/mergo"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

// NoteRepository хранит заметки в памяти процесса.
//
// notes хранит порядок создания, index дает доступ по id за O(1).
// Все поля защищены mu; счетчик и вставка меняются под одной блокировкой.
type NoteRepository struct {
	mu     sync.RWMutex
	clock  services.Clock
	notes  []*entities.Note
	index  map[int64]*entities.Note
	nextID int64
}

// noteFields - изменяемые поля заметки, к которым применяется патч.
type noteFields struct {
	Title   string
	Content string
}

// NewNoteRepository создает пустое хранилище. Идентификаторы начинаются с 1.
func NewNoteRepository(clock services.Clock) repositories.NoteRepository {
	return &NoteRepository{
		clock:  clock,
		index:  make(map[int64]*entities.Note),
		nextID: 1,
	}
}

// ListAll возвращает копии всех заметок в порядке создания.
func (r *NoteRepository) ListAll(ctx context.Context) ([]entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.notes) == 0 {
		logger.Log(ctx).Debug(ctx, "note collection is empty", zap.String("method", "NoteRepository.ListAll"))
		return nil, entities.ErrEmptyCollection
	}

	result := make([]entities.Note, len(r.notes))
	for i, note := range r.notes {
		result[i] = *note
	}
	return result, nil
}

// GetByID возвращает копию заметки по идентификатору.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.index[id]
	if !ok {
		logger.Log(ctx).Debug(ctx, "note not found",
			zap.String("method", "NoteRepository.GetByID"), zap.Int64("noteID", id))
		return nil, entities.ErrNoteNotFound
	}

	found := *note
	return &found, nil
}

// GetByTitle возвращает первую по порядку создания заметку с заданным заголовком.
func (r *NoteRepository) GetByTitle(ctx context.Context, title string) (*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := slices.IndexFunc(r.notes, func(n *entities.Note) bool { return n.Title == title })
	if i < 0 {
		logger.Log(ctx).Debug(ctx, "note not found",
			zap.String("method", "NoteRepository.GetByTitle"), zap.String("title", title))
		return nil, entities.ErrNoteNotFound
	}

	found := *r.notes[i]
	return &found, nil
}

// Create проверяет обязательные поля, назначает следующий id и сохраняет заметку.
func (r *NoteRepository) Create(ctx context.Context, title, content string) (*entities.Note, error) {
	if err := entities.Validate(title, content); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	note := entities.NewNote(r.nextID, title, content, r.clock.Now())
	r.nextID++

	r.notes = append(r.notes, note)
	r.index[note.ID] = note

	logger.Log(ctx).Debug(ctx, "note created",
		zap.String("method", "NoteRepository.Create"), zap.Int64("noteID", note.ID))

	created := *note
	return &created, nil
}

// Update применяет непустые поля патча и всегда обновляет метку changed.
func (r *NoteRepository) Update(ctx context.Context, id int64, patch entities.NotePatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.index[id]
	if !ok {
		return entities.ErrNoteNotFound
	}

	fields := noteFields{Title: note.Title, Content: note.Content}
	if err := mergo.Merge(&fields, patchFields(patch), mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge note patch: %w", err)
	}

	note.Title = fields.Title
	note.Content = fields.Content
	note.Changed = nextChanged(note.Changed, r.clock.Now())

	logger.Log(ctx).Debug(ctx, "note updated",
		zap.String("method", "NoteRepository.Update"), zap.Int64("noteID", id))
	return nil
}

// Delete безвозвратно удаляет заметку. Идентификатор повторно не выдается.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[id]; !ok {
		return entities.ErrNoteNotFound
	}

	delete(r.index, id)
	r.notes = slices.DeleteFunc(r.notes, func(n *entities.Note) bool { return n.ID == id })

	logger.Log(ctx).Debug(ctx, "note deleted",
		zap.String("method", "NoteRepository.Delete"), zap.Int64("noteID", id))
	return nil
}

func patchFields(patch entities.NotePatch) noteFields {
	var src noteFields
	if patch.Title != nil {
		src.Title = *patch.Title
	}
	if patch.Content != nil {
		src.Content = *patch.Content
	}
	return src
}

// nextChanged гарантирует строгий рост changed, даже если часы не сдвинулись.
func nextChanged(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}

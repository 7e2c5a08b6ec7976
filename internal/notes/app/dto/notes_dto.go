// Package dto содержит JSON-представления запросов и ответов HTTP API заметок.
package dto

import (
	"time"

	"gonotes/internal/notes/domain/entities"
)

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteRequest содержит данные для частичного обновления заметки.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Patch преобразует запрос в доменный патч.
func (r *UpdateNoteRequest) Patch() entities.NotePatch {
	return entities.NotePatch{Title: r.Title, Content: r.Content}
}

// Note представляет заметку в ответе.
type Note struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
	Changed time.Time `json:"changed"`
}

// MessageResponse - тело ответа с ошибкой.
type MessageResponse struct {
	Message string `json:"message"`
}

// NoteFromEntity конвертирует доменную заметку в DTO.
func NoteFromEntity(n *entities.Note) *Note {
	if n == nil {
		return nil
	}
	return &Note{
		ID:      n.ID,
		Title:   n.Title,
		Content: n.Content,
		Created: n.Created,
		Changed: n.Changed,
	}
}

// NotesFromEntities конвертирует список заметок, сохраняя порядок.
func NotesFromEntities(notes []entities.Note) []*Note {
	result := make([]*Note, len(notes))
	for i := range notes {
		result[i] = NoteFromEntity(&notes[i])
	}
	return result
}

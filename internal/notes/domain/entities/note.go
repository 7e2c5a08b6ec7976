// Package entities defines the domain entities for the notes service.
package entities

import (
	"errors"
	"time"
)

// Ошибки предметной области.
var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrEmptyCollection = errors.New("no notes found")
	ErrInvalidInput    = errors.New("title and content are required")
)

// Note представляет собой заметку.
type Note struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
	Changed time.Time `json:"changed"`
}

// NewNote создает заметку с одинаковыми метками created и changed.
func NewNote(id int64, title, content string, now time.Time) *Note {
	return &Note{
		ID:      id,
		Title:   title,
		Content: content,
		Created: now,
		Changed: now,
	}
}

// NotePatch описывает частичное обновление заметки.
// nil или пустая строка означают, что поле не меняется.
type NotePatch struct {
	Title   *string
	Content *string
}

// Validate проверяет обязательные поля новой заметки.
func Validate(title, content string) error {
	if title == "" || content == "" {
		return ErrInvalidInput
	}
	return nil
}

package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gonotes/internal/notes/domain/entities"
)

func TestNewNote(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	note := entities.NewNote(7, "Groceries", "Milk,eggs", now)

	assert.Equal(t, int64(7), note.ID)
	assert.Equal(t, "Groceries", note.Title)
	assert.Equal(t, "Milk,eggs", note.Content)
	assert.Equal(t, now, note.Created)
	assert.Equal(t, note.Created, note.Changed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		wantErr bool
	}{
		{name: "valid", title: "t", content: "c"},
		{name: "missing title", content: "c", wantErr: true},
		{name: "missing content", title: "t", wantErr: true},
		{name: "both missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := entities.Validate(tt.title, tt.content)
			if tt.wantErr {
				assert.ErrorIs(t, err, entities.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

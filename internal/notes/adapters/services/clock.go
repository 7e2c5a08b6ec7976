// Package services содержит реализации сервисных портов.
package services

import (
	"time"

	"gonotes/internal/notes/ports/services"
)

// SystemClock возвращает реальное время в UTC.
type SystemClock struct{}

// NewSystemClock создает часы на основе time.Now.
func NewSystemClock() services.Clock {
	return SystemClock{}
}

// Now возвращает текущее время.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

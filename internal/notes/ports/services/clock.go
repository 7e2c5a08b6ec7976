// Package services defines service interfaces for the notes service.
package services

import "time"

// Clock возвращает текущее время. Подменяется в тестах.
type Clock interface {
	Now() time.Time
}

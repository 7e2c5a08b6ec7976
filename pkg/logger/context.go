package logger

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrLoggerNotFound возвращается, если в контексте нет логгера.
var ErrLoggerNotFound = errors.New("logger not found in context")

// maxRequestIDLength ограничивает длину входящего X-Request-ID.
const maxRequestIDLength = 128

type (
	loggerKeyType    struct{}
	requestIDKeyType struct{}
)

var (
	loggerKey    = loggerKeyType{}
	requestIDKey = requestIDKeyType{}
)

var (
	globalLogger   atomic.Pointer[Logger]
	fallbackLogger = New(zap.NewNop())
)

// NewContext кладет логгер в контекст.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext извлекает логгер из контекста.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, ErrLoggerNotFound
	}
	l, ok := ctx.Value(loggerKey).(*Logger)
	if !ok || l == nil {
		return nil, ErrLoggerNotFound
	}
	return l, nil
}

// SetGlobalLogger устанавливает глобальный логгер. nil сбрасывает его.
func SetGlobalLogger(l *Logger) {
	globalLogger.Store(l)
}

// Log возвращает логгер из контекста, иначе глобальный, иначе no-op.
func Log(ctx context.Context) *Logger {
	if l, err := FromContext(ctx); err == nil {
		return l
	}
	if l := globalLogger.Load(); l != nil {
		return l
	}
	return fallbackLogger
}

// NewRequestIDContext кладет идентификатор запроса в контекст.
// Пустой или слишком длинный идентификатор заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" || len(requestID) > maxRequestIDLength {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// GenerateRequestID генерирует новый идентификатор запроса.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID возвращает логгер с зафиксированным полем request_id.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	if id, ok := GetRequestID(ctx); ok {
		return l.With(zap.String(RequestID, id))
	}
	return l
}

// Package notes собирает сервис заметок из адаптеров и бизнес-логики.
package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/cache"
	notesHTTP "gonotes/internal/notes/adapters/http"
	"gonotes/internal/notes/adapters/memory"
	"gonotes/internal/notes/app"
	"gonotes/internal/notes/config"
	cachePorts "gonotes/internal/notes/ports/cache"
	"gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

// Константы для сообщений сервера.
const (
	LogInitCache      = "initializing note cache"
	LogCacheDisabled  = "redis cache disabled, serving from memory only"
	LogStartingHTTP   = "starting HTTP server"
	LogStoppingHTTP   = "stopping HTTP server"
	LogClosingCache   = "closing note cache"
	ErrCreateCache    = "failed to create redis cache"
	ErrStartHTTP      = "failed to start HTTP server"
	ErrStopHTTP       = "failed to stop HTTP server"
	ErrCloseNoteCache = "failed to close note cache"
)

// Server владеет хранилищем заметок, кэшем и HTTP сервером.
// Хранилище живет ровно столько, сколько живет Server.
type Server struct {
	cfg   *config.Config
	app   *fiber.App
	cache cachePorts.NoteCache
}

// NewServer создает пустое хранилище и настраивает маршруты.
func NewServer(ctx context.Context, cfg *config.Config, log *logger.Logger, clock services.Clock) (*Server, error) {
	noteCache, err := newNoteCache(ctx, &cfg.Redis)
	if err != nil {
		return nil, err
	}

	useCase := app.NewNoteUseCase(memory.NewNoteRepository(clock), noteCache)

	fiberApp := notesHTTP.NewApp(fiber.Config{
		AppName:      "notes",
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	})
	notesHTTP.SetupRouter(fiberApp, useCase, log)

	return &Server{cfg: cfg, app: fiberApp, cache: noteCache}, nil
}

func newNoteCache(ctx context.Context, cfg *config.RedisConfig) (cachePorts.NoteCache, error) {
	log := logger.Log(ctx)
	if !cfg.Enabled {
		log.Info(ctx, LogCacheDisabled)
		return cache.NewNopCache(), nil
	}

	log.Info(ctx, LogInitCache, zap.String("address", cfg.GetAddress()))
	redisCache, err := cache.NewRedisCache(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateCache, err)
	}
	return redisCache, nil
}

// App возвращает fiber приложение. Используется в тестах.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start начинает принимать HTTP соединения и блокируется до остановки.
func (s *Server) Start(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogStartingHTTP, zap.String("address", s.cfg.HTTP.GetAddress()))

	if err := s.app.Listen(s.cfg.HTTP.GetAddress()); err != nil {
		return fmt.Errorf("%s: %w", ErrStartHTTP, err)
	}
	return nil
}

// Shutdown останавливает HTTP сервер, дожидаясь активных запросов, затем закрывает кэш.
func (s *Server) Shutdown(ctx context.Context) error {
	log := logger.Log(ctx)

	log.Info(ctx, LogStoppingHTTP)
	httpErr := s.app.ShutdownWithContext(ctx)
	if httpErr != nil {
		httpErr = fmt.Errorf("%s: %w", ErrStopHTTP, httpErr)
	}

	log.Info(ctx, LogClosingCache)
	cacheErr := s.cache.Close()
	if cacheErr != nil {
		cacheErr = fmt.Errorf("%s: %w", ErrCloseNoteCache, cacheErr)
	}

	return errors.Join(httpErr, cacheErr)
}

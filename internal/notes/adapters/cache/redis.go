// Package cache содержит реализацию кэша заметок на Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gonotes/internal/notes/config"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/cache"
	"gonotes/internal/notes/resilience"
	redisdb "gonotes/pkg/db/redis"
	"gonotes/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodGet    = "get"
	LogMethodSet    = "set"
	LogMethodDelete = "delete"

	ErrorFailedToConnect = "failed to create note cache"
	ErrorFailedToGet     = "failed to get note from redis"
	ErrorFailedToSet     = "failed to set note in redis"
	ErrorFailedToDelete  = "failed to delete note from redis"
	ErrorFailedToDecode  = "failed to decode cached note"
	ErrorFailedToClose   = "failed to close redis connection"

	LogStaleEntryPurged = "stale cache entry purged"
)

// RedisCache реализует cache.NoteCache поверх Redis.
// Все обращения проходят через Circuit Breaker, чтобы недоступный Redis
// не добавлял задержку к каждому запросу.
//
// Если Delete не удался, id попадает в stale: такие записи не читаются и не
// пишутся, пока ключ не будет успешно удален.
type RedisCache struct {
	client     *redis.Client
	breaker    *resilience.CircuitBreaker
	keyPrefix  string
	defaultTTL time.Duration

	mu    sync.Mutex
	stale map[int64]struct{}
}

// NewRedisCache подключается к Redis и проверяет соединение.
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (cache.NoteCache, error) {
	client, err := redisdb.NewClient(ctx, redisdb.Config{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	return &RedisCache{
		client:     client,
		breaker:    resilience.NewCircuitBreaker("redis-note-cache", resilience.DefaultCircuitBreakerConfig()),
		keyPrefix:  cfg.KeyPrefix,
		defaultTTL: cfg.DefaultTTL,
		stale:      make(map[int64]struct{}),
	}, nil
}

func (c *RedisCache) key(id int64) string {
	return c.keyPrefix + strconv.FormatInt(id, 10)
}

// Get возвращает заметку из кэша или (nil, nil), если ее там нет.
func (c *RedisCache) Get(ctx context.Context, id int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.Int64("noteID", id))

	if !c.purgeStale(ctx, id) {
		return nil, nil
	}

	var raw []byte
	err := c.breaker.Execute(ctx, func() error {
		var err error
		raw, err = c.client.Get(ctx, c.key(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	if raw == nil {
		return nil, nil
	}

	var note entities.Note
	if err := json.Unmarshal(raw, &note); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}
	return &note, nil
}

// Set сохраняет заметку с TTL по умолчанию.
func (c *RedisCache) Set(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.Int64("noteID", note.ID))

	if !c.purgeStale(ctx, note.ID) {
		return nil
	}

	raw, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	err = c.breaker.Execute(ctx, func() error {
		return c.client.Set(ctx, c.key(note.ID), raw, c.defaultTTL).Err()
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// Delete удаляет заметку из кэша. Отсутствие ключа ошибкой не считается.
func (c *RedisCache) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete), zap.Int64("noteID", id))

	if err := c.del(ctx, id); err != nil {
		c.markStale(id)
		log.Warn(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	c.clearStale(id)
	return nil
}

func (c *RedisCache) del(ctx context.Context, id int64) error {
	return c.breaker.Execute(ctx, func() error {
		return c.client.Del(ctx, c.key(id)).Err()
	})
}

func (c *RedisCache) markStale(id int64) {
	c.mu.Lock()
	c.stale[id] = struct{}{}
	c.mu.Unlock()
}

func (c *RedisCache) clearStale(id int64) {
	c.mu.Lock()
	delete(c.stale, id)
	c.mu.Unlock()
}

// purgeStale повторяет удаление для id из stale.
// Возвращает false, если ключу по-прежнему нельзя доверять.
func (c *RedisCache) purgeStale(ctx context.Context, id int64) bool {
	c.mu.Lock()
	_, isStale := c.stale[id]
	c.mu.Unlock()
	if !isStale {
		return true
	}

	if err := c.del(ctx, id); err != nil {
		return false
	}
	c.clearStale(id)
	logger.Log(ctx).Debug(ctx, LogStaleEntryPurged, zap.Int64("noteID", id))
	return true
}

// Close закрывает соединение с Redis.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}

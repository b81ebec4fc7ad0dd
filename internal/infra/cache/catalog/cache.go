package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

const keyPrefix = "spa:catalog:service:"

// Cache read-through кеш услуг каталога для пути чтения
//
// Ошибки Redis не ломают чтение: запрос уходит в репозиторий.
// Путь записи (добавление строки) читает услугу под блокировкой напрямую из БД
type Cache struct {
	source ServiceReader
	redis  RedisClient
	ttl    time.Duration
	logger Logger
}

// NewCache создает кеш поверх репозитория каталога
func NewCache(source ServiceReader, redis RedisClient, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		source: source,
		redis:  redis,
		ttl:    ttl,
		logger: logger,
	}
}

func serviceKey(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

// GetServiceByID возвращает услугу из кеша или из репозитория
func (c *Cache) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	key := serviceKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var service domain.Service
		if err := json.Unmarshal(data, &service); err == nil {
			return &service, nil
		}
		c.logger.Warn("CatalogCache: corrupted entry %s, reloading: %v", key, err)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("CatalogCache: redis get %s failed: %v", key, err)
	}

	service, err := c.source.GetServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(service)
	if err != nil {
		c.logger.Error("CatalogCache: failed to encode service id=%d: %v", id, err)
		return service, nil
	}
	if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("CatalogCache: redis set %s failed: %v", key, err)
	}

	return service, nil
}

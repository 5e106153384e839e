package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrEncode возвращается, когда значение не удалось сериализовать
	ErrEncode = errors.New("cache: failed to encode value")

	// ErrDecode возвращается, когда значение из кеша не удалось разобрать
	ErrDecode = errors.New("cache: failed to decode value")

	// ErrBackend возвращается при ошибках redis
	ErrBackend = errors.New("cache: backend error")
)

// Cache JSON-кеш поверх redis с общим префиксом ключей и TTL
type Cache struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

// New создает кеш
func New(rdb redis.Cmdable, prefix string, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Get читает значение в dst. Возвращает false, если ключа нет
func (c *Cache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrBackend, key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrDecode, key, err)
	}
	return true, nil
}

// Set сохраняет значение с TTL кеша
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, key, err)
	}

	if err := c.rdb.Set(ctx, c.key(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrBackend, key, err)
	}
	return nil
}

// Delete удаляет ключи
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.key(k)
	}

	if err := c.rdb.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("%w: delete: %v", ErrBackend, err)
	}
	return nil
}

func (c *Cache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

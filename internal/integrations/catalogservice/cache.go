package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedClient кэширует базовые цены в Redis поверх другого источника.
// Ошибки Redis не прерывают запрос: цена берется из источника напрямую.
type CachedClient struct {
	upstream  PriceSource
	client    redis.UniversalClient
	ttl       time.Duration
	keyPrefix string
	log       Logger
}

// NewRedisClient создает клиент Redis
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 10,
	})
}

// NewCachedClient создает кэширующий декоратор
func NewCachedClient(upstream PriceSource, client redis.UniversalClient, ttl time.Duration, keyPrefix string, log Logger) *CachedClient {
	return &CachedClient{
		upstream:  upstream,
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
		log:       log,
	}
}

// GetTourPrice возвращает цену из кэша, при промахе - из источника с сохранением в кэш
func (c *CachedClient) GetTourPrice(ctx context.Context, resourceID string) (*TourPrice, error) {
	key := c.priceKey(resourceID)

	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var price TourPrice
		if err := json.Unmarshal(cached, &price); err == nil {
			return &price, nil
		}
		c.log.Warn("CatalogCache: corrupted entry key=%s, refreshing", key)
	case errors.Is(err, redis.Nil):
		// промах кэша
	default:
		c.log.Warn("CatalogCache: get key=%s failed: %v", key, err)
	}

	price, err := c.upstream.GetTourPrice(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(price)
	if err != nil {
		c.log.Warn("CatalogCache: marshal tour=%s failed: %v", resourceID, err)
		return price, nil
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("CatalogCache: set key=%s failed: %v", key, err)
	}

	return price, nil
}

func (c *CachedClient) priceKey(resourceID string) string {
	return c.keyPrefix + "tour-price:" + resourceID
}

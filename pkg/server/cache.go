package server

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type LocalEntry struct {
	Expires time.Time
	Data    []byte
}

// Cache keeps rendered responses in redis with a short lived in-process
// copy in front of it.
type Cache struct {
	client   *redis.Client
	mu       sync.RWMutex
	memCache map[string]LocalEntry
	localTTL time.Duration
}

func NewCache(addr, password string, db int) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewCacheWithClient(rdb)
}

func NewCacheWithClient(client *redis.Client) *Cache {
	return &Cache{
		client:   client,
		memCache: make(map[string]LocalEntry),
		localTTL: time.Minute,
	}
}

func (c *Cache) GetRaw(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	local, found := c.memCache[key]
	c.mu.RUnlock()
	if found {
		if time.Now().Before(local.Expires) {
			return local.Data, nil
		}
		c.mu.Lock()
		delete(c.memCache, key)
		c.mu.Unlock()
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	c.storeLocal(key, data, c.localTTL)
	return data, nil
}

func (c *Cache) SetRaw(ctx context.Context, key string, data []byte, expiration time.Duration) error {
	c.storeLocal(key, data, min(expiration, c.localTTL))
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *Cache) storeLocal(key string, data []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memCache[key] = LocalEntry{Expires: time.Now().Add(ttl), Data: data}
}

// Clear drops the in-process copies. Redis entries expire on their own.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.memCache)
}

func (c *Cache) Close() error {
	return c.client.Close()
}

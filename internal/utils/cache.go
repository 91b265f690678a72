package utils

import (
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// entry 缓存值加过期时间
type entry struct {
	data      interface{}
	expiresAt time.Time
}

// Cache 进程内 LRU 缓存，带 TTL
type Cache struct {
	lru *lru.Cache[string, entry]
}

var (
	cacheOnce     sync.Once
	cacheInstance *Cache
)

// GetCache 获取单例缓存实例
func GetCache() *Cache {
	cacheOnce.Do(func() {
		l, err := lru.New[string, entry](500)
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		cacheInstance = &Cache{lru: l}
	})
	return cacheInstance
}

func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	c.lru.Add(key, entry{data: data, expiresAt: time.Now().Add(ttl)})
}

// Get 不存在或已过期返回 nil
func (c *Cache) Get(key string) interface{} {
	val, ok := c.lru.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(val.expiresAt) {
		c.lru.Remove(key)
		return nil
	}
	return val.data
}

func (c *Cache) Delete(key string) {
	c.lru.Remove(key)
}

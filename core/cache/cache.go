package cache

import (
	"sync"
	"time"
)

// Cache is a simple thread-safe key-value store using sync.Map.
// Search handlers use it to keep /buscar results hot between mutations.
type Cache struct {
	m sync.Map
	// tagIndex maps tag string to the set of keys carrying that tag
	tagIndex sync.Map // map[string]map[string]struct{}
	tagMu    sync.Mutex
}

var (
	once     sync.Once
	instance *Cache
)

func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

// NewCache creates a new Cache instance.
func NewCache() *Cache {
	return &Cache{}
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // Unix nanoseconds; 0 means no expiration
}

// Set stores a value for a key with an optional TTL (in seconds) and optional
// tags. If ttl is 0 the value does not expire.
func (c *Cache) Set(key string, value interface{}, ttl int64, tags []string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(time.Duration(ttl) * time.Second).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
	if len(tags) > 0 {
		c.TagKey(key, tags)
	}
}

// Get retrieves a value for a key. Returns (value, true) if found and not
// expired, (nil, false) otherwise.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if item.ExpiresAt > 0 && time.Now().UnixNano() > item.ExpiresAt {
		c.m.Delete(key)
		return nil, false
	}
	return item.Value, true
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key string) {
	c.m.Delete(key)
}

// TagKey assigns one or more tags to a cache key.
func (c *Cache) TagKey(key string, tags []string) {
	c.tagMu.Lock()
	defer c.tagMu.Unlock()
	for _, tag := range tags {
		var keys map[string]struct{}
		if v, ok := c.tagIndex.Load(tag); ok {
			keys = v.(map[string]struct{})
		} else {
			keys = make(map[string]struct{})
		}
		keys[key] = struct{}{}
		c.tagIndex.Store(tag, keys)
	}
}

// InvalidateTags removes every key carrying any of the given tags.
func (c *Cache) InvalidateTags(tags ...string) {
	c.tagMu.Lock()
	defer c.tagMu.Unlock()
	for _, tag := range tags {
		v, ok := c.tagIndex.Load(tag)
		if !ok {
			continue
		}
		for key := range v.(map[string]struct{}) {
			c.m.Delete(key)
		}
		c.tagIndex.Delete(tag)
	}
}

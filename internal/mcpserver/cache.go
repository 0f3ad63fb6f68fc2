package mcpserver

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shigou0206/stepflow-test/parser"
)

// cacheEntry is one decoded document held by the cache.
type cacheEntry struct {
	key       string
	result    *parser.Result
	expiresAt time.Time
}

// specCacheStore keeps decoded documents for the lifetime of a session.
// Entries are evicted least recently used first once maxSize is reached,
// and expire after a per-input TTL. A background sweeper drops expired
// entries that are never looked up again.
type specCacheStore struct {
	mu             sync.Mutex
	order          *list.List // front is most recently used
	entries        map[string]*list.Element
	maxSize        int
	now            func() time.Time
	sweeperStarted atomic.Bool
}

func newSpecCache(maxSize int) *specCacheStore {
	return &specCacheStore{
		order:   list.New(),
		entries: make(map[string]*list.Element),
		maxSize: maxSize,
		now:     time.Now,
	}
}

var specCache = newSpecCache(cfg.CacheMaxSize)

// get returns the cached result for key, or nil. Expired entries are removed.
func (c *specCacheStore) get(key string) *parser.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil
	}
	e := el.Value.(*cacheEntry)
	if c.now().After(e.expiresAt) {
		c.removeElement(el)
		return nil
	}
	c.order.MoveToFront(el)
	return e.result
}

// put stores result under key for ttl.
func (c *specCacheStore) put(key string, result *parser.Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)
	if el, ok := c.entries[key]; ok {
		e := el.Value.(*cacheEntry)
		e.result = result
		e.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	for c.maxSize > 0 && c.order.Len() >= c.maxSize {
		c.removeElement(c.order.Back())
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, result: result, expiresAt: expiresAt})
}

func (c *specCacheStore) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*cacheEntry).key)
}

// sweep removes all expired entries.
func (c *specCacheStore) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if now.After(el.Value.(*cacheEntry).expiresAt) {
			c.removeElement(el)
			removed++
		}
		el = next
	}
	return removed
}

// startSweeper runs sweep every interval until ctx is cancelled.
// Only one sweeper runs at a time; extra calls are no-ops.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

// size returns the number of cached entries.
func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Package cache keeps recent remote categorizations in memory. Entries live
// longer the more often they are hit, up to a ceiling.
package cache

import (
	"container/list"
	"sync"
	"time"

	"fjacquet/quickspend/internal/models"
)

const (
	DefaultBaseTTL = 15 * time.Minute
	DefaultMaxTTL  = 24 * time.Hour
)

// Entry is one cached analysis with its bookkeeping.
type Entry struct {
	Data       models.TransactionAnalysis
	Timestamp  time.Time
	UsageCount int
}

// AdaptiveTTL is min(base + usage*base, max).
func AdaptiveTTL(usage int, base, max time.Duration) time.Duration {
	if usage < 0 {
		usage = 0
	}
	if base <= 0 || int64(usage) > int64((max-base)/base) {
		return max
	}
	return base + time.Duration(usage)*base
}

type item struct {
	key   string
	entry Entry
}

// CategorizationCache maps normalized descriptions to analyses. With a capacity
// above zero the least recently used entry is evicted first. Safe for concurrent use.
type CategorizationCache struct {
	mu       sync.Mutex
	baseTTL  time.Duration
	maxTTL   time.Duration
	capacity int
	now      func() time.Time
	items    map[string]*list.Element
	lru      *list.List
}

type Option func(*CategorizationCache)

// WithTTL overrides the 15 minute base and 24 hour ceiling.
func WithTTL(base, max time.Duration) Option {
	return func(c *CategorizationCache) {
		if base > 0 {
			c.baseTTL = base
		}
		if max >= c.baseTTL {
			c.maxTTL = max
		}
	}
}

// WithCapacity bounds the number of entries; 0 means unbounded.
func WithCapacity(n int) Option {
	return func(c *CategorizationCache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(c *CategorizationCache) {
		if now != nil {
			c.now = now
		}
	}
}

func New(opts ...Option) *CategorizationCache {
	c := &CategorizationCache{
		baseTTL: DefaultBaseTTL,
		maxTTL:  DefaultMaxTTL,
		now:     time.Now,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL is the lifetime of an entry that has been used usage times.
func (c *CategorizationCache) TTL(usage int) time.Duration {
	return AdaptiveTTL(usage, c.baseTTL, c.maxTTL)
}

// Get returns a copy of the analysis stored under key when it has not expired and
// counts the hit. Expired entries are reported as a miss and left in place.
func (c *CategorizationCache) Get(key string) (models.TransactionAnalysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return models.TransactionAnalysis{}, false
	}
	it := elem.Value.(*item)
	if c.expired(it.entry) {
		return models.TransactionAnalysis{}, false
	}

	it.entry.UsageCount++
	c.lru.MoveToFront(elem)
	return it.entry.Data.Clone(), true
}

// Put stores value under key with a fresh timestamp and a usage count of 1.
func (c *CategorizationCache) Put(key string, value models.TransactionAnalysis) {
	c.set(key, Entry{Data: value.Clone(), Timestamp: c.now(), UsageCount: 1})
}

// Lookup returns the raw entry, expired or not, without counting a hit.
func (c *CategorizationCache) Lookup(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[key]
	if !ok {
		return Entry{}, false
	}
	e := elem.Value.(*item).entry
	e.Data = e.Data.Clone()
	return e, true
}

func (c *CategorizationCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

// CleanExpired drops every expired entry and returns how many were removed.
func (c *CategorizationCache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stale []*list.Element
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		if c.expired(elem.Value.(*item).entry) {
			stale = append(stale, elem)
		}
	}
	for _, elem := range stale {
		c.remove(elem)
	}
	return len(stale)
}

func (c *CategorizationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *CategorizationCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

func (c *CategorizationCache) set(key string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*item).entry = e
		c.lru.MoveToFront(elem)
		return
	}

	c.items[key] = c.lru.PushFront(&item{key: key, entry: e})
	if c.capacity > 0 && c.lru.Len() > c.capacity {
		c.remove(c.lru.Back())
	}
}

func (c *CategorizationCache) expired(e Entry) bool {
	return c.now().Sub(e.Timestamp) >= c.TTL(e.UsageCount)
}

func (c *CategorizationCache) remove(elem *list.Element) {
	delete(c.items, elem.Value.(*item).key)
	c.lru.Remove(elem)
}

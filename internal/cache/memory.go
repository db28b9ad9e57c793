package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// MemoryBackend - потокобезопасный LRU-кэш в памяти процесса с TTL на запись
type MemoryBackend struct {
	maxEntries int
	clock      clockwork.Clock

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // последний использованный
	tail    *entry // давно не использованный

	generation atomic.Uint64 // вне LRU, не вытесняется
}

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
	prev      *entry
	next      *entry
}

// NewMemoryBackend создает LRU на maxEntries записей
func NewMemoryBackend(maxEntries int, clock clockwork.Clock) *MemoryBackend {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &MemoryBackend{
		maxEntries: maxEntries,
		clock:      clock,
		entries:    make(map[string]*entry),
	}
}

func (c *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		c.remove(e)
		return nil, false, nil
	}
	c.moveToFront(e)
	return e.value, true, nil
}

func (c *MemoryBackend) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(ttl)
	if e, ok := c.entries[key]; ok {
		e.value = val
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return nil
	}

	e := &entry{key: key, value: val, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
	return nil
}

func (c *MemoryBackend) Generation(context.Context) (uint64, error) {
	return c.generation.Load(), nil
}

func (c *MemoryBackend) BumpGeneration(context.Context) (uint64, error) {
	return c.generation.Add(1), nil
}

// Len возвращает число записей, включая еще не вычищенные просроченные
func (c *MemoryBackend) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryBackend) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *MemoryBackend) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *MemoryBackend) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *MemoryBackend) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}

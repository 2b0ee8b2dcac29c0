package tlsconf

import (
	"container/list"
	"sync"

	"github.com/tlsconf-go/tlsconf-go/internal/utils"
	"github.com/tlsconf-go/tlsconf-go/logging"
)

// A SessionCache is a bounded store of session records, keyed by
// session ID, shared by every handshake of a context. When a record
// over capacity must go, the least recently added one is dropped.
//
// The key index and the recency order are two views of one structure
// guarded by one mutex, so no operation can ever observe them apart.
type SessionCache struct {
	mutex sync.Mutex

	capacity int
	entries  map[string]*list.Element
	// order holds *cacheEntry values, most recently added in front.
	order *list.List

	clock  utils.Clock
	tracer logging.Tracer
}

type cacheEntry struct {
	key    string
	record *SessionRecord
}

// NewSessionCache creates a session cache holding up to capacity
// records. A capacity of zero leaves the cache unbounded.
func NewSessionCache(capacity int) *SessionCache {
	return newSessionCache(capacity, utils.DefaultClock{}, logging.NullTracer)
}

func newSessionCache(capacity int, clock utils.Clock, tracer logging.Tracer) *SessionCache {
	return &SessionCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		clock:    clock,
		tracer:   tracer,
	}
}

// Put stores a record, replacing any record already stored under the
// same session ID. It reports false, without modifying the cache, only
// when the very same record is already present. Records beyond
// capacity are evicted, least recently added first.
func (c *SessionCache) Put(record *SessionRecord) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := string(record.SessionID)
	var replaced bool
	if el, ok := c.entries[key]; ok {
		if el.Value.(*cacheEntry).record == record {
			return false
		}
		c.order.Remove(el)
		replaced = true
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, record: record})
	c.tracer.StoredSession(record.SessionID, replaced)

	if c.capacity > 0 {
		for c.order.Len() > c.capacity {
			c.evictOldest()
		}
	}
	return true
}

// caller must hold the mutex
func (c *SessionCache) evictOldest() {
	el := c.order.Back()
	entry := el.Value.(*cacheEntry)
	c.order.Remove(el)
	delete(c.entries, entry.key)
	c.tracer.EvictedSession(entry.record.SessionID)
}

// Get returns the record stored under the given session ID, or nil.
func (c *SessionCache) Get(sessionID []byte) *SessionRecord {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	el, ok := c.entries[string(sessionID)]
	if !ok {
		c.tracer.RetrievedSession(sessionID, false)
		return nil
	}
	c.tracer.RetrievedSession(sessionID, true)
	return el.Value.(*cacheEntry).record
}

// Remove drops a record from the cache. It only acts when the stored
// entry is the very same record: a different record sharing the
// session ID is left untouched and Remove reports false.
func (c *SessionCache) Remove(record *SessionRecord) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := string(record.SessionID)
	el, ok := c.entries[key]
	if !ok || el.Value.(*cacheEntry).record != record {
		c.tracer.RemovedSession(record.SessionID, false)
		return false
	}
	c.order.Remove(el)
	delete(c.entries, key)
	c.tracer.RemovedSession(record.SessionID, true)
	return true
}

// Len returns the number of records in the cache.
func (c *SessionCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.order.Len()
}

// Capacity returns the cache's capacity. Zero means unbounded.
func (c *SessionCache) Capacity() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.capacity
}

// SetCapacity changes the cache's capacity. Records already over the
// new capacity are not evicted until the next Put.
func (c *SessionCache) SetCapacity(capacity int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.capacity = capacity
}

// FlushExpired removes every record whose lifetime has run out and
// returns how many were dropped.
func (c *SessionCache) FlushExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.clock.Now()
	var removed int
	var next *list.Element
	for el := c.order.Front(); el != nil; el = next {
		next = el.Next()
		entry := el.Value.(*cacheEntry)
		if !entry.record.Expired(now) {
			continue
		}
		c.order.Remove(el)
		delete(c.entries, entry.key)
		removed++
	}
	c.tracer.FlushedSessions(removed)
	return removed
}

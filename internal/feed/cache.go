package feed

import (
	"sync"
	"time"

	"github.com/dimaskresna/lelang-bot/internal/model"
)

// Cache holds the most recent pushed snapshot per chat.
type Cache struct {
	mu     sync.RWMutex
	latest map[int64]model.Snapshot
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{latest: make(map[int64]model.Snapshot)}
}

// Put records the chat's newest snapshot.
func (c *Cache) Put(chatID int64, snap model.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest[chatID] = snap
}

// Latest returns the chat's most recent snapshot if it was captured within
// maxAge. Stale or missing snapshots report ok=false.
func (c *Cache) Latest(chatID int64, maxAge time.Duration) (model.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, ok := c.latest[chatID]
	if !ok {
		return model.Snapshot{}, false
	}
	if time.Since(snap.CapturedAt) > maxAge {
		return model.Snapshot{}, false
	}
	return snap, true
}

// Forget drops the chat's cached snapshot.
func (c *Cache) Forget(chatID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.latest, chatID)
}

// Package cache stores formatted menus per date with a 24h expiry. The cache
// is a pure optimization: every storage fault is swallowed and behaves as a
// miss (Get) or a no-op (Put), so callers never depend on it for correctness.
package cache

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"school-menu/internal/menu"
)

const keyPrefix = "school-menu-"

// TTL is how long a cached menu stays valid after it is stored.
const TTL = 24 * time.Hour

const (
	getEntrySQL     = `SELECT payload, expires_at FROM menu_cache WHERE cache_key = ?`
	putEntrySQL     = `INSERT OR REPLACE INTO menu_cache (cache_key, payload, stored_at, expires_at) VALUES (?, ?, ?, ?)`
	deleteEntrySQL  = `DELETE FROM menu_cache WHERE cache_key = ?`
	sweepExpiredSQL = `DELETE FROM menu_cache WHERE expires_at <= ?`
)

// entryValue is the JSON payload stored per cache row.
type entryValue struct {
	Data      menu.FormattedMenu `json:"data"`
	Timestamp int64              `json:"timestamp"`
	Expires   int64              `json:"expires"`
}

// MenuCache is a sqlite-backed expiring store of formatted menus keyed by date.
type MenuCache struct {
	db  *sql.DB
	now func() time.Time
}

// NewMenuCache creates a MenuCache over an existing database connection.
func NewMenuCache(db *sql.DB) *MenuCache {
	return &MenuCache{db: db, now: time.Now}
}

func cacheKey(date string) string {
	return keyPrefix + date
}

// Get returns the cached menu for a date if a non-expired entry exists.
// An expired entry is evicted as a side effect and reported as a miss.
func (c *MenuCache) Get(date string) (menu.FormattedMenu, bool) {
	var payload string
	var expiresAt int64
	err := c.db.QueryRow(getEntrySQL, cacheKey(date)).Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return menu.FormattedMenu{}, false
	}
	if err != nil {
		log.Printf("Cache read failed for %s, treating as miss: %v", date, err)
		return menu.FormattedMenu{}, false
	}

	if c.now().UnixMilli() >= expiresAt {
		c.evict(date)
		return menu.FormattedMenu{}, false
	}

	var value entryValue
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		log.Printf("Corrupt cache entry for %s, evicting: %v", date, err)
		c.evict(date)
		return menu.FormattedMenu{}, false
	}

	return value.Data, true
}

// Put stores the menu for a date, overwriting any previous entry. The entry
// expires TTL after now.
func (c *MenuCache) Put(date string, payload menu.FormattedMenu) {
	now := c.now()
	storedAt := now.UnixMilli()
	expiresAt := now.Add(TTL).UnixMilli()

	value, err := json.Marshal(entryValue{
		Data:      payload,
		Timestamp: storedAt,
		Expires:   expiresAt,
	})
	if err != nil {
		log.Printf("Failed to marshal cache entry for %s: %v", date, err)
		return
	}

	if _, err := c.db.Exec(putEntrySQL, cacheKey(date), string(value), storedAt, expiresAt); err != nil {
		log.Printf("Cache write failed for %s: %v", date, err)
	}
}

// SweepExpired evicts every entry whose expiry has passed. Intended to run
// once per widget activation, independent of any Get.
func (c *MenuCache) SweepExpired() {
	if _, err := c.db.Exec(sweepExpiredSQL, c.now().UnixMilli()); err != nil {
		log.Printf("Cache sweep failed: %v", err)
	}
}

func (c *MenuCache) evict(date string) {
	if _, err := c.db.Exec(deleteEntrySQL, cacheKey(date)); err != nil {
		log.Printf("Cache eviction failed for %s: %v", date, err)
	}
}

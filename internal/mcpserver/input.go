package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/gw2oas/document"
	"github.com/erraggy/gw2oas/pathmap"
)

// docInput represents the three ways a document can be provided to a tool.
// Exactly one of File, Content or Object must be set.
type docInput struct {
	File    string         `json:"file,omitempty"    jsonschema:"Path to a gateway declaration on disk"`
	Content string         `json:"content,omitempty" jsonschema:"Inline gateway declaration (JSON or YAML)"`
	Object  map[string]any `json:"object,omitempty"  jsonschema:"Gateway declaration as a JSON object. Keys are read in sorted order."`
}

// sourceCount returns how many of the input fields are set.
func (s docInput) sourceCount() int {
	n := 0
	if s.File != "" {
		n++
	}
	if s.Content != "" {
		n++
	}
	if s.Object != nil {
		n++
	}
	return n
}

// cacheEntry holds a cached parse result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *document.Result
	insertAt  time.Time
	expiresAt time.Time
}

// docCache is a session-scoped cache of decoded gateway declarations.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. Cached trees are shared, so callers must not mutate
// them; the converter only reads its input.
type docCache struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	ttl            time.Duration
	sweeperStarted atomic.Bool
}

func newDocCache(maxSize int, ttl time.Duration) *docCache {
	return &docCache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *docCache) get(key string) *document.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.result
	}
	return nil
}

// put stores a result, evicting the least recently used entry if at capacity.
func (c *docCache) put(key string, result *document.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now}
	if c.ttl > 0 {
		entry.expiresAt = now.Add(c.ttl)
	}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *docCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *docCache) startSweeper(ctx context.Context, interval time.Duration) {
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

// size returns the number of cached entries.
func (c *docCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey creates a cache key for the given input, or "" when it cannot be cached.
func (s docInput) cacheKey() string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// resolve decodes the declaration from whichever input was provided, using
// the cache when one is configured.
func (t *tools) resolve(s docInput) (*document.Result, error) {
	if n := s.sourceCount(); n != 1 {
		return nil, fmt.Errorf("exactly one of file, content or object must be provided (got %d)", n)
	}
	if s.Object != nil {
		// arguments arrive as unordered maps, so there is no source order to keep
		return &document.Result{Value: pathmap.FromPlain(s.Object), Format: document.FormatJSON}, nil
	}

	if s.Content != "" && int64(len(s.Content)) > t.cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set GW2OAS_MAX_INLINE_SIZE to increase",
			len(s.Content), t.cfg.MaxInlineSize)
	}

	var key string
	if t.cache != nil {
		key = s.cacheKey()
		if key != "" {
			if cached := t.cache.get(key); cached != nil {
				t.logger.Debug("gateway declaration cache hit", "key", key)
				return cached, nil
			}
		}
	}

	var (
		result *document.Result
		err    error
	)
	if s.File != "" {
		result, err = document.ParseFile(s.File)
	} else {
		result, err = document.ParseBytes([]byte(s.Content))
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		t.cache.put(key, result)
	}
	return result, nil
}

package parsing

import (
	"fmt"
	"os"
	"time"

	"github.com/NickyBoy89/viewstategen/symbol"
	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
)

// DefaultCacheSize is the number of parsed files kept between builds
const DefaultCacheSize = 4096

type cacheEntry struct {
	size    int64
	modTime time.Time
	symbols *symbol.FileScope
}

// Cache keeps the symbol tables of parsed files, keyed by path. An entry is
// reused only while the file's size and modification time are unchanged.
type Cache struct {
	entries *lru.Cache[string, cacheEntry]
}

// NewCache creates a cache holding at most size files
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("creating parse cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Load returns the symbol table of the file at path, parsing it only if it
// changed since it was last loaded
func (c *Cache) Load(path string) (*symbol.FileScope, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if entry, ok := c.entries.Get(path); ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		log.WithField("file", path).Debug("Using cached symbols")
		return entry.symbols, nil
	}

	file, err := ReadSourceFile(path)
	if err != nil {
		return nil, err
	}
	symbols, err := file.Parse()
	if err != nil {
		c.entries.Remove(path)
		return nil, err
	}

	c.entries.Add(path, cacheEntry{
		size:    info.Size(),
		modTime: info.ModTime(),
		symbols: symbols,
	})
	return symbols, nil
}

// Len returns the number of cached files
func (c *Cache) Len() int {
	return c.entries.Len()
}

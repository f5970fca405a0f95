package render

import (
	"container/list"
	"image"
	"sync"

	"github.com/jasonppy/bear-map/pkg/raster"
)

// CachedSource keeps decoded tiles in memory in front of another source,
// evicting the least recently used tile once a byte budget is exceeded.
// Sizes are estimated from pixel area at four bytes per pixel.
type CachedSource struct {
	src       TileSource
	maxMemory int64
	used      int64
	tiles     map[string]*cacheEntry
	lru       *list.List
	mu        sync.Mutex
}

type cacheEntry struct {
	key     string
	img     image.Image
	size    int64
	element *list.Element
}

// NewCachedSource wraps src with an LRU cache limited to maxMemoryBytes.
// A limit of zero or below disables eviction.
func NewCachedSource(src TileSource, maxMemoryBytes int64) *CachedSource {
	return &CachedSource{
		src:       src,
		maxMemory: maxMemoryBytes,
		tiles:     make(map[string]*cacheEntry),
		lru:       list.New(),
	}
}

// Tile returns the cached image for id, fetching it from the underlying
// source on a miss.
func (c *CachedSource) Tile(id raster.TileID) (image.Image, error) {
	key := id.String()

	c.mu.Lock()
	if entry, ok := c.tiles[key]; ok {
		c.lru.MoveToFront(entry.element)
		img := entry.img
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()

	img, err := c.src.Tile(id)
	if err != nil {
		return nil, err
	}
	c.add(key, img)
	return img, nil
}

// Stats reports the number of cached tiles and the estimated bytes held.
func (c *CachedSource) Stats() (tiles int, usedBytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tiles), c.used
}

func (c *CachedSource) add(key string, img image.Image) {
	size := estimateImageMemory(img)

	c.mu.Lock()
	defer c.mu.Unlock()

	// A concurrent fetch may have won the race.
	if entry, ok := c.tiles[key]; ok {
		c.lru.MoveToFront(entry.element)
		return
	}
	if c.maxMemory > 0 && size > c.maxMemory {
		// Larger than the whole budget; serve it uncached.
		return
	}
	if c.maxMemory > 0 {
		for c.used+size > c.maxMemory && c.lru.Len() > 0 {
			c.evictLRU()
		}
	}

	entry := &cacheEntry{key: key, img: img, size: size}
	entry.element = c.lru.PushFront(entry)
	c.tiles[key] = entry
	c.used += size
}

// evictLRU drops the least recently used tile. Callers hold c.mu.
func (c *CachedSource) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*cacheEntry)
	c.lru.Remove(elem)
	delete(c.tiles, entry.key)
	c.used -= entry.size
}

func estimateImageMemory(img image.Image) int64 {
	b := img.Bounds()
	return int64(b.Dx()) * int64(b.Dy()) * 4
}

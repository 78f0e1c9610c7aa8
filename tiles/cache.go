package tiles

import (
	"image"
	"time"

	"gioui.org/op/paint"
	gocache "github.com/patrickmn/go-cache"
)

// Cache is an in-memory store keyed by tile URL. Entries expire after the
// expiration passed to the constructor.
type Cache[V any] struct {
	cache *gocache.Cache
}

func newCache[V any](expiration time.Duration) *Cache[V] {
	return &Cache[V]{
		cache: gocache.New(expiration, 2*expiration),
	}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	val, ok := c.cache.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := val.(V)
	return v, ok
}

func (c *Cache[V]) Set(key string, value V) {
	c.cache.Set(key, value, gocache.DefaultExpiration)
}

func (c *Cache[V]) Delete(key string) {
	c.cache.Delete(key)
}

func (c *Cache[V]) Len() int {
	return c.cache.ItemCount()
}

func (c *Cache[V]) Clear() {
	c.cache.Flush()
}

// ImageCache holds decoded tile images.
type ImageCache = Cache[image.Image]

// ImageOpCache holds uploaded Gio image operations so a tile is not
// re-uploaded on every frame.
type ImageOpCache = Cache[paint.ImageOp]

func NewImageCache(expiration time.Duration) *ImageCache {
	return newCache[image.Image](expiration)
}

func NewImageOpCache(expiration time.Duration) *ImageOpCache {
	return newCache[paint.ImageOp](expiration)
}

// Package tiles loads, caches and positions slippy-map tile images for the
// map widget.
package tiles

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/olablt/gio-basemaps/tiles/worker"
)

type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusLoading:
		return "loading"
	case StatusFailed:
		return "unavailable"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Request asks for the tile at URL. Tile and Size only label the placeholder.
type Request struct {
	URL  string
	Tile Tile
	Size int
}

// Result is what to draw for a request right now. Key identifies Image and
// is stable across frames, so it can key an ImageOpCache.
type Result struct {
	Key    string
	Image  image.Image
	Status Status
}

type Options struct {
	Workers    int
	Timeout    time.Duration // per tile
	Expiration time.Duration // of decoded tiles
	RetryAfter time.Duration // after a failed load
	Logger     *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.Expiration <= 0 {
		o.Expiration = 30 * time.Minute
	}
	if o.RetryAfter <= 0 {
		o.RetryAfter = 30 * time.Second
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// TileManager serves tiles from memory and loads missing ones in the
// background, handing out placeholders meanwhile.
type TileManager struct {
	fetcher      Fetcher
	opts         Options
	cache        *ImageCache
	placeholders *ImageCache
	failed       *gocache.Cache
	pool         *worker.Pool
	logger       *slog.Logger

	mu      sync.Mutex
	loading map[string]bool
	onLoad  func()
}

func NewTileManager(fetcher Fetcher, opts Options) *TileManager {
	opts = opts.withDefaults()
	return &TileManager{
		fetcher:      fetcher,
		opts:         opts,
		cache:        NewImageCache(opts.Expiration),
		placeholders: NewImageCache(opts.Expiration),
		failed:       gocache.New(opts.RetryAfter, 2*opts.RetryAfter),
		pool:         worker.NewPool(opts.Workers),
		logger:       opts.Logger,
		loading:      make(map[string]bool),
	}
}

// SetOnLoadCallback registers a function called from a worker goroutine
// whenever a load finishes.
func (tm *TileManager) SetOnLoadCallback(callback func()) {
	tm.mu.Lock()
	tm.onLoad = callback
	tm.mu.Unlock()
}

// GetTileKey returns a unique string key for a tile
func GetTileKey(tile Tile) string {
	return fmt.Sprintf("%d/%d/%d", tile.Zoom, tile.X, tile.Y)
}

// Tile never blocks. It returns the cached image, or a placeholder while the
// tile loads or after it failed.
func (tm *TileManager) Tile(req Request) Result {
	if res, ok := tm.lookup(req); ok {
		return res
	}
	return tm.schedule(req)
}

// lookup returns the loaded tile or, after a recent failure, its placeholder.
func (tm *TileManager) lookup(req Request) (Result, bool) {
	if img, ok := tm.cache.Get(req.URL); ok {
		return Result{Key: req.URL, Image: img, Status: StatusReady}, true
	}
	if _, failed := tm.failed.Get(req.URL); failed {
		return tm.placeholder(req, StatusFailed), true
	}
	return Result{}, false
}

// schedule submits a load for req unless one is running. load fills the
// caches before it clears tm.loading, so they are checked again under tm.mu.
func (tm *TileManager) schedule(req Request) Result {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if res, ok := tm.lookup(req); ok {
		return res
	}
	if !tm.loading[req.URL] {
		tm.loading[req.URL] = true
		if !tm.pool.Submit(worker.Task{Work: func(ctx context.Context) { tm.load(ctx, req.URL) }}) {
			// Pool is saturated; the next frame asks again.
			delete(tm.loading, req.URL)
		}
	}
	return tm.placeholder(req, StatusLoading)
}

func (tm *TileManager) placeholder(req Request, status Status) Result {
	key := fmt.Sprintf("placeholder/%s/%s/%d", status, GetTileKey(req.Tile), req.Size)
	img, ok := tm.placeholders.Get(key)
	if !ok {
		img = Placeholder(req.Tile, status, req.Size)
		tm.placeholders.Set(key, img)
	}
	return Result{Key: key, Image: img, Status: status}
}

func (tm *TileManager) load(ctx context.Context, url string) {
	ctx, cancel := context.WithTimeout(ctx, tm.opts.Timeout)
	defer cancel()

	start := time.Now()
	img, err := tm.fetcher.Fetch(ctx, url)
	if err != nil {
		tm.logger.Debug("tile load failed", "url", url, "err", err)
		tm.failed.Set(url, err, gocache.DefaultExpiration)
	} else {
		tm.logger.Debug("tile loaded", "url", url, "elapsed", time.Since(start))
		tm.cache.Set(url, img)
	}

	tm.mu.Lock()
	delete(tm.loading, url)
	onLoad := tm.onLoad
	tm.mu.Unlock()

	if onLoad != nil {
		onLoad()
	}
}

// Loading returns the number of tiles being fetched.
func (tm *TileManager) Loading() int {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return len(tm.loading)
}

// Close stops background loads and waits for them to return.
func (tm *TileManager) Close() {
	tm.pool.Shutdown()
}

// Package assets handles map image loading and caching.
package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/blockfield/internal/logger"
)

// File suffixes of the heightmap/colormap pair that make up a map.
const (
	HeightSuffix = ".height.png"
	ColorSuffix  = ".color.png"
)

// Map holds the decoded image pair for one named map.
type Map struct {
	Name      string
	Heightmap image.Image
	Colormap  image.Image
}

// Manager loads map images from a filesystem.
type Manager struct {
	fsys  fs.FS
	cache *Cache
}

// NewManager creates a manager reading from fsys.
func NewManager(fsys fs.FS) *Manager {
	return &Manager{
		fsys:  fsys,
		cache: NewCache(),
	}
}

// NewDirManager creates a manager reading from a directory on disk.
func NewDirManager(dir string) *Manager {
	return NewManager(os.DirFS(dir))
}

// Cache returns the raw byte cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Maps lists the names of every complete heightmap/colormap pair, sorted.
func (m *Manager) Maps() ([]string, error) {
	heights, err := fs.Glob(m.fsys, "*"+HeightSuffix)
	if err != nil {
		return nil, fmt.Errorf("listing maps: %w", err)
	}

	var names []string
	for _, h := range heights {
		name := strings.TrimSuffix(path.Base(h), HeightSuffix)
		if _, err := fs.Stat(m.fsys, name+ColorSuffix); err != nil {
			logger.Debug("skipping map without colormap", zap.String("map", name))
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the raw bytes of a file, consulting the cache first.
func (m *Manager) Read(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	data, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	m.cache.Set(name, data)
	return data, nil
}

// LoadImage reads and decodes a PNG.
func (m *Manager) LoadImage(name string) (image.Image, error) {
	data, err := m.Read(name)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// LoadMap fetches and decodes both images of a map in parallel.
func (m *Manager) LoadMap(ctx context.Context, name string) (*Map, error) {
	if name == "" {
		return nil, fmt.Errorf("empty map name")
	}

	result := &Map{Name: name}
	g, ctx := errgroup.WithContext(ctx)

	load := func(file string, dst *image.Image) func() error {
		return func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := m.LoadImage(file)
			if err != nil {
				return err
			}
			*dst = img
			return nil
		}
	}
	g.Go(load(name+HeightSuffix, &result.Heightmap))
	g.Go(load(name+ColorSuffix, &result.Colormap))

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading map %s: %w", name, err)
	}
	return result, nil
}

// Cache is a simple in-memory cache for loaded files.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	// Write lock: the stats counters change on every lookup
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

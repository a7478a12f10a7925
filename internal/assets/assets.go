// Package assets handles asset loading and caching from layered directories.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when no layer holds the requested file.
var ErrNotFound = errors.New("asset not found")

type layer struct {
	name string
	fsys fs.FS
}

// Manager reads assets from a stack of file systems.
// Layers are searched in reverse order (last added = highest priority).
type Manager struct {
	layers []layer
	cache  *Cache
	mu     sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddDir adds a directory layer.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening asset dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("opening asset dir %s: not a directory", dir)
	}
	m.AddFS(dir, os.DirFS(dir))
	return nil
}

// AddFS adds a file system layer, e.g. an embed.FS.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.layers = append(m.layers, layer{name: name, fsys: fsys})
	m.mu.Unlock()
}

// Layers returns the layer names in priority order, highest first.
func (m *Manager) Layers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.layers))
	for i := len(m.layers) - 1; i >= 0; i-- {
		names = append(names, m.layers[i].name)
	}
	return names
}

// Load loads a file. Absolute paths bypass the layers.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	if filepath.IsAbs(name) {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		m.cache.Set(name, data)
		return data, nil
	}

	key := path.Clean(filepath.ToSlash(name))
	if !fs.ValidPath(key) {
		return nil, fmt.Errorf("invalid asset path %q", name)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.layers[i].fsys, key)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Close drops every layer and the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layers = nil
	m.cache.Clear()
}

// Cache returns the asset cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
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

// Stats returns the cache hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

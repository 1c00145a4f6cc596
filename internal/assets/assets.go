// Package assets handles game asset loading and caching.
//
// Assets are resolved through a stack of sources: the embedded defaults
// shipped in the binary, then any data directories added at startup. Later
// sources take priority, so a directory can override an embedded file.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/wolfcast/internal/logger"
	"github.com/Faultbox/wolfcast/pkg/formats"
)

//go:embed data
var embedded embed.FS

// ErrNotFound is returned when no source holds the requested path.
var ErrNotFound = errors.New("asset not found")

// Source is one place assets can come from.
type Source interface {
	Name() string
	Read(path string) ([]byte, error)
}

// fsSource reads from an fs.FS.
type fsSource struct {
	name string
	fsys fs.FS
}

func (s *fsSource) Name() string { return s.name }

func (s *fsSource) Read(p string) ([]byte, error) {
	return fs.ReadFile(s.fsys, p)
}

// Embedded returns the defaults compiled into the binary.
func Embedded() Source {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return &fsSource{name: "embedded", fsys: sub}
}

// Dir returns a source reading from a directory on disk.
func Dir(root string) Source {
	return &fsSource{name: root, fsys: os.DirFS(root)}
}

// FS wraps an arbitrary file system, mostly for tests.
func FS(name string, fsys fs.FS) Source {
	return &fsSource{name: name, fsys: fsys}
}

// Manager handles asset lookups across sources.
type Manager struct {
	sources []Source
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a manager with the embedded defaults as its only source.
func NewManager() *Manager {
	m := &Manager{cache: NewCache()}
	m.AddSource(Embedded())
	return m
}

// AddSource adds a source. Sources are searched in reverse order (last
// added = highest priority).
func (m *Manager) AddSource(s Source) {
	m.mu.Lock()
	m.sources = append(m.sources, s)
	m.mu.Unlock()
	m.cache.Clear()
}

// AddDir adds a data directory after checking it exists.
func (m *Manager) AddDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("opening data dir %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", root)
	}
	m.AddSource(Dir(root))
	logger.Info("data dir added", zap.String("path", root))
	return nil
}

// Load returns the contents of an asset path such as "textures/1.png".
func (m *Manager) Load(p string) ([]byte, error) {
	p = path.Clean(filepath.ToSlash(p))
	if data, ok := m.cache.Get(p); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := m.sources[i].Read(p)
		if err == nil {
			m.cache.Set(p, data)
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
}

// Exists reports whether any source holds p.
func (m *Manager) Exists(p string) bool {
	_, err := m.Load(p)
	return err == nil
}

// LoadMap resolves a level by name. A path to an existing file is read
// directly; otherwise maps/<name>.wmap and maps/<name>.yaml are tried.
func (m *Manager) LoadMap(name string) (*formats.Map, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return formats.LoadMapFile(name)
	}

	for _, ext := range []string{".wmap", ".yaml"} {
		data, err := m.Load("maps/" + name + ext)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return formats.DecodeMap(data)
	}
	return nil, fmt.Errorf("%w: map %s", ErrNotFound, name)
}

// Cache returns the manager's cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close drops all sources and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = nil
	m.cache.Clear()
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

// Len returns the number of cached entries.
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

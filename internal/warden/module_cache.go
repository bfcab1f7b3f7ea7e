package warden

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ModuleCache assembles modules downloaded in chunks and keeps finished
// blobs on disk keyed by MD5, so a reconnect skips the download.
type ModuleCache struct {
	dir string

	mu      sync.Mutex
	pending map[[md5.Size]byte][]byte
}

// DefaultModuleCacheDir returns ~/.local/share/wowee/warden_cache,
// or ./warden_cache when the home directory is unknown.
func DefaultModuleCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "warden_cache"
	}
	return filepath.Join(home, ".local", "share", "wowee", "warden_cache")
}

// NewModuleCache creates dir if needed.
func NewModuleCache(dir string) (*ModuleCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating module cache dir: %w", err)
	}
	return &ModuleCache{
		dir:     dir,
		pending: make(map[[md5.Size]byte][]byte),
	}, nil
}

func (c *ModuleCache) path(sum [md5.Size]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".wdn")
}

// AddChunk appends a download chunk and returns the bytes received so far.
func (c *ModuleCache) AddChunk(sum [md5.Size]byte, chunk []byte) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[sum] = append(c.pending[sum], chunk...)
	return len(c.pending[sum])
}

// Complete finishes a download: the blob must hash to sum. It is written to
// disk and returned.
func (c *ModuleCache) Complete(sum [md5.Size]byte) ([]byte, error) {
	c.mu.Lock()
	blob := c.pending[sum]
	delete(c.pending, sum)
	c.mu.Unlock()

	if md5.Sum(blob) != sum {
		return nil, ErrChecksum
	}
	if err := os.WriteFile(c.path(sum), blob, 0o644); err != nil {
		return nil, fmt.Errorf("caching module: %w", err)
	}
	return blob, nil
}

// Load returns a cached blob. Corrupt cache entries are removed.
func (c *ModuleCache) Load(sum [md5.Size]byte) ([]byte, bool) {
	blob, err := os.ReadFile(c.path(sum))
	if err != nil {
		return nil, false
	}
	if md5.Sum(blob) != sum {
		os.Remove(c.path(sum))
		return nil, false
	}
	return blob, true
}

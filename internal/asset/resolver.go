// Package asset resolves virtual game paths against loose-file overlays, the
// expansion manifest and the archive layer, with a decompression cache.
package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/udisondev/wowee/internal/asset/manifest"
)

const dbcDir = `dbfilesclient\`

// Options configures Open.
type Options struct {
	DataDir string
	Archive ArchiveOptions

	// CacheBudget in bytes; 0 derives it from system memory.
	CacheBudget int64

	// ManifestIndex enables the CBOR index next to manifest files.
	ManifestIndex bool
}

type overlay struct {
	id       string
	priority int
	m        *manifest.Manifest
}

// Resolver is the virtual filesystem. Safe for concurrent use.
type Resolver struct {
	archives      *ArchiveSet
	manifestIndex bool

	layersMu sync.RWMutex
	overlays []overlay // priority descending
	base     *manifest.Manifest

	cache *fileCache
	group singleflight.Group

	missMu  sync.Mutex
	missing map[string]struct{}

	dbc *gocache.Cache
}

// NewResolver wraps an archive set. budget <= 0 uses DefaultCacheBudget.
func NewResolver(archives *ArchiveSet, budget int64) *Resolver {
	if archives == nil {
		archives = NewArchiveSet("")
	}
	if budget <= 0 {
		budget = DefaultCacheBudget()
	}
	return &Resolver{
		archives: archives,
		cache:    newFileCache(budget),
		missing:  make(map[string]struct{}),
		dbc:      gocache.New(gocache.NoExpiration, 0),
	}
}

// Open opens the archive layer under opts.DataDir and returns a resolver.
func Open(ctx context.Context, opts Options) (*Resolver, error) {
	set, err := OpenArchives(ctx, opts.DataDir, opts.Archive)
	if err != nil {
		return nil, err
	}
	r := NewResolver(set, opts.CacheBudget)
	r.manifestIndex = opts.ManifestIndex
	slog.Info("asset resolver initialized",
		"data_dir", opts.DataDir,
		"archives", set.Len(),
		"cache_budget_mb", r.cache.budget>>20)
	return r, nil
}

// Close logs cache statistics and closes the archives.
func (r *Resolver) Close() error {
	st := r.Stats()
	if st.Hits+st.Misses > 0 {
		slog.Info("asset cache stats",
			"hits", st.Hits,
			"misses", st.Misses,
			"hit_rate", fmt.Sprintf("%.0f%%", st.HitRate()*100),
			"cached_mb", st.Bytes>>20)
	}
	r.ClearCache()
	return r.archives.Close()
}

// Normalize lower-cases p and converts '/' to '\'.
func Normalize(p string) string {
	return manifest.Normalize(p)
}

func (r *Resolver) loadManifest(path string) (*manifest.Manifest, error) {
	if r.manifestIndex {
		return manifest.LoadCached(path)
	}
	return manifest.Load(path)
}

// SetBaseManifest replaces the expansion manifest; nil removes it.
func (r *Resolver) SetBaseManifest(m *manifest.Manifest) {
	r.layersMu.Lock()
	r.base = m
	r.layersMu.Unlock()
	r.invalidate()
}

// LoadBaseManifest loads the expansion manifest from path.
func (r *Resolver) LoadBaseManifest(path string) error {
	m, err := r.loadManifest(path)
	if err != nil {
		return err
	}
	r.SetBaseManifest(m)
	return nil
}

// AddOverlay stacks m above the base layers.
func (r *Resolver) AddOverlay(m *manifest.Manifest, priority int, id string) error {
	r.layersMu.Lock()
	if slices.ContainsFunc(r.overlays, func(o overlay) bool { return o.id == id }) {
		r.layersMu.Unlock()
		return fmt.Errorf("overlay %q: %w", id, ErrDuplicateOverlay)
	}
	r.overlays = append(r.overlays, overlay{id: id, priority: priority, m: m})
	slices.SortStableFunc(r.overlays, func(a, b overlay) int {
		return b.priority - a.priority
	})
	r.layersMu.Unlock()

	r.invalidate()
	slog.Info("overlay added", "id", id, "priority", priority, "entries", m.Len())
	return nil
}

// AddOverlayManifest loads the manifest at path and stacks it as id.
func (r *Resolver) AddOverlayManifest(path string, priority int, id string) error {
	m, err := r.loadManifest(path)
	if err != nil {
		return fmt.Errorf("overlay %q: %w", id, err)
	}
	return r.AddOverlay(m, priority, id)
}

// RemoveOverlay drops the overlay with id.
func (r *Resolver) RemoveOverlay(id string) error {
	r.layersMu.Lock()
	n := len(r.overlays)
	r.overlays = slices.DeleteFunc(r.overlays, func(o overlay) bool { return o.id == id })
	removed := len(r.overlays) != n
	r.layersMu.Unlock()

	if !removed {
		return fmt.Errorf("overlay %q: %w", id, ErrNotFound)
	}
	r.invalidate()
	slog.Info("overlay removed", "id", id)
	return nil
}

// Overlays returns overlay ids in resolution order.
func (r *Resolver) Overlays() []string {
	r.layersMu.RLock()
	defer r.layersMu.RUnlock()
	ids := make([]string, len(r.overlays))
	for i, o := range r.overlays {
		ids[i] = o.id
	}
	return ids
}

// manifests returns the manifest layers in resolution order.
func (r *Resolver) manifests() []*manifest.Manifest {
	r.layersMu.RLock()
	defer r.layersMu.RUnlock()
	out := make([]*manifest.Manifest, 0, len(r.overlays)+1)
	for _, o := range r.overlays {
		out = append(out, o.m)
	}
	if r.base != nil {
		out = append(out, r.base)
	}
	return out
}

// invalidate drops cached bytes after the layer stack changed.
func (r *Resolver) invalidate() {
	r.cache.clear()
}

// Read returns the bytes for path. The returned slice is shared with the
// cache and must not be modified. A path no layer has yields ErrMissingAsset.
func (r *Resolver) Read(path string) ([]byte, error) {
	key := Normalize(path)
	if data, ok := r.cache.get(key); ok {
		return data, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		gen := r.cache.generation()
		data, err := r.load(key)
		if err != nil {
			return nil, err
		}
		r.cache.put(key, data, gen)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// ReadFile is Read that reports any failure as an empty result.
func (r *Resolver) ReadFile(path string) []byte {
	data, err := r.Read(path)
	if err != nil {
		if !errors.Is(err, ErrMissingAsset) {
			slog.Warn("asset read failed", "path", path, "err", err)
		}
		return nil
	}
	return data
}

func (r *Resolver) load(key string) ([]byte, error) {
	for _, m := range r.manifests() {
		if !m.Has(key) {
			continue
		}
		data, err := m.ReadFile(key)
		if err == nil {
			return data, nil
		}
		// I/O ошибки логируем каждый раз и идём дальше по слоям
		slog.Warn("manifest entry unreadable", "path", key, "manifest", m.Path(), "err", err)
	}

	data, err := r.archives.ReadFile(key)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrMissingAsset) {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	r.logMissingOnce(key)
	return nil, fmt.Errorf("%s: %w", key, ErrMissingAsset)
}

func (r *Resolver) logMissingOnce(key string) {
	r.missMu.Lock()
	_, seen := r.missing[key]
	if !seen {
		r.missing[key] = struct{}{}
	}
	r.missMu.Unlock()
	if !seen {
		slog.Warn("file not found", "path", key)
	}
}

// FileExists reports whether any layer has path.
func (r *Resolver) FileExists(path string) bool {
	key := Normalize(path)
	for _, m := range r.manifests() {
		if m.Has(key) {
			return true
		}
	}
	return r.archives.Has(key)
}

// FileSize returns the size of path from the first layer that has it.
func (r *Resolver) FileSize(path string) (int64, bool) {
	key := Normalize(path)
	for _, m := range r.manifests() {
		if e, ok := m.Lookup(key); ok {
			return int64(e.Size), true
		}
	}
	return r.archives.FileSize(key)
}

// ClearCache drops cached files and DBC tables.
func (r *Resolver) ClearCache() {
	r.cache.clear()
	r.dbc.Flush()
	slog.Info("asset cache cleared")
}

// Stats returns a snapshot of the decompression cache.
func (r *Resolver) Stats() CacheStats {
	return r.cache.stats()
}

// LoadDBC returns the parsed DBFilesClient\name table, loading it on first use.
func (r *Resolver) LoadDBC(name string) (*DBC, error) {
	key := Normalize(name)
	if v, ok := r.dbc.Get(key); ok {
		return v.(*DBC), nil
	}

	data, err := r.Read(dbcDir + key)
	if err != nil {
		return nil, fmt.Errorf("dbc %s: %w", name, err)
	}
	d, err := ParseDBC(data)
	if err != nil {
		return nil, fmt.Errorf("dbc %s: %w", name, err)
	}
	r.dbc.SetDefault(key, d)
	slog.Info("dbc loaded", "name", name, "records", d.RecordCount())
	return d, nil
}

// DBC returns an already loaded table.
func (r *Resolver) DBC(name string) (*DBC, bool) {
	v, ok := r.dbc.Get(Normalize(name))
	if !ok {
		return nil, false
	}
	return v.(*DBC), true
}

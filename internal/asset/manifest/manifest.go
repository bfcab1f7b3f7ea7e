// Package manifest reads the JSON index that maps virtual asset paths to
// extracted loose files on disk.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"iter"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
)

const (
	supportedVersion = 1
	defaultBasePath  = "assets"

	// IndexSuffix is appended to the manifest path for the CBOR index cache.
	IndexSuffix = ".cbor"
)

var (
	// ErrUnsupportedVersion is returned for manifests with version != 1.
	ErrUnsupportedVersion = errors.New("unsupported manifest version")

	// ErrNoEntries is returned when the entries object is missing.
	ErrNoEntries = errors.New("manifest has no entries object")

	// ErrNotInManifest is returned for paths the manifest does not list.
	ErrNotInManifest = errors.New("path not in manifest")
)

// Entry is one indexed file.
type Entry struct {
	Path  string `cbor:"1,keyasint"`
	Size  uint64 `cbor:"2,keyasint"`
	CRC32 uint32 `cbor:"3,keyasint"`
}

// Verify reports whether data matches the recorded size and checksum.
// Entries without a checksum only check the size.
func (e Entry) Verify(data []byte) bool {
	if uint64(len(data)) != e.Size {
		return false
	}
	return e.CRC32 == 0 || crc32.ChecksumIEEE(data) == e.CRC32
}

// Manifest maps normalised virtual paths (lower case, backslashes) to entries.
// Immutable after load.
type Manifest struct {
	path     string
	basePath string
	entries  map[string]Entry
}

type fileJSON struct {
	Version  int                  `json:"version"`
	BasePath *string              `json:"basePath"`
	Entries  map[string]entryJSON `json:"entries"`
}

type entryJSON struct {
	P string `json:"p"`
	S uint64 `json:"s"`
	H string `json:"h"`
}

// index is the CBOR sidecar layout. BasePath is stored as written in the JSON.
type index struct {
	Version  int              `cbor:"1,keyasint"`
	BasePath string           `cbor:"2,keyasint"`
	Entries  map[string]Entry `cbor:"3,keyasint"`
}

// New builds a manifest from entries; keys are normalised. basePath is used as is.
func New(basePath string, entries map[string]Entry) *Manifest {
	m := &Manifest{basePath: basePath, entries: make(map[string]Entry, len(entries))}
	for k, e := range entries {
		m.entries[Normalize(k)] = e
	}
	return m
}

// Load parses a manifest JSON file.
func Load(path string) (*Manifest, error) {
	start := time.Now()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	idx, err := decodeJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	m := fromIndex(path, idx)
	slog.Info("asset manifest loaded", "path", path, "entries", len(m.entries),
		"base", m.basePath, "took", time.Since(start))
	return m, nil
}

// LoadCached is Load backed by a CBOR index next to the manifest. The index
// is used when it is not older than the JSON; otherwise the JSON is parsed and
// the index rewritten. Index failures only cost a JSON parse.
func LoadCached(path string) (*Manifest, error) {
	indexPath := path + IndexSuffix
	if m, ok := loadIndex(path, indexPath); ok {
		return m, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	idx, err := decodeJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	if err := writeIndex(indexPath, idx); err != nil {
		slog.Warn("writing manifest index", "path", indexPath, "err", err)
	}
	m := fromIndex(path, idx)
	slog.Info("asset manifest loaded", "path", path, "entries", len(m.entries), "base", m.basePath)
	return m, nil
}

func loadIndex(path, indexPath string) (*Manifest, bool) {
	js, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	is, err := os.Stat(indexPath)
	if err != nil || is.ModTime().Before(js.ModTime()) {
		return nil, false
	}
	raw, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, false
	}
	var idx index
	if err := cbor.Unmarshal(raw, &idx); err != nil || idx.Version != supportedVersion {
		slog.Debug("ignoring stale manifest index", "path", indexPath, "err", err)
		return nil, false
	}
	m := fromIndex(path, idx)
	slog.Info("asset manifest loaded from index", "path", indexPath, "entries", len(m.entries))
	return m, true
}

func writeIndex(indexPath string, idx index) error {
	raw, err := cbor.Marshal(idx)
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	tmp := indexPath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, indexPath)
}

func decodeJSON(raw []byte) (index, error) {
	var f fileJSON
	if err := json.Unmarshal(raw, &f); err != nil {
		return index{}, fmt.Errorf("parsing json: %w", err)
	}
	if f.Version != supportedVersion {
		return index{}, fmt.Errorf("version %d: %w", f.Version, ErrUnsupportedVersion)
	}
	if f.Entries == nil {
		return index{}, ErrNoEntries
	}

	idx := index{
		Version:  f.Version,
		BasePath: defaultBasePath,
		Entries:  make(map[string]Entry, len(f.Entries)),
	}
	if f.BasePath != nil {
		idx.BasePath = *f.BasePath
	}
	for k, e := range f.Entries {
		var sum uint32
		if e.H != "" {
			v, err := strconv.ParseUint(strings.TrimPrefix(e.H, "0x"), 16, 32)
			if err != nil {
				slog.Debug("bad manifest checksum", "path", k, "h", e.H)
			}
			sum = uint32(v)
		}
		idx.Entries[k] = Entry{Path: e.P, Size: e.S, CRC32: sum}
	}
	return idx, nil
}

func fromIndex(path string, idx index) *Manifest {
	base := idx.BasePath
	if base != "" && !filepath.IsAbs(base) {
		base = filepath.Join(filepath.Dir(path), base)
	}
	m := New(base, idx.Entries)
	m.path = path
	return m
}

// Normalize lower-cases a virtual path and converts '/' to '\'.
func Normalize(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, "/", "\\"))
}

// Path returns the manifest file this was loaded from.
func (m *Manifest) Path() string { return m.path }

// BasePath returns the resolved directory entry paths are relative to.
func (m *Manifest) BasePath() string { return m.basePath }

// Len returns the number of entries.
func (m *Manifest) Len() int { return len(m.entries) }

// Entries iterates over the entries in no particular order.
func (m *Manifest) Entries() iter.Seq2[string, Entry] {
	return maps.All(m.entries)
}

// Lookup returns the entry for a normalised virtual path.
func (m *Manifest) Lookup(vpath string) (Entry, bool) {
	e, ok := m.entries[vpath]
	return e, ok
}

// Has reports whether vpath is listed.
func (m *Manifest) Has(vpath string) bool {
	_, ok := m.entries[vpath]
	return ok
}

// Resolve returns the filesystem path for vpath.
func (m *Manifest) Resolve(vpath string) (string, bool) {
	e, ok := m.entries[vpath]
	if !ok {
		return "", false
	}
	return filepath.Join(m.basePath, filepath.FromSlash(strings.ReplaceAll(e.Path, "\\", "/"))), true
}

// ReadFile reads the loose file behind vpath. Each call opens its own
// descriptor, so concurrent reads need no locking.
func (m *Manifest) ReadFile(vpath string) ([]byte, error) {
	fsPath, ok := m.Resolve(vpath)
	if !ok {
		return nil, ErrNotInManifest
	}
	data, err := os.ReadFile(fsPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fsPath, err)
	}
	return data, nil
}

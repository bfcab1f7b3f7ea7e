package asset

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// HDOverlayPriorityBase is the overlay priority of the first applied pack.
	HDOverlayPriorityBase = 100

	packFileName     = "pack.json"
	packManifestName = "manifest.json"
	settingsPrefix   = "hd_pack_"
	watchDebounce    = 500 * time.Millisecond
)

// HDPack is a high-resolution asset pack under hd/<id>/.
type HDPack struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Group       string   `json:"group"`
	Expansions  []string `json:"expansions"`
	TotalSizeMB uint32   `json:"totalSizeMB"`

	Dir          string `json:"-"`
	ManifestPath string `json:"-"`
	Enabled      bool   `json:"-"`
}

// Supports reports whether the pack applies to expansion id.
// A pack without an expansion list applies to all.
func (p HDPack) Supports(id string) bool {
	return len(p.Expansions) == 0 || slices.Contains(p.Expansions, id)
}

// HDPackManager discovers packs and applies the enabled ones as overlays.
type HDPackManager struct {
	root string

	mu      sync.Mutex
	packs   []HDPack
	enabled map[string]bool
	applied []string
}

// NewHDPackManager creates a manager for packs under root.
func NewHDPackManager(root string) *HDPackManager {
	return &HDPackManager{root: root, enabled: make(map[string]bool)}
}

// Discover rescans root. A missing root yields no packs.
func (m *HDPackManager) Discover() (int, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("hd pack directory not found", "path", m.root)
			m.setPacks(nil)
			return 0, nil
		}
		return 0, fmt.Errorf("reading hd dir %s: %w", m.root, err)
	}

	var packs []HDPack
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(m.root, e.Name())
		p, err := loadPack(dir)
		if err != nil {
			slog.Warn("skipping hd pack", "dir", dir, "err", err)
			continue
		}
		slog.Info("hd pack discovered", "id", p.ID, "name", p.Name,
			"size_mb", p.TotalSizeMB, "expansions", len(p.Expansions))
		packs = append(packs, p)
	}
	m.setPacks(packs)
	slog.Info("hd packs scanned", "count", len(packs), "root", m.root)
	return len(packs), nil
}

func loadPack(dir string) (HDPack, error) {
	raw, err := os.ReadFile(filepath.Join(dir, packFileName))
	if err != nil {
		return HDPack{}, err
	}
	var p HDPack
	if err := json.Unmarshal(raw, &p); err != nil {
		return HDPack{}, fmt.Errorf("parsing %s: %w", packFileName, err)
	}
	if p.ID == "" {
		return HDPack{}, errors.New("pack has no id")
	}
	p.Dir = dir
	p.ManifestPath = filepath.Join(dir, packManifestName)
	if _, err := os.Stat(p.ManifestPath); err != nil {
		return HDPack{}, fmt.Errorf("pack %q: missing %s", p.ID, packManifestName)
	}
	return p, nil
}

func (m *HDPackManager) setPacks(packs []HDPack) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range packs {
		packs[i].Enabled = m.enabled[packs[i].ID]
	}
	m.packs = packs
}

// Packs returns the discovered packs.
func (m *HDPackManager) Packs() []HDPack {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.packs)
}

// PacksForExpansion returns packs compatible with expansion id.
func (m *HDPackManager) PacksForExpansion(id string) []HDPack {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []HDPack
	for _, p := range m.packs {
		if p.Supports(id) {
			out = append(out, p)
		}
	}
	return out
}

// SetEnabled records the enabled state of a pack; takes effect on Apply.
func (m *HDPackManager) SetEnabled(id string, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled[id] = enabled
	for i := range m.packs {
		if m.packs[i].ID == id {
			m.packs[i].Enabled = enabled
		}
	}
}

// Enabled reports whether a pack is enabled.
func (m *HDPackManager) Enabled(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled[id]
}

// Apply replaces the overlays previously applied to r with the enabled packs
// compatible with expansion id. Returns the number applied.
func (m *HDPackManager) Apply(r *Resolver, expansionID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.applied {
		if err := r.RemoveOverlay(id); err != nil {
			slog.Debug("removing hd overlay", "id", id, "err", err)
		}
	}
	m.applied = m.applied[:0]

	offset := 0
	for _, p := range m.packs {
		if !p.Enabled || !p.Supports(expansionID) {
			continue
		}
		id := "hd_" + p.ID
		prio := HDOverlayPriorityBase + offset
		offset++
		if err := r.AddOverlayManifest(p.ManifestPath, prio, id); err != nil {
			slog.Error("applying hd pack", "id", p.ID, "err", err)
			continue
		}
		m.applied = append(m.applied, id)
		slog.Info("hd pack applied", "id", p.ID, "priority", prio)
	}
	if len(m.applied) > 0 {
		slog.Info("hd pack overlays applied", "count", len(m.applied))
	}
	return len(m.applied)
}

// LoadSettings reads hd_pack_<id>=0|1 lines. A missing file is not an error.
func (m *HDPackManager) LoadSettings(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening settings: %w", err)
	}
	defer f.Close()

	m.mu.Lock()
	defer m.mu.Unlock()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		rest, ok := strings.CutPrefix(line, settingsPrefix)
		if !ok {
			continue
		}
		id, val, ok := strings.Cut(rest, "=")
		if !ok {
			continue
		}
		m.enabled[id] = val == "1"
	}
	for i := range m.packs {
		m.packs[i].Enabled = m.enabled[m.packs[i].ID]
	}
	return sc.Err()
}

// SaveSettings rewrites the hd_pack_ lines of the settings file and keeps
// every other line.
func (m *HDPackManager) SaveSettings(path string) error {
	var kept []string
	if raw, err := os.ReadFile(path); err == nil {
		for line := range strings.Lines(string(raw)) {
			line = strings.TrimRight(line, "\r\n")
			if line == "" || strings.HasPrefix(line, settingsPrefix) {
				continue
			}
			kept = append(kept, line)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading settings: %w", err)
	}

	m.mu.Lock()
	ids := make([]string, 0, len(m.enabled))
	for id := range m.enabled {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		v := "0"
		if m.enabled[id] {
			v = "1"
		}
		kept = append(kept, settingsPrefix+id+"="+v)
	}
	m.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	return os.WriteFile(path, []byte(strings.Join(kept, "\n")+"\n"), 0o644)
}

// Watch rescans and re-applies packs when files under root change, until ctx
// is done. Only root and existing pack directories are watched.
func (m *HDPackManager) Watch(ctx context.Context, r *Resolver, expansionID string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating hd watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(m.root); err != nil {
		return fmt.Errorf("watching %s: %w", m.root, err)
	}
	for _, p := range m.Packs() {
		if err := w.Add(p.Dir); err != nil {
			slog.Warn("watching hd pack dir", "dir", p.Dir, "err", err)
		}
	}
	slog.Info("watching hd packs", "root", m.root)

	var (
		timer  *time.Timer
		reload = make(chan struct{}, 1)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					_ = w.Add(ev.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			slog.Info("hd pack change detected, reloading")
			if _, err := m.Discover(); err != nil {
				slog.Error("rescanning hd packs", "err", err)
				continue
			}
			m.Apply(r, expansionID)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("hd watcher error", "err", err)
		}
	}
}
